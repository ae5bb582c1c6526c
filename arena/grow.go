package arena

import (
	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/errors"
)

// Reservation is the span added to a region by one growth.
type Reservation struct {
	Offset uint32 // region size before growth
	Bytes  uint64 // bytes added, Pages*PageSize
	Pages  uint32
}

// PagesFor returns the number of whole pages needed to hold n bytes.
func PagesFor(n uint64) uint64 {
	pages := n / wasmarena.PageSize
	if n%wasmarena.PageSize != 0 {
		pages++
	}
	return pages
}

// Grow extends r by enough pages to hold numBytes. Zero bytes is a no-op.
// Growth past wasmarena.MaxSize is an overflow.
func Grow(r wasmarena.Region, numBytes uint64) (Reservation, error) {
	start := r.Size()
	pages := PagesFor(numBytes)
	if pages == 0 {
		return Reservation{Offset: start}, nil
	}
	if pages > wasmarena.MaxPages || uint64(start)+pages*wasmarena.PageSize > wasmarena.MaxSize {
		return Reservation{}, errors.Overflow(errors.PhaseReserve, pages, "region size limit")
	}

	if _, ok := r.Grow(uint32(pages)); !ok {
		return Reservation{}, errors.GrowthFailed(uint32(pages), start)
	}

	return Reservation{
		Offset: start,
		Bytes:  pages * wasmarena.PageSize,
		Pages:  uint32(pages),
	}, nil
}
