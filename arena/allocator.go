package arena

import (
	"go.uber.org/zap"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/errors"
)

// Descriptor locates one typed request inside a region.
type Descriptor struct {
	Elem       ElemType
	Offset     uint32
	Count      int
	ByteLength uint32
}

// End returns the offset one past the last byte.
func (d Descriptor) End() uint64 {
	return uint64(d.Offset) + uint64(d.ByteLength)
}

// Aligned reports whether Offset is a multiple of the element's natural alignment.
func (d Descriptor) Aligned() bool {
	return d.Elem.Align <= 1 || d.Offset%d.Elem.Align == 0
}

// Config holds configuration for allocator creation
type Config struct {
	// Logger overrides the package logger for this allocator.
	Logger *zap.Logger
}

// Allocator hands out packed offsets past the end of a region and grows the
// region once per generation to cover them.
//
// An Allocator is not safe for concurrent use. The caller orders
// requests, Reserve, and view access.
type Allocator struct {
	region     wasmarena.Region
	log        *zap.Logger
	pending    uint64
	generation uint64
	base       uint32
	open       bool
}

// New creates an allocator over region.
func New(region wasmarena.Region) *Allocator {
	return NewWithConfig(region, nil)
}

// NewWithConfig creates an allocator with custom configuration.
func NewWithConfig(region wasmarena.Region, cfg *Config) *Allocator {
	log := Logger()
	if cfg != nil && cfg.Logger != nil {
		log = cfg.Logger
	}
	return &Allocator{region: region, log: log}
}

// Region returns the region the allocator grows.
func (a *Allocator) Region() wasmarena.Region {
	return a.region
}

// Pending returns the bytes requested since the last reservation.
func (a *Allocator) Pending() uint64 {
	return a.pending
}

// Generation returns the number of completed reservations.
func (a *Allocator) Generation() uint64 {
	return a.generation
}

// Request reserves count elements of elem in the current generation and
// returns their descriptor. The region is not touched until Reserve.
// The request must end at or before wasmarena.MaxSize, the same bound
// Reserve grows to.
func (a *Allocator) Request(elem ElemType, count int) (Descriptor, error) {
	if count < 0 {
		return Descriptor{}, errors.InvalidRequest(elem.Name, count, "negative element count")
	}
	if elem.Width == 0 {
		return Descriptor{}, errors.InvalidRequest(elem.Name, count, "element width is zero")
	}

	size := a.region.Size()
	if a.open && size != a.base {
		return Descriptor{}, errors.GenerationConflict(errors.PhaseRequest, a.base, size)
	}

	offset := uint64(size) + a.pending
	if uint64(count) > wasmarena.MaxSize/uint64(elem.Width) ||
		offset+uint64(count)*uint64(elem.Width) > wasmarena.MaxSize {
		return Descriptor{}, errors.New(errors.PhaseRequest, errors.KindInvalidRequest).
			Elem(elem.Name).
			Value(count).
			Detail("request at offset %d would end past the region size limit %d", offset, uint64(wasmarena.MaxSize)).
			Build()
	}
	byteLength := uint64(count) * uint64(elem.Width)

	if !a.open {
		a.open = true
		a.base = size
	}
	a.pending += byteLength

	return Descriptor{
		Elem:       elem,
		Offset:     uint32(offset),
		Count:      count,
		ByteLength: uint32(byteLength),
	}, nil
}

// Reserve grows the region by ceil(pending/PageSize) pages and starts a new
// generation. With nothing pending it does nothing.
//
// On failure the pending requests are kept; the caller may retry or Reset.
func (a *Allocator) Reserve() (Reservation, error) {
	size := a.region.Size()
	if a.pending == 0 {
		a.open = false
		return Reservation{Offset: size}, nil
	}
	if a.open && size != a.base {
		return Reservation{}, errors.GenerationConflict(errors.PhaseReserve, a.base, size)
	}

	res, err := Grow(a.region, a.pending)
	if err != nil {
		a.log.Warn("region growth refused",
			zap.Uint64("pending", a.pending),
			zap.Uint64("pages", PagesFor(a.pending)),
			zap.Uint32("size", size),
			zap.Error(err))
		return Reservation{}, err
	}

	a.log.Debug("reserved generation",
		zap.Uint64("generation", a.generation),
		zap.Uint64("pending", a.pending),
		zap.Uint32("offset", res.Offset),
		zap.Uint32("pages", res.Pages))

	a.pending = 0
	a.open = false
	a.generation++
	return res, nil
}

// Reset discards the pending generation without growing the region.
// Descriptors issued in it must not be used.
func (a *Allocator) Reset() {
	a.pending = 0
	a.open = false
}

// U8 requests n bytes.
func (a *Allocator) U8(n int) (*View[uint8], error) {
	return Request[uint8](a, n)
}

// U32 requests n unsigned 32-bit words.
func (a *Allocator) U32(n int) (*View[uint32], error) {
	return Request[uint32](a, n)
}

// Request reserves count elements of T and returns an unbound view on them.
func Request[T Element](a *Allocator, count int) (*View[T], error) {
	desc, err := a.Request(TypeOf[T](), count)
	if err != nil {
		return nil, err
	}
	return NewView[T](a.region, desc)
}

// Scalar reserves a single element of T.
func Scalar[T Element](a *Allocator) (*View[T], error) {
	return Request[T](a, 1)
}
