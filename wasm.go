package wasmarena

// PageSize is the WebAssembly linear memory page size in bytes.
const PageSize = 65536

// MaxPages is the page limit of a 32-bit linear memory.
const MaxPages = 65536

// MaxSize is the largest region size a Region can report. A memory of
// MaxPages pages is 2^32 bytes, which does not fit Size, so regions stop
// one page short of it.
const MaxSize = (MaxPages - 1) * PageSize

// Region is a growable linear memory shared with a guest.
//
// The method set matches wazero's api.Memory, so an exported guest memory
// can be used directly. Growth may replace the backing storage: slices
// returned by Read before a Grow must not be used after it.
type Region interface {
	// Size returns the current length in bytes, always a multiple of PageSize
	// and at most MaxSize.
	Size() uint32
	// Grow extends the region by deltaPages pages. ok is false when the
	// host refuses the growth.
	Grow(deltaPages uint32) (previousPages uint32, ok bool)
	// Read returns a slice aliasing byteCount bytes at offset in the current
	// storage, or false if the range exceeds Size.
	Read(offset, byteCount uint32) ([]byte, bool)
}
