package region

import (
	wasmarena "github.com/wippyai/wasm-arena"
)

// DefaultMaxPages caps heap regions created without an explicit limit (1 GiB).
const DefaultMaxPages = 16384

// HeapConfig holds configuration for heap region creation
type HeapConfig struct {
	// InitialPages is the starting size in pages.
	InitialPages uint32
	// MaxPages limits growth. 0 means DefaultMaxPages. Values above
	// wasmarena.MaxPages-1 are clamped so Size stays representable.
	MaxPages uint32
}

// Heap is a Go-allocated region. Every successful growth moves the
// contents into a new buffer, so stale slices are detectable in tests.
type Heap struct {
	buf      []byte
	maxPages uint32
	grows    int
}

// NewHeap creates an empty heap region with the default page limit.
func NewHeap() *Heap {
	return NewHeapWithConfig(nil)
}

// NewHeapWithConfig creates a heap region with custom configuration.
func NewHeapWithConfig(cfg *HeapConfig) *Heap {
	h := &Heap{maxPages: DefaultMaxPages}
	if cfg != nil {
		if cfg.MaxPages > 0 {
			h.maxPages = cfg.MaxPages
		}
		if h.maxPages > wasmarena.MaxPages-1 {
			h.maxPages = wasmarena.MaxPages - 1
		}
		initial := min(cfg.InitialPages, h.maxPages)
		h.buf = make([]byte, uint64(initial)*wasmarena.PageSize)
	}
	return h
}

// Size returns the region length in bytes.
func (h *Heap) Size() uint32 {
	return uint32(len(h.buf))
}

// Pages returns the region length in pages.
func (h *Heap) Pages() uint32 {
	return uint32(len(h.buf) / wasmarena.PageSize)
}

// MaxPages returns the growth limit.
func (h *Heap) MaxPages() uint32 {
	return h.maxPages
}

// Grows returns how many times the storage has been replaced.
func (h *Heap) Grows() int {
	return h.grows
}

// Grow extends the heap by deltaPages, copying into new storage.
func (h *Heap) Grow(deltaPages uint32) (uint32, bool) {
	prev := h.Pages()
	if deltaPages == 0 {
		return prev, true
	}
	if uint64(prev)+uint64(deltaPages) > uint64(h.maxPages) {
		return 0, false
	}

	next := make([]byte, (uint64(prev)+uint64(deltaPages))*wasmarena.PageSize)
	copy(next, h.buf)
	h.buf = next
	h.grows++
	return prev, true
}

// Read returns a slice of the current storage.
func (h *Heap) Read(offset, byteCount uint32) ([]byte, bool) {
	if uint64(offset)+uint64(byteCount) > uint64(len(h.buf)) {
		return nil, false
	}
	return h.buf[offset : offset+byteCount : offset+byteCount], true
}
