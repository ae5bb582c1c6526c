package stage

import (
	"context"
	"math"

	"github.com/wippyai/wasm-arena/arena"
	"github.com/wippyai/wasm-arena/errors"
	"github.com/wippyai/wasm-arena/host"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Config holds configuration for a staged call
type Config struct {
	// Func is the export called as fn(data, len, widthPtr, heightPtr) -> pixelsPtr.
	Func string

	// FreeFunc, if set, is called as free(pixelsPtr) after the pixels are copied.
	FreeFunc string
}

// Result is the output of a staged decode call.
type Result struct {
	Pixels []byte // copied out of guest memory
	Ptr    uint32
	Width  uint32
	Height uint32
	// Layout of the staged generation: width slot, height slot, input bytes.
	Layout []arena.Descriptor
}

// Decode stages input and two out-parameters in one generation, calls the
// decoder, and copies width*height*4 bytes of pixels out of guest memory.
func Decode(ctx context.Context, s *host.Session, input []byte, cfg Config) (*Result, error) {
	if s == nil {
		return nil, errors.NotInitialized(errors.PhaseCall, "session")
	}
	if cfg.Func == "" {
		return nil, errors.InvalidInput(errors.PhaseCall, "no decode function")
	}
	if len(input) == 0 {
		return nil, errors.InvalidInput(errors.PhaseCall, "empty input")
	}

	a := s.Arena()

	// u32 slots first so they stay aligned when the region starts on a page.
	width, err := arena.Scalar[uint32](a)
	if err != nil {
		a.Reset()
		return nil, err
	}
	height, err := arena.Scalar[uint32](a)
	if err != nil {
		a.Reset()
		return nil, err
	}
	data, err := a.U8(len(input))
	if err != nil {
		a.Reset()
		return nil, err
	}
	if _, err := a.Reserve(); err != nil {
		a.Reset()
		return nil, err
	}

	if _, err := data.CopyFrom(input); err != nil {
		return nil, err
	}
	if err := width.Set(0, 0); err != nil {
		return nil, err
	}
	if err := height.Set(0, 0); err != nil {
		return nil, err
	}

	results, err := s.Call(ctx, cfg.Func,
		uint64(data.Offset()), uint64(data.Len()),
		uint64(width.Offset()), uint64(height.Offset()))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.InvalidData(errors.PhaseCall, []string{cfg.Func}, "decoder returned no result")
	}

	ptr := uint32(results[0])
	if ptr == 0 {
		return nil, errors.InvalidData(errors.PhaseCall, []string{cfg.Func}, "decoder returned null; input is not a valid image")
	}

	w, err := width.Get(0)
	if err != nil {
		return nil, err
	}
	h, err := height.Get(0)
	if err != nil {
		return nil, err
	}

	n := uint64(w) * uint64(h) * BytesPerPixel
	if n > math.MaxUint32 {
		return nil, errors.Overflow(errors.PhaseCall, n, "32-bit address space")
	}
	raw, ok := s.Region().Read(ptr, uint32(n))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseCall, uint64(ptr), n, s.Region().Size())
	}

	res := &Result{
		Pixels: append([]byte(nil), raw...),
		Ptr:    ptr,
		Width:  w,
		Height: h,
		Layout: []arena.Descriptor{width.Descriptor(), height.Descriptor(), data.Descriptor()},
	}

	if cfg.FreeFunc != "" {
		if _, err := s.Call(ctx, cfg.FreeFunc, uint64(ptr)); err != nil {
			return res, err
		}
	}
	return res, nil
}
