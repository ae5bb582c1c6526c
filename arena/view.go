package arena

import (
	"encoding/binary"
	"math"

	wasmarena "github.com/wippyai/wasm-arena"
	"github.com/wippyai/wasm-arena/errors"
)

// View is a typed window onto a fixed byte range of a region.
//
// The window is bound to the region's storage on first access. Growth can
// move the storage, so a binding made at a smaller region size is dropped
// and recomputed on the next access. Slices returned by Bytes follow the
// same rule as Region.Read: they are invalid after the region grows.
type View[T Element] struct {
	region    wasmarena.Region
	data      []byte
	desc      Descriptor
	boundSize uint32
	bound     bool
}

// NewView creates an unbound view for desc over region. The descriptor's
// element width must match T; same-width reinterpretation (u32 as f32) is allowed.
func NewView[T Element](region wasmarena.Region, desc Descriptor) (*View[T], error) {
	if want := TypeOf[T](); desc.Elem.Width != want.Width {
		return nil, errors.New(errors.PhaseMaterialize, errors.KindInvalidRequest).
			Elem(desc.Elem.Name).
			Detail("descriptor width %d does not match %s", desc.Elem.Width, want.Name).
			Build()
	}
	return &View[T]{region: region, desc: desc}, nil
}

// Descriptor returns the view's placement.
func (v *View[T]) Descriptor() Descriptor { return v.desc }

// Offset returns the absolute byte offset of the first element.
func (v *View[T]) Offset() uint32 { return v.desc.Offset }

// Len returns the number of elements.
func (v *View[T]) Len() int { return v.desc.Count }

// ByteLength returns the size of the view in bytes.
func (v *View[T]) ByteLength() uint32 { return v.desc.ByteLength }

// Elem returns the element type.
func (v *View[T]) Elem() ElemType { return v.desc.Elem }

// Bound reports whether the view currently holds a binding.
func (v *View[T]) Bound() bool { return v.bound }

// Invalidate drops the binding; the next access rebinds.
func (v *View[T]) Invalidate() {
	v.data = nil
	v.bound = false
}

// Refresh rebinds the view to the region's current storage.
func (v *View[T]) Refresh() error {
	v.Invalidate()
	return v.materialize()
}

func (v *View[T]) materialize() error {
	size := v.region.Size()
	if v.bound && v.boundSize == size {
		return nil
	}
	v.Invalidate()

	if v.desc.ByteLength == 0 {
		v.data = []byte{}
	} else {
		data, ok := v.region.Read(v.desc.Offset, v.desc.ByteLength)
		if !ok {
			return errors.OutOfBounds(errors.PhaseMaterialize, uint64(v.desc.Offset), uint64(v.desc.ByteLength), size)
		}
		v.data = data
	}
	v.boundSize = size
	v.bound = true
	return nil
}

// Bytes returns the view's raw bytes, aliasing region storage.
func (v *View[T]) Bytes() ([]byte, error) {
	if err := v.materialize(); err != nil {
		return nil, err
	}
	return v.data, nil
}

// Get returns the element at index.
func (v *View[T]) Get(index int) (T, error) {
	var zero T
	if err := v.materialize(); err != nil {
		return zero, err
	}
	if index < 0 || index >= v.desc.Count {
		return zero, errors.IndexOutOfBounds(errors.PhaseMaterialize, v.desc.Elem.Name, index, v.desc.Count)
	}
	w := int(v.desc.Elem.Width)
	return load[T](v.data[index*w:]), nil
}

// Set stores value at index.
func (v *View[T]) Set(index int, value T) error {
	if err := v.materialize(); err != nil {
		return err
	}
	if index < 0 || index >= v.desc.Count {
		return errors.IndexOutOfBounds(errors.PhaseMaterialize, v.desc.Elem.Name, index, v.desc.Count)
	}
	w := int(v.desc.Elem.Width)
	store(v.data[index*w:], value)
	return nil
}

// Values copies the view's elements out of the region.
func (v *View[T]) Values() ([]T, error) {
	if err := v.materialize(); err != nil {
		return nil, err
	}
	out := make([]T, v.desc.Count)
	w := int(v.desc.Elem.Width)
	for i := range out {
		out[i] = load[T](v.data[i*w:])
	}
	return out, nil
}

// CopyFrom writes src into the view starting at element 0 and returns the
// number of elements written, at most Len.
func (v *View[T]) CopyFrom(src []T) (int, error) {
	if err := v.materialize(); err != nil {
		return 0, err
	}
	n := min(len(src), v.desc.Count)
	w := int(v.desc.Elem.Width)
	for i := 0; i < n; i++ {
		store(v.data[i*w:], src[i])
	}
	return n, nil
}

// Fill sets every element to value.
func (v *View[T]) Fill(value T) error {
	if err := v.materialize(); err != nil {
		return err
	}
	w := int(v.desc.Elem.Width)
	for i := 0; i < v.desc.Count; i++ {
		store(v.data[i*w:], value)
	}
	return nil
}

// load decodes a little-endian element from the front of b.
func load[T Element](b []byte) T {
	var out T
	switch p := any(&out).(type) {
	case *uint8:
		*p = b[0]
	case *int8:
		*p = int8(b[0])
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(b))
	case *uint32:
		*p = binary.LittleEndian.Uint32(b)
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case *uint64:
		*p = binary.LittleEndian.Uint64(b)
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(b))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return out
}

// store encodes value little-endian at the front of b.
func store[T Element](b []byte, value T) {
	switch x := any(value).(type) {
	case uint8:
		b[0] = x
	case int8:
		b[0] = byte(x)
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case int16:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case int32:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	case uint64:
		binary.LittleEndian.PutUint64(b, x)
	case int64:
		binary.LittleEndian.PutUint64(b, uint64(x))
	case float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(x))
	}
}
