package arena

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-arena/errors"
)

// Element is the set of Go types a View can hold.
type Element interface {
	uint8 | uint16 | uint32 | uint64 | int8 | int16 | int32 | int64 | float32 | float64
}

// ElemType describes a fixed-width numeric element.
// Align is the natural alignment; the allocator reports it but never pads for it.
type ElemType struct {
	Name  string
	Width uint32
	Align uint32
}

func (e ElemType) String() string {
	return e.Name
}

var (
	U8  = ElemType{Name: "u8", Width: 1, Align: 1}
	U16 = ElemType{Name: "u16", Width: 2, Align: 2}
	U32 = ElemType{Name: "u32", Width: 4, Align: 4}
	U64 = ElemType{Name: "u64", Width: 8, Align: 8}
	S8  = ElemType{Name: "s8", Width: 1, Align: 1}
	S16 = ElemType{Name: "s16", Width: 2, Align: 2}
	S32 = ElemType{Name: "s32", Width: 4, Align: 4}
	S64 = ElemType{Name: "s64", Width: 8, Align: 8}
	F32 = ElemType{Name: "f32", Width: 4, Align: 4}
	F64 = ElemType{Name: "f64", Width: 8, Align: 8}
)

// TypeOf returns the element type for T.
func TypeOf[T Element]() ElemType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return U8
	case uint16:
		return U16
	case uint32:
		return U32
	case uint64:
		return U64
	case int8:
		return S8
	case int16:
		return S16
	case int32:
		return S32
	case int64:
		return S64
	case float32:
		return F32
	default:
		return F64
	}
}

// FromWIT maps a WIT primitive to its element type.
// Only fixed-width numeric primitives have a typed view representation.
func FromWIT(t wit.Type) (ElemType, error) {
	switch t.(type) {
	case wit.U8:
		return U8, nil
	case wit.U16:
		return U16, nil
	case wit.U32:
		return U32, nil
	case wit.U64:
		return U64, nil
	case wit.S8:
		return S8, nil
	case wit.S16:
		return S16, nil
	case wit.S32:
		return S32, nil
	case wit.S64:
		return S64, nil
	case wit.F32:
		return F32, nil
	case wit.F64:
		return F64, nil
	default:
		return ElemType{}, errors.Unsupported(errors.PhaseRequest, fmt.Sprintf("no typed view for WIT type %T", t))
	}
}

// witPrimitives resolves element names through their WIT primitive.
var witPrimitives = map[string]wit.Type{
	"u8":  wit.U8{},
	"u16": wit.U16{},
	"u32": wit.U32{},
	"u64": wit.U64{},
	"s8":  wit.S8{},
	"s16": wit.S16{},
	"s32": wit.S32{},
	"s64": wit.S64{},
	"f32": wit.F32{},
	"f64": wit.F64{},
}

// LookupElem returns the element type with the given WIT primitive name.
func LookupElem(name string) (ElemType, bool) {
	t, ok := witPrimitives[name]
	if !ok {
		return ElemType{}, false
	}
	e, err := FromWIT(t)
	return e, err == nil
}
