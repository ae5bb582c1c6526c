package arena

import (
	"testing"

	"go.bytecodealliance.org/wit"

	wasmerrors "github.com/wippyai/wasm-arena/errors"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		got  ElemType
		want ElemType
	}{
		{TypeOf[uint8](), U8},
		{TypeOf[uint16](), U16},
		{TypeOf[uint32](), U32},
		{TypeOf[uint64](), U64},
		{TypeOf[int8](), S8},
		{TypeOf[int16](), S16},
		{TypeOf[int32](), S32},
		{TypeOf[int64](), S64},
		{TypeOf[float32](), F32},
		{TypeOf[float64](), F64},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("TypeOf = %v, want %v", tt.got, tt.want)
		}
		if tt.got.Width != tt.got.Align {
			t.Errorf("%s: width %d align %d", tt.got, tt.got.Width, tt.got.Align)
		}
	}
}

func TestFromWIT(t *testing.T) {
	tests := []struct {
		in   wit.Type
		want ElemType
	}{
		{wit.U8{}, U8},
		{wit.U16{}, U16},
		{wit.U32{}, U32},
		{wit.U64{}, U64},
		{wit.S8{}, S8},
		{wit.S16{}, S16},
		{wit.S32{}, S32},
		{wit.S64{}, S64},
		{wit.F32{}, F32},
		{wit.F64{}, F64},
	}
	for _, tt := range tests {
		got, err := FromWIT(tt.in)
		if err != nil {
			t.Errorf("FromWIT(%T): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FromWIT(%T) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []wit.Type{wit.String{}, wit.Bool{}, wit.Char{}} {
		if _, err := FromWIT(in); !isKind(err, wasmerrors.PhaseRequest, wasmerrors.KindUnsupported) {
			t.Errorf("FromWIT(%T): got %v, want unsupported", in, err)
		}
	}
}

func TestLookupElem(t *testing.T) {
	for _, e := range []ElemType{U8, U16, U32, U64, S8, S16, S32, S64, F32, F64} {
		got, ok := LookupElem(e.Name)
		if !ok || got != e {
			t.Errorf("LookupElem(%q) = %v, %v", e.Name, got, ok)
		}
	}
	for _, name := range []string{"", "i32", "string", "U8"} {
		if _, ok := LookupElem(name); ok {
			t.Errorf("LookupElem(%q) found", name)
		}
	}
}
