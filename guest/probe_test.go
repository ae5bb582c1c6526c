package guest

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func instantiate(t *testing.T, cfg *ProbeConfig) api.Module {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, Probe(cfg))
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return mod
}

func call(t *testing.T, mod api.Module, name string, params ...uint64) uint32 {
	t.Helper()
	fn := mod.ExportedFunction(name)
	if fn == nil {
		t.Fatalf("export %s missing", name)
	}
	results, err := fn.Call(context.Background(), params...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return uint32(results[0])
}

func TestProbe_Header(t *testing.T) {
	bin := Probe(nil)
	want := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if !bytes.HasPrefix(bin, want) {
		t.Errorf("header = % x", bin[:8])
	}
}

func TestProbe_Exports(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, Probe(nil))
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}

	fns := compiled.ExportedFunctions()
	for _, name := range []string{ExportSumU8, ExportSumU32, ExportMemPages, ExportMemGrow, ExportDecodeStub} {
		if _, ok := fns[name]; !ok {
			t.Errorf("function %s not exported", name)
		}
	}
	if _, ok := compiled.ExportedMemories()[ExportMemory]; !ok {
		t.Error("memory not exported")
	}
	if got := len(fns[ExportDecodeStub].ParamTypes()); got != 4 {
		t.Errorf("decode_stub params = %d", got)
	}
}

func TestProbe_Sums(t *testing.T) {
	mod := instantiate(t, &ProbeConfig{InitialPages: 1})
	mem := mod.Memory()

	mem.Write(100, []byte{1, 2, 3, 250})
	if got := call(t, mod, ExportSumU8, 100, 4); got != 256 {
		t.Errorf("sum_u8 = %d, want 256", got)
	}
	if got := call(t, mod, ExportSumU8, 100, 0); got != 0 {
		t.Errorf("sum_u8 of nothing = %d", got)
	}

	var words [12]byte
	binary.LittleEndian.PutUint32(words[0:], 1)
	binary.LittleEndian.PutUint32(words[4:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(words[8:], 41)
	mem.Write(201, words[:])
	if got := call(t, mod, ExportSumU32, 201, 3); got != 41 {
		t.Errorf("sum_u32 = %d, want 41 after wrapping", got)
	}
}

func TestProbe_Memory(t *testing.T) {
	mod := instantiate(t, &ProbeConfig{InitialPages: 1, MaxPages: 2})

	if got := call(t, mod, ExportMemPages); got != 1 {
		t.Errorf("mem_pages = %d", got)
	}
	if got := call(t, mod, ExportMemGrow, 1); got != 1 {
		t.Errorf("mem_grow = %d, want previous page count", got)
	}
	if got := call(t, mod, ExportMemGrow, 1); got != 0xFFFFFFFF {
		t.Errorf("mem_grow past max = %#x, want -1", got)
	}
	if got := call(t, mod, ExportMemPages); got != 2 {
		t.Errorf("mem_pages = %d", got)
	}
}

func TestProbe_DecodeStub(t *testing.T) {
	mod := instantiate(t, &ProbeConfig{InitialPages: 1})
	mem := mod.Memory()

	if got := call(t, mod, ExportDecodeStub, 64, 0, 0, 4); got != 0 {
		t.Errorf("empty input returned %d", got)
	}

	if got := call(t, mod, ExportDecodeStub, 64, 13, 0, 4); got != 64 {
		t.Errorf("decode_stub = %d, want data pointer", got)
	}
	w, _ := mem.ReadUint32Le(0)
	h, _ := mem.ReadUint32Le(4)
	if w != 3 || h != 1 {
		t.Errorf("out params = %dx%d, want 3x1", w, h)
	}
}

func TestWriter_LEB128(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
	}
	for _, tt := range tests {
		var w writer
		w.U32(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("U32(%d) = % x, want % x", tt.v, w.Bytes(), tt.want)
		}
	}

	signed := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x7f}},
		{63, []byte{0x3f}},
		{64, []byte{0xc0, 0x00}},
		{-123456, []byte{0xc0, 0xbb, 0x78}},
	}
	for _, tt := range signed {
		var w writer
		w.S32(tt.v)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("S32(%d) = % x, want % x", tt.v, w.Bytes(), tt.want)
		}
	}
}
