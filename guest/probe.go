package guest

// Probe export names.
const (
	ExportMemory     = "memory"
	ExportSumU8      = "sum_u8"
	ExportSumU32     = "sum_u32"
	ExportMemPages   = "mem_pages"
	ExportMemGrow    = "mem_grow"
	ExportDecodeStub = "decode_stub"
)

// ProbeConfig holds configuration for the probe module.
type ProbeConfig struct {
	InitialPages uint32
	MaxPages     uint32 // 0 means unbounded
}

// Probe builds a module that exports a memory and a few functions reading it:
//
//	sum_u8(ptr, n) -> i32        sum of n bytes at ptr
//	sum_u32(ptr, n) -> i32       wrapping sum of n little-endian words at ptr
//	mem_pages() -> i32           memory.size
//	mem_grow(delta) -> i32       memory.grow, -1 on failure
//	decode_stub(data, len, w, h) -> i32
//	                             writes len/4 to *w and 1 to *h and returns
//	                             data, treating the input as one row of RGBA
//	                             pixels; returns 0 when len is 0
func Probe(cfg *ProbeConfig) []byte {
	mem := &Memory{Name: ExportMemory}
	if cfg != nil {
		mem.Min = cfg.InitialPages
		mem.Max = cfg.MaxPages
	}

	m := &Module{
		Memory: mem,
		Types: []FuncType{
			{Params: 2, Results: 1}, // (ptr, n) -> i32
			{Params: 0, Results: 1}, // () -> i32
			{Params: 1, Results: 1}, // (i32) -> i32
			{Params: 4, Results: 1}, // (data, len, w, h) -> i32
		},
		Funcs: []Func{
			{Name: ExportSumU8, Type: 0, Locals: 1, Body: sumBody(OpI32Load8U, 0, 1)},
			{Name: ExportSumU32, Type: 0, Locals: 1, Body: sumBody(OpI32Load, 2, 4)},
			{Name: ExportMemPages, Type: 1, Body: []byte{OpMemorySize, 0x00}},
			{Name: ExportMemGrow, Type: 2, Body: []byte{OpLocalGet, 0, OpMemoryGrow, 0x00}},
			{Name: ExportDecodeStub, Type: 3, Body: decodeStubBody()},
		},
	}
	return m.Encode()
}

// sumBody accumulates n elements from ptr into local 2.
// Locals: 0 ptr, 1 n, 2 acc.
func sumBody(load, align byte, width int32) []byte {
	var w writer
	w.Byte(OpBlock, BlockEmpty, OpLoop, BlockEmpty)
	w.Byte(OpLocalGet, 1, OpI32Eqz, OpBrIf, 1)
	w.Byte(OpLocalGet, 2, OpLocalGet, 0, load, align, 0x00, OpI32Add, OpLocalSet, 2)
	w.Byte(OpLocalGet, 0)
	w.I32Const(width)
	w.Byte(OpI32Add, OpLocalSet, 0)
	w.Byte(OpLocalGet, 1)
	w.I32Const(1)
	w.Byte(OpI32Sub, OpLocalSet, 1)
	w.Byte(OpBr, 0, OpEnd, OpEnd)
	w.Byte(OpLocalGet, 2)
	return w.Bytes()
}

// Locals: 0 data, 1 len, 2 width ptr, 3 height ptr.
func decodeStubBody() []byte {
	var w writer
	w.Byte(OpLocalGet, 1, OpI32Eqz, OpIf, BlockEmpty)
	w.I32Const(0)
	w.Byte(OpReturn, OpEnd)

	w.Byte(OpLocalGet, 2, OpLocalGet, 1)
	w.I32Const(2)
	w.Byte(OpI32ShrU, OpI32Store, 2, 0x00)

	w.Byte(OpLocalGet, 3)
	w.I32Const(1)
	w.Byte(OpI32Store, 2, 0x00)

	w.Byte(OpLocalGet, 0)
	return w.Bytes()
}
