package guest

// Binary format constants.
const (
	Magic   uint32 = 0x6D736100 // \0asm
	Version uint32 = 1

	SectionType     byte = 1
	SectionFunction byte = 3
	SectionMemory   byte = 5
	SectionExport   byte = 7
	SectionCode     byte = 10

	KindFunc   byte = 0
	KindMemory byte = 2

	FuncTypeByte byte = 0x60
	ValI32       byte = 0x7F
	BlockEmpty   byte = 0x40
)

// Opcodes used by the probe functions.
const (
	OpBlock      byte = 0x02
	OpLoop       byte = 0x03
	OpIf         byte = 0x04
	OpEnd        byte = 0x0B
	OpBr         byte = 0x0C
	OpBrIf       byte = 0x0D
	OpReturn     byte = 0x0F
	OpLocalGet   byte = 0x20
	OpLocalSet   byte = 0x21
	OpI32Load    byte = 0x28
	OpI32Load8U  byte = 0x2D
	OpI32Store   byte = 0x36
	OpMemorySize byte = 0x3F
	OpMemoryGrow byte = 0x40
	OpI32Const   byte = 0x41
	OpI32Eqz     byte = 0x45
	OpI32Add     byte = 0x6A
	OpI32Sub     byte = 0x6B
	OpI32ShrU    byte = 0x76
)

// FuncType is a function signature over i32 values.
type FuncType struct {
	Params  int
	Results int
}

// Func is a function definition: its type index, extra i32 locals, and body
// instructions without the trailing end.
type Func struct {
	Name   string
	Type   uint32
	Locals uint32
	Body   []byte
}

// Memory is a memory definition. Max of 0 means unbounded.
type Memory struct {
	Name string
	Min  uint32
	Max  uint32
}

// Module is a core wasm module with i32-only functions and one memory.
type Module struct {
	Memory *Memory
	Types  []FuncType
	Funcs  []Func
}

// Encode encodes the module to WebAssembly binary format.
func (m *Module) Encode() []byte {
	var w writer

	w.U32LE(Magic)
	w.U32LE(Version)

	if len(m.Types) > 0 {
		var sec writer
		sec.U32(uint32(len(m.Types)))
		for _, ft := range m.Types {
			sec.Byte(FuncTypeByte)
			writeI32s(&sec, ft.Params)
			writeI32s(&sec, ft.Results)
		}
		w.Section(SectionType, sec.Bytes())
	}

	if len(m.Funcs) > 0 {
		var sec writer
		sec.U32(uint32(len(m.Funcs)))
		for _, f := range m.Funcs {
			sec.U32(f.Type)
		}
		w.Section(SectionFunction, sec.Bytes())
	}

	if m.Memory != nil {
		var sec writer
		sec.U32(1)
		if m.Memory.Max > 0 {
			sec.Byte(0x01)
			sec.U32(m.Memory.Min)
			sec.U32(m.Memory.Max)
		} else {
			sec.Byte(0x00)
			sec.U32(m.Memory.Min)
		}
		w.Section(SectionMemory, sec.Bytes())
	}

	var exports writer
	count := uint32(0)
	for i, f := range m.Funcs {
		if f.Name == "" {
			continue
		}
		exports.Name(f.Name)
		exports.Byte(KindFunc)
		exports.U32(uint32(i))
		count++
	}
	if m.Memory != nil && m.Memory.Name != "" {
		exports.Name(m.Memory.Name)
		exports.Byte(KindMemory)
		exports.U32(0)
		count++
	}
	if count > 0 {
		var sec writer
		sec.U32(count)
		sec.Byte(exports.Bytes()...)
		w.Section(SectionExport, sec.Bytes())
	}

	if len(m.Funcs) > 0 {
		var sec writer
		sec.U32(uint32(len(m.Funcs)))
		for _, f := range m.Funcs {
			var body writer
			if f.Locals > 0 {
				body.U32(1)
				body.U32(f.Locals)
				body.Byte(ValI32)
			} else {
				body.U32(0)
			}
			body.Byte(f.Body...)
			body.Byte(OpEnd)

			sec.U32(uint32(len(body.Bytes())))
			sec.Byte(body.Bytes()...)
		}
		w.Section(SectionCode, sec.Bytes())
	}

	return w.Bytes()
}

func writeI32s(w *writer, n int) {
	w.U32(uint32(n))
	for i := 0; i < n; i++ {
		w.Byte(ValI32)
	}
}
