// Package wasmarena stages typed data into WebAssembly linear memory.
//
// A host that shares a linear memory with a guest often needs scratch space
// the guest cannot allocate for it: input buffers, out-parameters, result
// slots. This module lets the host describe those regions up front, grow the
// memory once to fit all of them, and then read and write them as typed
// arrays.
//
// # Architecture Overview
//
//	wasmarena/        Root package with the Region interface and page constants
//	├── arena/        Allocator, typed views, element types, layout parsing
//	├── region/       Region implementations: relocating heap, wazero memory
//	├── errors/       Structured error types
//	├── guest/        Minimal wasm module builder used as a probe guest
//	├── host/         wazero session exposing a guest memory as an arena
//	├── stage/        Staged calls using the pointer/length/out-param convention
//	└── cmd/arena/    CLI and interactive staging TUI
//
// # Quick Start
//
//	a := arena.New(mod.Memory())
//
//	words, _ := a.U32(4)
//	bytes, _ := a.U8(10)
//
//	if _, err := a.Reserve(); err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = words.Set(2, 42)
//	v, _ := words.Get(2) // 42
//
// Offsets are handed out before the memory grows and never change. Views
// bind to the storage lazily and rebind when the region has grown since
// they were bound, because growth may move the storage.
//
// # Generations
//
// Requests accumulate until Reserve, which grows the region by
// ceil(pending/PageSize) pages and starts a new generation. Requests are
// packed back to back with no alignment padding: a u8 request followed by a
// u32 request leaves the u32 view at an unaligned offset. WebAssembly
// tolerates unaligned access; order requests widest-first when alignment
// matters to the guest.
package wasmarena
