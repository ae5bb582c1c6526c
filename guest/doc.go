// Package guest builds small core WebAssembly modules.
//
// The encoder covers what a memory-probing guest needs: i32 function types,
// one memory, function and memory exports, and raw instruction bodies.
//
// Probe returns a ready-made guest that exports its memory and functions
// that read staged data back, so a host can check what the guest sees:
//
//	wasm := guest.Probe(&guest.ProbeConfig{MaxPages: 16})
//	mod, _ := rt.Instantiate(ctx, wasm)
//	sum := mod.ExportedFunction("sum_u32")
package guest
