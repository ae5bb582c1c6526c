// Package region provides Region implementations.
//
// # Guest Memory
//
// A wazero api.Memory already satisfies wasmarena.Region. FromModule looks
// one up by export name:
//
//	r, err := region.FromModule(mod, "memory")
//	a := arena.New(r)
//
// # Heap
//
// Heap is an in-process region for hosts without a guest, and for tests.
// It always moves its storage on growth, which makes the stale-view hazard
// of relocating memories reproducible:
//
//	h := region.NewHeapWithConfig(&region.HeapConfig{MaxPages: 4})
package region
