// Package host runs a guest module in wazero and stages data into its memory.
//
// A Session instantiates one module, resolves its exported memory as a
// Region, and binds an arena.Allocator to it:
//
//	s, err := host.Open(ctx, wasm)
//	if err != nil {
//	    return err
//	}
//	defer s.Close(ctx)
//
//	words, _ := s.Arena().U32(4)
//	_, _ = s.Arena().Reserve()
//	_, _ = words.CopyFrom([]uint32{1, 2, 3, 4})
//
//	res, _ := s.Call(ctx, "sum_u32", uint64(words.Offset()), 4)
//
// Staged memory sits past the guest's own heap, in pages the guest did not
// allocate. A guest that grows its memory during a call moves the end of
// the region; views rebind on their next access.
package host
