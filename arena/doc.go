// Package arena stages typed regions past the end of a linear memory.
//
// An Allocator turns typed-length requests into packed, non-overlapping
// descriptors starting at the region's current size, then grows the region
// once per generation to cover them:
//
//	a := arena.New(region)
//	words, _ := a.U32(4)   // offset = size
//	bytes, _ := a.U8(10)   // offset = size + 16
//	res, err := a.Reserve() // grows by ceil(26/65536) = 1 page
//
// # Views
//
// A View binds to region storage on first access, never at request time,
// since the bytes do not exist until Reserve. Accessing a view before its
// range is inside the region fails with an out_of_bounds error.
//
// Growth may replace the storage. A view remembers the region size it was
// bound at and rebinds when the size has changed; Refresh forces a rebind.
// Raw slices obtained from Bytes are not tracked and go stale on growth.
//
// # Alignment
//
// No padding is inserted. Descriptor.Aligned reports whether an offset
// happens to be naturally aligned; element access works either way.
//
// # Element Types
//
// u8, u16, u32, u64, s8, s16, s32, s64, f32, f64, stored little-endian.
// FromWIT maps WIT primitives to element types and ParseLayout reads
// "u32x4,u8x10" style layouts using the same names.
package arena
