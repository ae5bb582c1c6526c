// Package stage calls guest decoders that take their input and
// out-parameters as pointers into linear memory.
//
// The calling convention is
//
//	decode(data *u8, len usize, width *u32, height *u32) -> *u8
//
// returning a pointer to width*height RGBA8 pixels, or 0 when the input
// cannot be decoded. An optional free(ptr) export releases the pixels.
//
// Decoding itself happens in the guest. The probe module's decode_stub
// only reports its input as a single row of pixels; a real decoder, such as
// a QOI decoder built for wasm32, is loaded with cmd/arena's -wasm flag:
//
//	arena -wasm qoi.wasm -func qoi_decode -free qoi_free -input image.qoi
//
// Decode stages the two out-parameters and the input in a single arena
// generation, so the memory grows once per call. Staged pages are not
// reclaimed; long-running hosts should open a new session when memory use
// matters.
package stage
