// Package bitshuffle implements the bitshuffle filter: a bit-level
// reorganization of typed binary data that groups the k-th bit of every
// element into a contiguous "bit-plane," followed by a block-structured,
// losslessly compressed container built on LZ4.
//
// Bitshuffle is most effective on arrays of fixed-width numeric elements
// (floats, integers) whose values vary slowly across the array: after the
// permutation, each bit-plane tends to be long runs of identical bits,
// which byte-oriented entropy coders such as LZ4 compress far better than
// the original interleaved representation.
//
// # Basic usage
//
//	bound, err := bitshuffle.CompressBound(size, elemSize, 0)
//	buf := make([]byte, bound)
//	n, err := bitshuffle.CompressLZ4(ctx, buf, data, size, elemSize, 0, bitshuffle.DefaultOptions())
//	...
//	out := make([]byte, size*elemSize)
//	_, err = bitshuffle.DecompressLZ4(ctx, out, buf[:n], size, elemSize, 0, bitshuffle.DefaultOptions())
//
// # Shape
//
// Four public entry points do the real work: BitShuffle, BitUnshuffle,
// CompressLZ4, and DecompressLZ4. DefaultBlockSize and CompressBound expose
// the block-sizing and bound arithmetic callers need to size their own
// buffers. UsingSSE2 and UsingAVX2 report which primitive tier this binary
// was built with.
//
// # Thread safety
//
// Every exported function is safe for concurrent use; internal worker pools
// allocate their own scratch buffers per call.
package bitshuffle
