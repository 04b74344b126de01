// Package frame is a self-describing, codec-selectable container built on
// top of the bitshuffle core package. Where the root package's LZ4
// container is deliberately header-less (see its own design notes on wire
// stability), frame prefixes every stream with a 16-byte header recording
// the codec, shuffle mode, element size, and original/compressed sizes, so
// a frame-encoded blob can be decoded without the caller supplying any of
// that out of band.
//
// frame is additive: it never changes the root package's wire format, and
// it is not required to use the root package at all (NoShuffle streams
// don't touch it). It exists to give the project's codec dependencies
// (LZ4, LZ4HC, ZSTD, ZLIB, Snappy) a complete, exercised home alongside the
// core bitshuffle filter.
package frame
