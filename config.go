package bitshuffle

import "runtime"

// DecompressMode selects between the two decode strategies described in
// §9: ModeSafe validates the number of bytes produced against what the
// caller expects; ModeFast instead trusts the per-block length prefixes
// and only checks bytes consumed. ModeFast exists for interoperability
// with streams produced by implementations that skip the output check;
// ModeSafe is the default.
type DecompressMode int

const (
	ModeSafe DecompressMode = iota
	ModeFast
)

// Options configures the block framework and LZ4 container operations.
// The zero Options is usable: it asks for one worker per GOMAXPROCS and
// ModeSafe decompression.
type Options struct {
	// BlockSize is not read from the caller's Options by the public entry
	// points: BitShuffle, BitUnshuffle, CompressLZ4 and DecompressLZ4 take
	// the block size (in elements; 0 means DefaultBlockSize(elemSize)) as
	// an explicit argument, and BitShuffle/BitUnshuffle overwrite this
	// field with that argument.
	BlockSize int

	// Workers bounds how many blocks are processed concurrently; 0 means
	// runtime.GOMAXPROCS(0).
	Workers int

	// Mode selects the decompression validation strategy.
	Mode DecompressMode
}

// DefaultOptions returns the zero-value Options made explicit.
func DefaultOptions() Options {
	return Options{BlockSize: 0, Workers: 0, Mode: ModeSafe}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
