package frame

import (
	"context"
	"fmt"

	"github.com/rainwoodman/bitshuffle"
)

// Options configures Compress.
type Options struct {
	Codec    Codec
	Level    int
	Shuffle  Shuffle
	TypeSize int
}

// DefaultOptions returns sensible defaults: LZ4 at level 5 with bit shuffle
// over 4-byte elements.
func DefaultOptions() Options {
	return Options{Codec: LZ4, Level: 5, Shuffle: BitShuffle, TypeSize: 4}
}

// Compress shuffles data per opts.Shuffle/opts.TypeSize and compresses the
// result with opts.Codec, returning a self-describing frame.
func Compress(data []byte, opts Options) ([]byte, error) {
	c, ok := GetCodec(opts.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCodec, opts.Codec)
	}

	shuffled, blockSize, err := applyShuffle(data, opts.Shuffle, opts.TypeSize)
	if err != nil {
		return nil, err
	}

	payload, err := c.Compress(shuffled, opts.Level)
	if err != nil {
		return nil, err
	}

	// A codec that couldn't shrink the block (or one like lz4Compress that
	// hands the input back unchanged for that reason) produces a payload at
	// least as large as the input. Store it verbatim instead, the same
	// tradeoff the teacher's blosc.go makes with its useMemcpy check.
	memcpy := len(payload) >= len(shuffled)
	if memcpy {
		payload = shuffled
	}

	flags := shuffleFlags(opts.Shuffle)
	if memcpy {
		flags |= flagMemcpy
	}

	h := header{
		version:   FormatVersion,
		codec:     opts.Codec,
		flags:     flags,
		typeSize:  uint8(opts.TypeSize),
		origSize:  uint32(len(data)),
		blockSize: uint32(blockSize),
		compSize:  uint32(len(payload)),
	}

	out := make([]byte, HeaderSize+len(payload))
	copy(out, h.bytes())
	copy(out[HeaderSize:], payload)
	return out, nil
}

// Decompress inverts Compress, reading the codec and shuffle mode from the
// frame header.
func Decompress(data []byte) ([]byte, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	payload := data[HeaderSize:]
	if uint32(len(payload)) < h.compSize {
		return nil, ErrInvalidHeader
	}
	payload = payload[:h.compSize]

	c, ok := GetCodec(h.codec)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCodec, h.codec)
	}

	var shuffled []byte
	if h.isMemcpy() {
		shuffled = make([]byte, len(payload))
		copy(shuffled, payload)
	} else {
		shuffled, err = c.Decompress(payload, int(h.origSize))
		if err != nil {
			return nil, err
		}
	}
	if uint32(len(shuffled)) != h.origSize {
		return nil, ErrSizeMismatch
	}

	return undoShuffle(shuffled, h.shuffleMode(), int(h.typeSize), int(h.blockSize))
}

// applyShuffle shuffles data according to mode/typeSize, returning the
// shuffled buffer and (for BitShuffle) the block size used, so Decompress
// can invert it with the same parameters.
func applyShuffle(data []byte, mode Shuffle, typeSize int) ([]byte, int, error) {
	if mode == NoShuffle || typeSize <= 0 {
		return data, 0, nil
	}

	mainLen := (len(data) / typeSize) * typeSize
	size := mainLen / typeSize
	out := make([]byte, len(data))

	switch mode {
	case BitShuffle:
		blockSize := bitshuffle.DefaultBlockSize(typeSize)
		if size > 0 {
			if _, err := bitshuffle.BitShuffle(context.Background(), out[:mainLen], data[:mainLen], size, typeSize, 0, bitshuffle.DefaultOptions()); err != nil {
				return nil, 0, err
			}
		}
		copy(out[mainLen:], data[mainLen:])
		return out, blockSize, nil
	case ByteShuffle:
		shuffleBytes(out[:mainLen], data[:mainLen], typeSize)
		copy(out[mainLen:], data[mainLen:])
		return out, 0, nil
	default:
		return data, 0, nil
	}
}

func undoShuffle(data []byte, mode Shuffle, typeSize, blockSize int) ([]byte, error) {
	if mode == NoShuffle || typeSize <= 0 {
		return data, nil
	}

	mainLen := (len(data) / typeSize) * typeSize
	size := mainLen / typeSize
	out := make([]byte, len(data))

	switch mode {
	case BitShuffle:
		if size > 0 {
			if _, err := bitshuffle.BitUnshuffle(context.Background(), out[:mainLen], data[:mainLen], size, typeSize, blockSize, bitshuffle.DefaultOptions()); err != nil {
				return nil, err
			}
		}
		copy(out[mainLen:], data[mainLen:])
		return out, nil
	case ByteShuffle:
		unshuffleBytes(out[:mainLen], data[:mainLen], typeSize)
		copy(out[mainLen:], data[mainLen:])
		return out, nil
	default:
		return data, nil
	}
}
