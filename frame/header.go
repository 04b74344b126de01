package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FormatVersion is the current frame header version.
const FormatVersion = 1

// HeaderSize is the fixed size, in bytes, of every frame header.
const HeaderSize = 16

// Codec identifies the compression algorithm wrapping the shuffled payload.
type Codec uint8

const (
	LZ4 Codec = iota
	LZ4HC
	ZSTD
	ZLIB
	Snappy
)

func (c Codec) String() string {
	switch c {
	case LZ4:
		return "lz4"
	case LZ4HC:
		return "lz4hc"
	case ZSTD:
		return "zstd"
	case ZLIB:
		return "zlib"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Shuffle selects the preprocessing step applied before the codec runs.
type Shuffle uint8

const (
	NoShuffle Shuffle = iota
	ByteShuffle
	BitShuffle
)

func (s Shuffle) String() string {
	switch s {
	case NoShuffle:
		return "noshuffle"
	case ByteShuffle:
		return "byteshuffle"
	case BitShuffle:
		return "bitshuffle"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

const (
	flagByteShuffle = 0x1
	flagBitShuffle  = 0x2
	flagMemcpy      = 0x4 // payload is stored verbatim; the codec never ran
)

// Predefined errors. Check with errors.Is.
var (
	ErrInvalidHeader  = errors.New("frame: invalid or truncated header")
	ErrInvalidVersion = errors.New("frame: unsupported format version")
	ErrInvalidCodec   = errors.New("frame: unsupported codec")
	ErrSizeMismatch   = errors.New("frame: decompressed size mismatch")
)

// header is the 16-byte record prefixing every frame stream:
//
//	byte 0:    version
//	byte 1:    codec id
//	byte 2:    flags (shuffle mode, memcpy)
//	byte 3:    type size (element size for shuffle)
//	bytes 4-8:  original (pre-shuffle) size, little-endian uint32
//	bytes 8-12: block size used for BitShuffle mode, little-endian uint32
//	bytes 12-16: compressed payload size, little-endian uint32
type header struct {
	version   uint8
	codec     Codec
	flags     uint8
	typeSize  uint8
	origSize  uint32
	blockSize uint32
	compSize  uint32
}

func parseHeader(data []byte) (header, error) {
	if len(data) < HeaderSize {
		return header{}, ErrInvalidHeader
	}
	h := header{
		version:   data[0],
		codec:     Codec(data[1]),
		flags:     data[2],
		typeSize:  data[3],
		origSize:  binary.LittleEndian.Uint32(data[4:8]),
		blockSize: binary.LittleEndian.Uint32(data[8:12]),
		compSize:  binary.LittleEndian.Uint32(data[12:16]),
	}
	if h.version != FormatVersion {
		return header{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidVersion, h.version, FormatVersion)
	}
	return h, nil
}

func (h header) bytes() []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = h.version
	buf[1] = uint8(h.codec)
	buf[2] = h.flags
	buf[3] = h.typeSize
	binary.LittleEndian.PutUint32(buf[4:8], h.origSize)
	binary.LittleEndian.PutUint32(buf[8:12], h.blockSize)
	binary.LittleEndian.PutUint32(buf[12:16], h.compSize)
	return buf
}

// isMemcpy reports whether the payload was stored verbatim because the
// codec couldn't shrink it.
func (h header) isMemcpy() bool {
	return h.flags&flagMemcpy != 0
}

func (h header) shuffleMode() Shuffle {
	switch {
	case h.flags&flagBitShuffle != 0:
		return BitShuffle
	case h.flags&flagByteShuffle != 0:
		return ByteShuffle
	default:
		return NoShuffle
	}
}

func shuffleFlags(s Shuffle) uint8 {
	switch s {
	case BitShuffle:
		return flagBitShuffle
	case ByteShuffle:
		return flagByteShuffle
	default:
		return 0
	}
}
