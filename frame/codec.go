package frame

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/snappy"
	kzlib "github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// codecImpl is the interface every registered codec implements.
type codecImpl interface {
	Compress(data []byte, level int) ([]byte, error)
	Decompress(data []byte, expectedSize int) ([]byte, error)
	Name() string
}

// funcCodec adapts a pair of plain functions to codecImpl, so the five
// builtin codecs below are values rather than five near-identical types.
type funcCodec struct {
	name       string
	compress   func(data []byte, level int) ([]byte, error)
	decompress func(data []byte, expectedSize int) ([]byte, error)
}

func (c funcCodec) Name() string { return c.name }

func (c funcCodec) Compress(data []byte, level int) ([]byte, error) {
	return c.compress(data, level)
}

func (c funcCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	return c.decompress(data, expectedSize)
}

var codecs = map[Codec]codecImpl{
	LZ4:    funcCodec{"lz4", lz4Compress, lz4Decompress},
	LZ4HC:  funcCodec{"lz4hc", lz4hcCompress, lz4Decompress},
	ZLIB:   funcCodec{"zlib", zlibCompress, zlibDecompress},
	ZSTD:   funcCodec{"zstd", zstdCompress, zstdDecompress},
	Snappy: funcCodec{"snappy", snappyCompress, snappyDecompress},
}

// RegisterCodec installs a custom codec implementation under id, replacing
// any existing registration (including the five built in above).
func RegisterCodec(id Codec, c codecImpl) {
	codecs[id] = c
}

// GetCodec returns the codec registered for id.
func GetCodec(id Codec) (codecImpl, bool) {
	c, ok := codecs[id]
	return c, ok
}

// ListCodecs returns every registered codec id.
func ListCodecs() []Codec {
	out := make([]Codec, 0, len(codecs))
	for id := range codecs {
		out = append(out, id)
	}
	return out
}

// lz4Decompress backs both LZ4 and LZ4HC: HC only changes how a block is
// produced, not how it's read back.
func lz4Decompress(data []byte, expectedSize int) ([]byte, error) {
	buf := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return buf[:n], nil
}

// incompressibleOrData covers the case every block-LZ4 compressor shares:
// CompressBlock/CompressBlockHC return (0, nil) rather than an error when
// they couldn't shrink data at all. frame.Compress is the one that decides
// whether to fall back to its own memcpy flag, so here it's enough to hand
// back something decompressible: the input itself.
func incompressibleOrData(n int, buf, data []byte) []byte {
	if n == 0 {
		return data
	}
	return buf[:n]
}

func lz4Compress(data []byte, level int) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, buf, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return incompressibleOrData(n, buf, data), nil
}

// lz4hcLevel maps the 1-9 frame.Options.Level scale onto pierrec's HC
// compression-level constants.
func lz4hcLevel(level int) lz4.CompressionLevel {
	switch {
	case level <= 3:
		return lz4.Level1
	case level <= 5:
		return lz4.Level5
	case level <= 7:
		return lz4.Level7
	default:
		return lz4.Level9
	}
}

func lz4hcCompress(data []byte, level int) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	ht := make([]int, 1<<16)
	n, err := lz4.CompressBlockHC(data, buf, lz4hcLevel(level), ht, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4hc compress: %w", err)
	}
	return incompressibleOrData(n, buf, data), nil
}

func zlibCompress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := kzlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("zlib create writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

func zlibDecompress(data []byte, expectedSize int) ([]byte, error) {
	r, err := kzlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib create reader: %w", err)
	}
	defer r.Close()

	buf := make([]byte, expectedSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("zlib read: %w", err)
	}
	return buf[:n], nil
}

// zstdLevels maps frame.Options.Level buckets onto zstd's named encoder
// speed presets; zstdEncoders holds one persistent *zstd.Encoder per bucket
// since construction isn't free and encoders are safe for concurrent use.
var zstdLevels = [...]zstd.EncoderLevel{
	zstd.SpeedFastest,
	zstd.SpeedDefault,
	zstd.SpeedBetterCompression,
	zstd.SpeedBestCompression,
}

var zstdEncoders = func() (out [len(zstdLevels)]*zstd.Encoder) {
	for i, lvl := range zstdLevels {
		e, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(lvl))
		out[i] = e
	}
	return out
}()

var zstdDecoder = func() *zstd.Decoder {
	d, _ := zstd.NewReader(nil)
	return d
}()

func zstdLevelIndex(level int) int {
	switch {
	case level <= 2:
		return 0
	case level <= 4:
		return 1
	case level <= 6:
		return 2
	default:
		return 3
	}
}

func zstdCompress(data []byte, level int) ([]byte, error) {
	return zstdEncoders[zstdLevelIndex(level)].EncodeAll(data, nil), nil
}

func zstdDecompress(data []byte, expectedSize int) ([]byte, error) {
	buf, err := zstdDecoder.DecodeAll(data, make([]byte, 0, expectedSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return buf, nil
}

func snappyCompress(data []byte, level int) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func snappyDecompress(data []byte, expectedSize int) ([]byte, error) {
	buf := make([]byte, expectedSize)
	result, err := snappy.Decode(buf, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	return result, nil
}
