package bitshuffle

import (
	"context"
	"encoding/binary"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"
)

// blockHeaderSize is the 4-byte big-endian length prefix that precedes
// every block in the §4.5 container. Its top bit is the raw-store flag (see
// storeRawBlock); the remaining 31 bits are the payload length, which is
// always well within range for any block size this package will ever emit.
const blockHeaderSize = 4

const (
	rawStoreFlag    = uint32(1) << 31
	blockLengthMask = rawStoreFlag - 1
)

// compressLZ4Block bitshuffles n elements and LZ4-compresses the result,
// returning a standalone header+payload record ready to be placed into the
// output stream.
func compressLZ4Block(src []byte, n, elemSize int) ([]byte, error) {
	shuffled := make([]byte, n*elemSize)
	if _, err := bitElemTranspose(shuffled, src, n, elemSize); err != nil {
		return nil, err
	}

	payload := make([]byte, lz4.CompressBlockBound(len(shuffled)))
	written, err := lz4.CompressBlock(shuffled, payload, nil)
	if err != nil {
		return nil, lz4Err("compress", err)
	}
	if written == 0 {
		// CompressBlock returns (0, nil) whenever shuffled is incompressible
		// (see pierrec/lz4/v4's CompressBlock doc, mirrored by the teacher's
		// codec.go comment "data is incompressible, return as-is"), not only
		// for empty input. Fall back to storing the shuffled block verbatim
		// rather than failing the whole stream on this input.
		return storeRawBlock(shuffled), nil
	}

	record := make([]byte, blockHeaderSize+written)
	binary.BigEndian.PutUint32(record, uint32(written))
	copy(record[blockHeaderSize:], payload[:written])
	return record, nil
}

// storeRawBlock wraps an already-shuffled block in a header+payload record
// with the raw-store flag set, for blocks LZ4 couldn't shrink.
func storeRawBlock(shuffled []byte) []byte {
	record := make([]byte, blockHeaderSize+len(shuffled))
	binary.BigEndian.PutUint32(record, rawStoreFlag|uint32(len(shuffled)))
	copy(record[blockHeaderSize:], shuffled)
	return record
}

// decompressLZ4Block undoes compressLZ4Block: compressed is exactly the
// payload bytes (header already stripped and used to bound the slice), and
// raw reports whether the header's raw-store flag was set.
func decompressLZ4Block(dst, compressed []byte, n, elemSize int, mode DecompressMode, raw bool) error {
	if raw {
		if len(compressed) != n*elemSize {
			return ErrLZ4SizeMismatch
		}
		_, err := bitElemTransposeInverse(dst, compressed, n, elemSize)
		return err
	}

	tmp := make([]byte, n*elemSize)
	written, err := lz4.UncompressBlock(compressed, tmp)
	if err != nil {
		return lz4Err("decompress", err)
	}
	if mode == ModeSafe && written != n*elemSize {
		return ErrLZ4SizeMismatch
	}
	_, err = bitElemTransposeInverse(dst, tmp, n, elemSize)
	return err
}

// placeSequential walks out's I/O chain claiming each chunk's length in
// turn and copying it into place, realizing §4.5 step 5 ("reserves L+4
// bytes on the output side of the chain") for a batch of already-computed
// variable-length records.
func placeSequential(out []byte, chunks [][]byte) int {
	chain := newIOChain(nil, out)
	total := 0
	for _, c := range chunks {
		off, buf := chain.getOut()
		chain.setNextOut(off, len(c))
		copy(buf[:len(c)], c)
		total += len(c)
	}
	return total
}

type lz4Span struct {
	off int  // offset of the payload (header already consumed)
	n   int  // payload length in bytes
	raw bool // true if the payload is a verbatim (unLZ4'd) shuffled block
}

// indexLZ4Blocks walks in's I/O chain sequentially, reading each block's
// 4-byte header to learn where the next block begins and whether it's a
// raw-stored block. This is the one part of the container that cannot be
// parallelized up front: the compressed lengths are only discoverable by
// reading the stream in order. It never panics on truncated or malformed
// input; it reports ErrLZ4SizeMismatch instead.
func indexLZ4Blocks(in []byte, nBlocks int) ([]lz4Span, error) {
	chain := newIOChain(in, nil)
	spans := make([]lz4Span, nBlocks)
	for i := 0; i < nBlocks; i++ {
		off, buf := chain.getIn()
		if len(buf) < blockHeaderSize {
			return nil, ErrLZ4SizeMismatch
		}
		rawHeader := binary.BigEndian.Uint32(buf[:blockHeaderSize])
		raw := rawHeader&rawStoreFlag != 0
		length := int(rawHeader & blockLengthMask)
		if length < 0 || len(buf) < blockHeaderSize+length {
			return nil, ErrLZ4SizeMismatch
		}
		chain.setNextIn(off, blockHeaderSize+length)
		spans[i] = lz4Span{off: off + blockHeaderSize, n: length, raw: raw}
	}
	return spans, nil
}

// CompressLZ4 bitshuffles and LZ4-compresses size elements of elemSize
// bytes each into the header-less block container of §4.5, returning the
// number of bytes written to dst.
func CompressLZ4(ctx context.Context, dst, src []byte, size, elemSize, blockSize int, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	resolved, err := resolveBlockSize(elemSize, blockSize)
	if err != nil {
		return 0, err
	}
	plan := planBlocks(size, resolved)

	nBlocks := plan.nFull
	if plan.partialSize > 0 {
		nBlocks++
	}
	records := make([][]byte, nBlocks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := 0; i < nBlocks; i++ {
		i := i
		n := plan.blockSize
		elemOff := i * plan.blockSize
		if i == plan.nFull {
			n = plan.partialSize
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			off := elemOff * elemSize
			rec, err := compressLZ4Block(src[off:off+n*elemSize], n, elemSize)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	written := placeSequential(dst, records)

	if plan.leftoverSize > 0 {
		processed := plan.nFull*plan.blockSize + plan.partialSize
		off := processed * elemSize
		n := plan.leftoverSize * elemSize
		copyLeftoverThroughChain(dst[written:written+n], src[off:off+n], n)
		written += n
	}
	return written, nil
}

// DecompressLZ4 inverts CompressLZ4.
func DecompressLZ4(ctx context.Context, dst, src []byte, size, elemSize, blockSize int, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	resolved, err := resolveBlockSize(elemSize, blockSize)
	if err != nil {
		return 0, err
	}
	plan := planBlocks(size, resolved)

	nBlocks := plan.nFull
	if plan.partialSize > 0 {
		nBlocks++
	}
	spans, err := indexLZ4Blocks(src, nBlocks)
	if err != nil {
		return 0, err
	}
	consumed := 0
	if nBlocks > 0 {
		last := spans[nBlocks-1]
		consumed = last.off + last.n
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := 0; i < nBlocks; i++ {
		i := i
		n := plan.blockSize
		elemOff := i * plan.blockSize
		if i == plan.nFull {
			n = plan.partialSize
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			span := spans[i]
			outOff := elemOff * elemSize
			return decompressLZ4Block(dst[outOff:outOff+n*elemSize], src[span.off:span.off+span.n], n, elemSize, opts.Mode, span.raw)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	processed := plan.nFull*plan.blockSize + plan.partialSize
	total := consumed
	if plan.leftoverSize > 0 {
		srcOff := consumed
		dstOff := processed * elemSize
		n := plan.leftoverSize * elemSize
		if srcOff+n > len(src) || dstOff+n > len(dst) {
			return 0, ErrLZ4SizeMismatch
		}
		copyLeftoverThroughChain(dst[dstOff:dstOff+n], src[srcOff:srcOff+n], n)
		total += n
	}
	return total, nil
}
