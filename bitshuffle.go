package bitshuffle

import (
	"math/bits"

	"github.com/pierrec/lz4/v4"
)

const (
	minRecommendBlock   = 128
	blockedMultiple     = 8
	targetBlockSizeByte = 8192
)

// DefaultBlockSize implements §4.4's stable block-size formula. It must
// never change between versions: data encoded with one version's default
// has to stay decodable by every later version that doesn't pass an
// explicit blockSize.
func DefaultBlockSize(elemSize int) int {
	blockSize := targetBlockSizeByte / elemSize
	blockSize = (blockSize / blockedMultiple) * blockedMultiple
	if blockSize < minRecommendBlock {
		return minRecommendBlock
	}
	return blockSize
}

// CompressBound returns an upper bound, in bytes, on the size of the
// CompressLZ4 output for the given size/elemSize/blockSize, or
// ErrSizeOverflow if the computation would exceed the range of int. A block
// LZ4 can't shrink is stored raw at blockBytes+header bytes, which
// lz4.CompressBlockBound already exceeds, so no separate case is needed.
func CompressBound(size, elemSize, blockSize int) (int, error) {
	resolved, err := resolveBlockSize(elemSize, blockSize)
	if err != nil {
		return 0, err
	}
	plan := planBlocks(size, resolved)

	fullBound, ok := mulOK(lz4.CompressBlockBound(plan.blockSize*elemSize)+blockHeaderSize, plan.nFull)
	if !ok {
		return 0, ErrSizeOverflow
	}
	bound := fullBound
	if plan.partialSize > 0 {
		partialBound, ok := addOK(lz4.CompressBlockBound(plan.partialSize*elemSize), blockHeaderSize)
		if !ok {
			return 0, ErrSizeOverflow
		}
		if bound, ok = addOK(bound, partialBound); !ok {
			return 0, ErrSizeOverflow
		}
	}
	leftoverBytes, ok := mulOK(plan.leftoverSize, elemSize)
	if !ok {
		return 0, ErrSizeOverflow
	}
	if bound, ok = addOK(bound, leftoverBytes); !ok {
		return 0, ErrSizeOverflow
	}
	return bound, nil
}

func mulOK(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(int(^uint(0)>>1)) {
		return 0, false
	}
	return int(lo), true
}

func addOK(a, b int) (int, bool) {
	sum := a + b
	if sum < a || sum < b {
		return 0, false
	}
	return sum, true
}
