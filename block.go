package bitshuffle

// blockPlan describes the fixed block decomposition of a buffer: nFull
// whole blocks of blockSize elements, one optional partial block of
// partialSize elements (itself rounded down to a multiple of 8), and a
// verbatim tail of leftoverSize elements. See §4.3.
type blockPlan struct {
	blockSize    int
	nFull        int
	partialSize  int // elements; 0 if none
	leftoverSize int // elements (< 8); always < 8
}

// resolveBlockSize implements §4.3 step 1: 0 means "use the default for
// this elemSize"; anything else must be a positive multiple of 8.
func resolveBlockSize(elemSize, blockSize int) (int, error) {
	if blockSize == 0 {
		return DefaultBlockSize(elemSize), nil
	}
	if blockSize <= 0 || blockSize%8 != 0 {
		return 0, ErrBlockSizeInvalid
	}
	return blockSize, nil
}

func planBlocks(size, blockSize int) blockPlan {
	nFull := size / blockSize
	rem := size % blockSize
	partial := (rem / 8) * 8
	leftover := size % 8
	return blockPlan{
		blockSize:    blockSize,
		nFull:        nFull,
		partialSize:  partial,
		leftoverSize: leftover,
	}
}
