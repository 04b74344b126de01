package bitshuffle

import "testing"

func TestResolveBlockSize(t *testing.T) {
	if got, err := resolveBlockSize(4, 0); err != nil || got != DefaultBlockSize(4) {
		t.Errorf("resolveBlockSize(4, 0) = (%d, %v), want (%d, nil)", got, err, DefaultBlockSize(4))
	}
	if got, err := resolveBlockSize(4, 64); err != nil || got != 64 {
		t.Errorf("resolveBlockSize(4, 64) = (%d, %v), want (64, nil)", got, err)
	}
	if _, err := resolveBlockSize(4, -8); err != ErrBlockSizeInvalid {
		t.Errorf("resolveBlockSize(4, -8) err = %v, want ErrBlockSizeInvalid", err)
	}
	if _, err := resolveBlockSize(4, 13); err != ErrBlockSizeInvalid {
		t.Errorf("resolveBlockSize(4, 13) err = %v, want ErrBlockSizeInvalid", err)
	}
}

func TestPlanBlocks(t *testing.T) {
	tests := []struct {
		size, blockSize                      int
		wantFull, wantPartial, wantLeftover int
	}{
		{4096, 128, 32, 0, 0},
		{4096 + 64, 128, 32, 64, 0},
		{4096 + 64 + 5, 128, 32, 64, 5},
		{7, 8, 0, 0, 7},
		{8, 8, 1, 0, 0},
	}
	for _, tt := range tests {
		p := planBlocks(tt.size, tt.blockSize)
		if p.nFull != tt.wantFull || p.partialSize != tt.wantPartial || p.leftoverSize != tt.wantLeftover {
			t.Errorf("planBlocks(%d, %d) = {%d, %d, %d}, want {%d, %d, %d}",
				tt.size, tt.blockSize, p.nFull, p.partialSize, p.leftoverSize,
				tt.wantFull, tt.wantPartial, tt.wantLeftover)
		}
	}
}

func TestIOChainSequentialAdvance(t *testing.T) {
	in := makeTestData(32)
	out := make([]byte, 32)
	chain := newIOChain(in, out)

	offsets := []int{0, 8, 20}
	lens := []int{8, 12, 12}
	for i := range offsets {
		inOff, _ := chain.getIn()
		if inOff != offsets[i] {
			t.Fatalf("getIn() offset = %d, want %d", inOff, offsets[i])
		}
		chain.setNextIn(inOff, lens[i])

		outOff, _ := chain.getOut()
		if outOff != offsets[i] {
			t.Fatalf("getOut() offset = %d, want %d", outOff, offsets[i])
		}
		chain.setNextOut(outOff, lens[i])
	}
}
