package bitshuffle

import (
	"bytes"
	"testing"
)

func TestBitElemTransposeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    int // elements
		elem int // bytes per element
	}{
		{"float32", 1024, 4},
		{"float64", 1024, 8},
		{"int16", 2048, 2},
		{"int8", 4096, 1},
		{"wide-elem", 128, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := makeTestData(tt.n * tt.elem)
			shuffled := make([]byte, len(src))
			restored := make([]byte, len(src))

			n, err := bitElemTranspose(shuffled, src, tt.n, tt.elem)
			if err != nil {
				t.Fatalf("bitElemTranspose: %v", err)
			}
			if n != len(src) {
				t.Errorf("bitElemTranspose returned %d, want %d", n, len(src))
			}
			if _, err := bitElemTransposeInverse(restored, shuffled, tt.n, tt.elem); err != nil {
				t.Fatalf("bitElemTransposeInverse: %v", err)
			}
			if !bytes.Equal(src, restored) {
				t.Errorf("round trip mismatch for elemSize=%d", tt.elem)
			}
		})
	}
}

func TestBitElemTransposeRejectsBadSize(t *testing.T) {
	// 10 elements is not a multiple of 8.
	src := makeTestData(40)
	dst := make([]byte, 40)
	if _, err := bitElemTranspose(dst, src, 10, 4); err != ErrInvalidSize {
		t.Errorf("got err=%v, want ErrInvalidSize", err)
	}
}

// TestBitElemTransposeChangesCompressibility checks that shuffling
// slowly-varying typed data produces long runs of repeated bytes, which is
// the entire point of the filter.
func TestBitElemTransposeChangesCompressibility(t *testing.T) {
	n, elem := 1024, 4
	src := make([]byte, n*elem)
	for i := 0; i < n; i++ {
		// A narrow range of 32-bit values: high bytes barely change.
		v := uint32(1000 + i%4)
		src[i*4] = byte(v)
		src[i*4+1] = byte(v >> 8)
		src[i*4+2] = byte(v >> 16)
		src[i*4+3] = byte(v >> 24)
	}
	shuffled := make([]byte, len(src))
	if _, err := bitElemTranspose(shuffled, src, n, elem); err != nil {
		t.Fatal(err)
	}

	runs := func(b []byte) int {
		r := 1
		for i := 1; i < len(b); i++ {
			if b[i] != b[i-1] {
				r++
			}
		}
		return r
	}
	if got, want := runs(shuffled), runs(src); got >= want {
		t.Errorf("shuffled data has %d runs, want fewer than unshuffled %d runs", got, want)
	}
}
