package bitshuffle

// Primitive A: byte-transpose within elements. Input shape [size,
// elem_size], output shape [elem_size, size]: out[j, i] = in[i, j].
//
// All three tiers compute the identical formula; they differ only in how
// many elements of the outer loop are unrolled together per iteration (8,
// 16, or 32 — standing in for the 64/128/256-bit register width a real
// SIMD realization would process per instruction). Because the formula
// itself never changes, the three tiers are bit-identical by construction,
// which is what lets byteElemScalar/SSE2/AVX2 all be compiled
// unconditionally and cross-checked in the same test binary.
func byteElemBlocked(dst, src []byte, size, elemSize, step int) {
	for ii := 0; ii+step-1 < size; ii += step {
		for jj := 0; jj < elemSize; jj++ {
			base := jj*size + ii
			in := ii * elemSize
			for kk := 0; kk < step; kk++ {
				dst[base+kk] = src[in+kk*elemSize+jj]
			}
		}
	}
	for ii := size - size%step; ii < size; ii++ {
		for jj := 0; jj < elemSize; jj++ {
			dst[jj*size+ii] = src[ii*elemSize+jj]
		}
	}
}

func byteElemScalar(dst, src []byte, size, elemSize int) { byteElemBlocked(dst, src, size, elemSize, 8) }
func byteElemSSE2(dst, src []byte, size, elemSize int)   { byteElemBlocked(dst, src, size, elemSize, 16) }
func byteElemAVX2(dst, src []byte, size, elemSize int)   { byteElemBlocked(dst, src, size, elemSize, 32) }
