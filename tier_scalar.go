//go:build !bshuffle_sse2 && !bshuffle_avx2

package bitshuffle

// buildTier pins this build to the scalar primitive tier. Build with
// -tags bshuffle_sse2 or -tags bshuffle_avx2 to select a wider tier.
const buildTier = tierScalar

// UsingSSE2 reports whether this binary was built with the SSE2 tier.
func UsingSSE2() bool { return false }

// UsingAVX2 reports whether this binary was built with the AVX2 tier.
func UsingAVX2() bool { return false }
