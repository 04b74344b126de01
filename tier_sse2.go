//go:build bshuffle_sse2 && !bshuffle_avx2

package bitshuffle

// buildTier pins this build to the 16-byte-blocked ("SSE2") primitive tier.
const buildTier = tierSSE2

// UsingSSE2 reports whether this binary was built with the SSE2 tier.
func UsingSSE2() bool { return true }

// UsingAVX2 reports whether this binary was built with the AVX2 tier.
func UsingAVX2() bool { return false }
