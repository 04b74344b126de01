//go:build bshuffle_avx2

package bitshuffle

// buildTier pins this build to the 32-byte-blocked ("AVX2") primitive tier.
// AVX2 availability implies SSE2 availability, matching the reference
// implementation's own #if defined(__AVX2__) && defined(__SSE2__) gate.
const buildTier = tierAVX2

// UsingSSE2 reports whether this binary was built with the SSE2 tier.
func UsingSSE2() bool { return true }

// UsingAVX2 reports whether this binary was built with the AVX2 tier.
func UsingAVX2() bool { return true }
