package bitshuffle

// tier identifies which primitive realization the driver dispatches to.
// Selection is fixed at build time (see tier_scalar.go, tier_sse2.go,
// tier_avx2.go) via the bshuffle_sse2/bshuffle_avx2 build tags — never at
// runtime — matching the spec's "single configuration flag tri-state"
// requirement. All three realizations of every primitive are always
// compiled in, regardless of buildTier, so equivalence tests can call them
// directly in one binary.
type tier int

const (
	tierScalar tier = iota
	tierSSE2
	tierAVX2
)
