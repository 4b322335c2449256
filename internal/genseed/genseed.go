// Package genseed generates random permutations of distinct integers for
// benchmarking and fuzz-style exercise of the sort/optimize pipeline. The
// core itself carries no determinism seed, so reproducible input
// generation lives here, one layer above the core.
package genseed

import (
	"math/rand"

	"pushopt/internal/errs"
)

// Generate returns a random permutation of n distinct integers in
// [0, n), seeded by seed so the same (n, seed) pair always reproduces the
// same sequence.
func Generate(n int, seed int64) []int {
	errs.Assert(n >= 0, "genseed.Generate: n must be non-negative, got %d", n)
	values := make([]int, n)
	for i := range values {
		values[i] = i
	}
	rand.New(rand.NewSource(seed)).Shuffle(n, func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	return values
}

// GenerateRange returns n distinct integers drawn uniformly without
// replacement from [lo, hi), seeded by seed.
func GenerateRange(n int, lo, hi int, seed int64) []int {
	errs.Assert(hi > lo, "genseed.GenerateRange: hi must be > lo, got lo=%d hi=%d", lo, hi)
	span := hi - lo
	errs.Assert(n <= span, "genseed.GenerateRange: n=%d exceeds range size %d", n, span)

	pool := make([]int, span)
	for i := range pool {
		pool[i] = lo + i
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(span, func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	out := make([]int, n)
	copy(out, pool[:n])
	return out
}
