package sortdrv

import (
	"math"

	"golang.org/x/exp/slices"

	"pushopt/internal/block"
	"pushopt/internal/state"
)

// choosePivots picks (p1, p2), p1 <= p2, from blk's multiset of values.
// Past cfg.MaxDepth recursions deep, tuning is disabled in favor of the
// deterministic (20th, 80th) percentile pivots, which bounds how much
// time deep recursions spend tuning pivots that barely move the needle on
// a small block; otherwise a Nelder-Mead search over (u, v) in [0,1]^2
// picks the order-statistic indices that minimize the executed op-count
// of split+recurse on a cloned state.
func choosePivots(cfg Config, st *state.State, blk block.Block) (p1, p2 int) {
	sorted := make([]int, blk.Size)
	for i := 0; i < blk.Size; i++ {
		sorted[i] = block.Value(st, blk.Dest, i)
	}
	slices.Sort(sorted)

	n := blk.Size
	if st.SearchDepth > cfg.MaxDepth {
		return sorted[(20*n)/100], sorted[(80*n)/100]
	}

	f1, f2 := optimizePivots(cfg, st, blk, sorted)
	i1 := fToIndex(f1, n)
	i2 := fToIndex(f2, n)
	if i2 < i1 {
		i2 = i1
	}
	// With i2 == 0 every value is >= p2 and the whole block would go to
	// bot, so the recursion on it would not shrink.
	if i2 == 0 && n > 1 {
		i2 = 1
	}
	return sorted[i1], sorted[i2]
}

// evaluatePivots clones st, splits the clone around (p1, p2), recursively
// sorts the three resulting sub-blocks on the clone, and returns the
// clone's total op-count — the objective Nelder-Mead minimizes.
func evaluatePivots(cfg Config, st *state.State, blk block.Block, p1, p2 int) int {
	clone := st.Clone()
	clone.SearchDepth++
	split := block.Split(clone, blk, p1, p2)
	quicksortImpl(cfg, clone, split.Bot)
	quicksortImpl(cfg, clone, split.Mid)
	quicksortImpl(cfg, clone, split.Top)
	return clone.OpCount
}

// uvToF maps the simplex's (u, v) in [0,1]^2 to a valid f1 <= f2 pair.
func uvToF(u, v float64) (f1, f2 float64) {
	f1 = math.Max(0, u)
	f2 = math.Min(1, u+(1-u)*v)
	return
}

// fToIndex rounds a fractional pivot position to a sorted-index in [0,n).
func fToIndex(f float64, n int) int {
	if n == 0 {
		return 0
	}
	idx := int(math.Max(0, math.Floor(f*float64(n-1)+0.5)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

const sizeMax = int(^uint(0) >> 1) // math.MaxInt, used as "unevaluated"/"infinity"

// evaluateIndexCached evaluates (sorted by index pair i1 <= i2), memoizing
// by key = i1*n+i2 within one optimize call, and honoring the caller's
// best_cost early-exit: if st's current op-count already meets or exceeds
// bestCost, the candidate can't win and evaluation is skipped.
func evaluateIndexCached(cfg Config, st *state.State, blk block.Block, sorted []int, i1, i2 int, cache []int, n, bestCost int) int {
	if st.OpCount >= bestCost {
		return sizeMax
	}
	key := i1*n + i2
	if cache[key] != -1 {
		return cache[key]
	}
	cost := evaluatePivots(cfg, st, blk, sorted[i1], sorted[i2])
	cache[key] = cost
	return cost
}

func simplexDiameter(simplex [3][2]float64) float64 {
	max := 0.0
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			d := math.Max(math.Abs(simplex[i][0]-simplex[j][0]), math.Abs(simplex[i][1]-simplex[j][1]))
			if d > max {
				max = d
			}
		}
	}
	return max
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func bestOf(fvals [3]int) int {
	best := sizeMax
	for _, f := range fvals {
		if f < best {
			best = f
		}
	}
	return best
}

// indexPairFor maps a (u, v) simplex vertex to a clamped (i1, i2) pair.
func indexPairFor(u, v float64, n int) (i1, i2 int) {
	f1, f2 := uvToF(u, v)
	i1 = fToIndex(f1, n)
	i2 = fToIndex(f2, n)
	if i2 < i1 {
		i2 = i1
	}
	return
}

// optimizePivots runs standard Nelder-Mead on a triangle in [0,1]^2 —
// reflect, expand, contract, shrink — then scans a neighborhood in index
// space around the winner, and returns the winning (f1, f2).
func optimizePivots(cfg Config, st *state.State, blk block.Block, sorted []int) (f1, f2 float64) {
	n := blk.Size
	if n <= 1 {
		return 0, 0
	}

	cache := make([]int, n*n)
	for i := range cache {
		cache[i] = -1
	}

	const baseU, baseV = 0.33, 0.5
	simplex := [3][2]float64{
		{baseU, baseV},
		{math.Min(1, baseU+cfg.InitialScale), baseV},
		{baseU, math.Min(1, baseV+cfg.InitialScale)},
	}

	const alpha, gamma, rho, sigma = 1.0, 2.0, 0.5, 0.5

	fvals := [3]int{sizeMax, sizeMax, sizeMax}
	for i := range fvals {
		i1, i2 := indexPairFor(simplex[i][0], simplex[i][1], n)
		fvals[i] = evaluateIndexCached(cfg, st, blk, sorted, i1, i2, cache, n, bestOf(fvals))
	}

	reevaluate := func(u, v float64, best int) int {
		i1, i2 := indexPairFor(u, v, n)
		return evaluateIndexCached(cfg, st, blk, sorted, i1, i2, cache, n, best)
	}

	for iter := 0; iter < cfg.MaxIters; iter++ {
		// sort simplex vertices by fvals ascending
		for a := 0; a < 2; a++ {
			best := a
			for b := a + 1; b < 3; b++ {
				if fvals[b] < fvals[best] {
					best = b
				}
			}
			if best != a {
				fvals[a], fvals[best] = fvals[best], fvals[a]
				simplex[a], simplex[best] = simplex[best], simplex[a]
			}
		}

		if simplexDiameter(simplex) < cfg.Tol {
			break
		}

		centroid := [2]float64{
			0.5 * (simplex[0][0] + simplex[1][0]),
			0.5 * (simplex[0][1] + simplex[1][1]),
		}

		xr := [2]float64{
			clamp01(centroid[0] + alpha*(centroid[0]-simplex[2][0])),
			clamp01(centroid[1] + alpha*(centroid[1]-simplex[2][1])),
		}
		fr := reevaluate(xr[0], xr[1], fvals[0])

		switch {
		case fr < fvals[0]:
			xe := [2]float64{
				clamp01(centroid[0] + gamma*(xr[0]-centroid[0])),
				clamp01(centroid[1] + gamma*(xr[1]-centroid[1])),
			}
			fe := reevaluate(xe[0], xe[1], fvals[0])
			if fe < fr {
				simplex[2], fvals[2] = xe, fe
			} else {
				simplex[2], fvals[2] = xr, fr
			}
		case fr < fvals[1]:
			simplex[2], fvals[2] = xr, fr
		case fr < fvals[2]:
			xc := [2]float64{
				clamp01(centroid[0] + rho*(xr[0]-centroid[0])),
				clamp01(centroid[1] + rho*(xr[1]-centroid[1])),
			}
			fc := reevaluate(xc[0], xc[1], fr)
			if fc <= fr {
				simplex[2], fvals[2] = xc, fc
			} else {
				shrinkSimplex(&simplex, &fvals, sigma, reevaluate)
			}
		default:
			xc := [2]float64{
				clamp01(centroid[0] + rho*(simplex[2][0]-centroid[0])),
				clamp01(centroid[1] + rho*(simplex[2][1]-centroid[1])),
			}
			fc := reevaluate(xc[0], xc[1], fvals[2])
			if fc < fvals[2] {
				simplex[2], fvals[2] = xc, fc
			} else {
				shrinkSimplex(&simplex, &fvals, sigma, reevaluate)
			}
		}
	}

	bestIdx := 0
	for i := 1; i < 3; i++ {
		if fvals[i] < fvals[bestIdx] {
			bestIdx = i
		}
	}
	bestI1, bestI2 := indexPairFor(simplex[bestIdx][0], simplex[bestIdx][1], n)

	finalI1, finalI2 := neighborhoodRefine(cfg, st, blk, sorted, cache, n, bestI1, bestI2, fvals[bestIdx])

	f1 = math.Max(0, float64(finalI1)/float64(n-1))
	f2 = math.Min(1, float64(finalI2)/float64(n-1))
	return
}

func shrinkSimplex(simplex *[3][2]float64, fvals *[3]int, sigma float64, reevaluate func(u, v float64, best int) int) {
	for i := 1; i < 3; i++ {
		simplex[i][0] = clamp01(simplex[0][0] + sigma*(simplex[i][0]-simplex[0][0]))
		simplex[i][1] = clamp01(simplex[0][1] + sigma*(simplex[i][1]-simplex[0][1]))
		fvals[i] = reevaluate(simplex[i][0], simplex[i][1], fvals[0])
	}
}

// neighborhoodRefine scans the (2r+1)^2 neighborhood in index space around
// (bestI1, bestI2), respecting 0 <= i1 <= i2 < n, and returns the best
// index pair found. Nelder-Mead converges in continuous (u,v) space, but
// pivots are ultimately order-statistic indices, so a final discrete scan
// around the converged point catches anything rounding lost.
func neighborhoodRefine(cfg Config, st *state.State, blk block.Block, sorted []int, cache []int, n, bestI1, bestI2, bestCost int) (int, int) {
	r := cfg.FinalRadius
	if r == 0 {
		return bestI1, bestI2
	}
	best := evaluateIndexCached(cfg, st, blk, sorted, bestI1, bestI2, cache, n, bestCost)
	finalI1, finalI2 := bestI1, bestI2
	for di1 := -r; di1 <= r; di1++ {
		for di2 := -r; di2 <= r; di2++ {
			ni1 := bestI1 + di1
			ni2 := bestI2 + di2
			if ni1 < 0 || ni2 < 0 || ni1 >= n || ni2 >= n || ni2 < ni1 {
				continue
			}
			c := evaluateIndexCached(cfg, st, blk, sorted, ni1, ni2, cache, n, best)
			if c < best {
				best = c
				finalI1, finalI2 = ni1, ni2
			}
		}
	}
	return finalI1, finalI2
}
