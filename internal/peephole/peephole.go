// Package peephole implements the post-pass optimizer that rewrites a
// recorded op trace into a shorter one. For each history index it
// backtrack-searches short op sequences that reach a state the original
// trace revisits later, then a backward dynamic program stitches the best
// combination of skips into a single replacement sequence.
//
// The per-search candidate sequence lives on the call stack, scoped to
// one backtrack call, rather than in any shared buffer — so a candidate
// sequence under construction for one history index can never be
// confused with another's. Skip search across history indices is
// dispatched over a worker pool rather than run as a flat loop.
package peephole

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"pushopt/internal/op"
	"pushopt/internal/state"
)

// Config bundles the peephole optimizer's knobs.
type Config struct {
	// SearchWidth bounds how far ahead in history find_future looks.
	// Default 1000.
	SearchWidth int
	// SearchDepth bounds the length of a candidate skip sequence.
	// Default 4.
	SearchDepth int
}

// DefaultConfig returns the peephole optimizer's default knob values.
func DefaultConfig() Config {
	return Config{SearchWidth: 1000, SearchDepth: 4}
}

// TraceFunc, when non-nil, is invoked once per accepted skip during the
// final forward walk — a first-class, opt-in hook for observing which
// skips the optimizer took.
type TraceFunc func(format string, args ...any)

// skipResult is the best skip proposal found for one history index.
// j == -1 means no skip beats the default "emit the next recorded op".
type skipResult struct {
	j     int
	value int
	ops   []op.Op
}

// snapshotHash fingerprints a (szA, szB, values) machine state. Used to
// bucket history indices so find_future only scans plausible matches
// instead of the whole search window.
func snapshotHash(szA, szB int, values []int) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	var hdr [16]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(szA))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(szB))
	h.Write(hdr[:])
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// historyIndex buckets every history index by its snapshot hash, so
// find_future's lookup is a bucket scan rather than a linear scan of the
// whole search window.
type historyIndex map[[32]byte][]int

func buildHistoryIndex(history []state.Save) historyIndex {
	idx := make(historyIndex, len(history))
	for i, s := range history {
		key := snapshotHash(s.SzA, s.SzB, s.Values)
		idx[key] = append(idx[key], i)
	}
	return idx
}

// findFuture returns the last history index j in [searchFrom, min(n,
// i+cfg.SearchWidth)) at which the recorded (A, B) configuration equals
// cur's, or -1 if none exists.
func findFuture(idx historyIndex, origin *state.State, cur *state.State, cfg Config, i, searchFrom int) int {
	n := len(origin.History) - 1
	end := i + cfg.SearchWidth
	if end > n {
		end = n
	}
	if searchFrom >= end {
		return -1
	}

	szA, szB := cur.A.Len(), cur.B.Len()
	values := append(cur.A.Values(), cur.B.Values()...)
	key := snapshotHash(szA, szB, values)

	best := -1
	for _, j := range idx[key] {
		if j < searchFrom || j >= end {
			continue
		}
		if j > best && origin.History[j].Equal(szA, szB, values) {
			best = j
		}
	}
	return best
}

// backtrack explores op sequences of length 1..cfg.SearchDepth from cur,
// recording the best skip proposal for origin-index i into best. buf is
// the candidate sequence built so far on this call stack; it belongs to
// this search alone and is never read back out of origin's own recorded
// history, which keeps one candidate's in-progress ops from leaking into
// another index's search.
func backtrack(idx historyIndex, origin, cur *state.State, cfg Config, i, depth, curCost int, buf []op.Op, best *skipResult) {
	for _, o := range op.All {
		if !cur.CanApply(o) {
			continue
		}
		if len(buf) > 0 {
			last := buf[len(buf)-1]
			if o == last.Inverse() {
				continue
			}
			if depth > 1 && o == last && o.IsInvolution() {
				continue
			}
		}

		cur.Apply(o)
		buf = append(buf, o)
		cost := curCost + o.Cost()

		searchFrom := i + depth
		j := findFuture(idx, origin, cur, cfg, i, searchFrom)
		if j > searchFrom {
			originalCost := j - i
			if originalCost > cost {
				value := originalCost - cost
				if value > best.value {
					best.j = j
					best.value = value
					best.ops = append([]op.Op(nil), buf...)
				}
			}
		}

		if depth < cfg.SearchDepth && o != op.NOP {
			backtrack(idx, origin, cur, cfg, i, depth+1, cost, buf, best)
		}

		buf = buf[:len(buf)-1]
		cur.Undo(o)
	}
}

// searchIndex runs the per-index skip search at origin history index i,
// on a fresh bifurcated clone of origin.
func searchIndex(idx historyIndex, origin *state.State, cfg Config, i int) skipResult {
	cur := origin.Bifurcate(i)
	best := skipResult{j: -1}
	backtrack(idx, origin, cur, cfg, i, 1, 0, nil, &best)
	return best
}

// Result is the outcome of one Optimize call: the rewritten op sequence
// and the state it produces when replayed from the input.
type Result struct {
	Ops   []op.Op
	Final *state.State
}

// Optimize runs the peephole pass over origin's recorded history and
// returns the rewritten op sequence together with a freshly bifurcated
// state it was replayed on. origin is read-only throughout.
func Optimize(origin *state.State, cfg Config, trace TraceFunc) Result {
	n := len(origin.History) - 1
	idx := buildHistoryIndex(origin.History)

	skips := make([]skipResult, n)
	for i := range skips {
		skips[i] = skipResult{j: -1}
	}

	if n > 0 {
		var g errgroup.Group
		for i := 0; i < n; i++ {
			i := i
			g.Go(func() error {
				skips[i] = searchIndex(idx, origin, cfg, i)
				return nil
			})
		}
		_ = g.Wait() // searchIndex never errors; each worker owns a disjoint skips[i] slot
	}

	// Backward DP: dp[i] is the best total savings achievable from i onward.
	dp := make([]int, n+1)
	takeSkip := make([]bool, n)
	for i := n - 1; i >= 0; i-- {
		best := dp[i+1]
		dec := false
		if sk := skips[i]; sk.j > i {
			if candidate := sk.value + dp[sk.j]; candidate > best {
				best = candidate
				dec = true
			}
		}
		dp[i] = best
		takeSkip[i] = dec
	}

	var out []op.Op
	for i := 0; i < n; {
		sk := skips[i]
		if takeSkip[i] && sk.j > i {
			out = append(out, sk.ops...)
			if trace != nil {
				trace("peephole: skip %d->%d, +%d value", i, sk.j, sk.value)
			}
			i = sk.j
		} else {
			out = append(out, origin.History[i+1].Op)
			i++
		}
	}

	final := origin.Bifurcate(0)
	for _, o := range out {
		if o != op.NOP {
			final.Apply(o)
		}
	}
	return Result{Ops: out, Final: final}
}
