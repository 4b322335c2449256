package sortdrv

import (
	"pushopt/internal/block"
	"pushopt/internal/errs"
	"pushopt/internal/state"
)

// Sort sorts st's stack A in place via the two-pivot quicksort driver,
// moving every element through B and back as needed, and leaves B empty.
// An A that is already sorted is left as it is, with no ops applied.
// Precondition: B is empty and A holds its full capacity.
func Sort(cfg Config, st *state.State) {
	errs.Assert(st.B.Len() == 0, "sortdrv.Sort requires an empty B")
	errs.Assert(st.A.Len() == st.A.Cap(), "sortdrv.Sort requires A at full capacity")
	if st.A.IsSorted() {
		return
	}

	blk := block.Block{Dest: block.ATop, Size: st.A.Len()}
	quicksortImpl(cfg, st, blk)
}

// quicksortImpl is the recursive driver: base cases up to size 3 delegate
// to block's closed-form sorts; larger blocks pick two pivots, split, and
// recurse into bot, mid, top in that order. The ordering matters: each
// recursion executes on the live state, and subsequent pivot tuning reads
// the live op-count accumulated so far, so bot/mid/top must run in a
// fixed, deterministic order rather than any order.
func quicksortImpl(cfg Config, st *state.State, blk block.Block) {
	if blk.Size == 0 {
		return
	}

	blk.Dest = normalizeWholeStackDest(st, blk)

	switch blk.Size {
	case 1:
		block.Move(st, blk.Dest, block.ATop)
		return
	case 2:
		block.SortTwo(st, blk)
		return
	case 3:
		block.SortThree(st, blk)
		return
	}

	p1, p2 := choosePivots(cfg, st, blk)
	split := block.Split(st, blk, p1, p2)
	quicksortImpl(cfg, st, split.Bot)
	quicksortImpl(cfg, st, split.Mid)
	quicksortImpl(cfg, st, split.Top)
}

// normalizeWholeStackDest turns a BOT block spanning an entire stack into
// the equivalent TOP block, since "bottom of the whole stack" and "top of
// the whole stack" name the same elements.
func normalizeWholeStackDest(st *state.State, blk block.Block) block.Dest {
	switch {
	case blk.Dest == block.ABot && st.A.Len() == blk.Size:
		return block.ATop
	case blk.Dest == block.BBot && st.B.Len() == blk.Size:
		return block.BTop
	default:
		return blk.Dest
	}
}
