// Package block implements the four logical (stack, end) addressing
// locations and the primitives defined over them: single-item move,
// closed-form size-2/size-3 sorts, and the three-way split around two
// pivots that the quicksort driver recurses on.
//
// Grounded on original_source/src/quicksort/block.c: blk_value, blk_move's
// 16-entry table, blk_sort_2/blk_sort_3's rank tables, and blk_split's
// destination-assignment rule are ported close to verbatim, generalized
// from inline op arrays to Go slices over the op package's named ops.
package block

import (
	"pushopt/internal/errs"
	"pushopt/internal/op"
	"pushopt/internal/state"
)

// Dest names one of the four logical locations a Block can reference. The
// bit layout (a "which stack" bit and a "which end" bit) lets Split's
// destination-assignment rule test the stack with a single bit (onB)
// instead of comparing against both B locations.
type Dest int

const (
	selB   Dest = 1 << 1
	posBot Dest = 1 << 0

	ATop = Dest(0)
	ABot = posBot
	BTop = selB
	BBot = selB | posBot
)

func (d Dest) onB() bool { return d&selB != 0 }

func (d Dest) String() string {
	switch d {
	case ATop:
		return "A_TOP"
	case ABot:
		return "A_BOT"
	case BTop:
		return "B_TOP"
	case BBot:
		return "B_BOT"
	default:
		return "INVALID_DEST"
	}
}

// Block is a logical reference to the top-most or bottom-most Size
// elements of stack A or B. Blocks have no storage of their own; they are
// traversal policies over a state.State.
type Block struct {
	Dest Dest
	Size int
}

// Value reads the element at 0-based logical position pos within dest.
func Value(st *state.State, dest Dest, pos int) int {
	switch dest {
	case ATop:
		return st.A.Peek(pos)
	case ABot:
		return st.A.PeekBottom(pos)
	case BTop:
		return st.B.Peek(pos)
	case BBot:
		return st.B.PeekBottom(pos)
	default:
		panic(&errs.Fault{Message: "block: Value: invalid dest"})
	}
}

// moveTable is the closed-form 1-to-3 op sequence that transfers the
// single top-most element of `from` to the corresponding end of `to`.
// Indexed [from][to]; a nil entry means "already there", i.e. a no-op.
var moveTable = map[[2]Dest][]op.Op{
	{ATop, ATop}: nil,
	{ATop, ABot}: {op.RA},
	{ATop, BTop}: {op.PB},
	{ATop, BBot}: {op.PB, op.RB},

	{ABot, ATop}: {op.RRA},
	{ABot, ABot}: nil,
	{ABot, BTop}: {op.RRA, op.PB},
	{ABot, BBot}: {op.RRA, op.PB, op.RB},

	{BTop, ATop}: {op.PA},
	{BTop, ABot}: {op.PA, op.RA},
	{BTop, BTop}: nil,
	{BTop, BBot}: {op.RB},

	{BBot, ATop}: {op.RRB, op.PA},
	{BBot, ABot}: {op.RRB, op.PA, op.RA},
	{BBot, BTop}: {op.RRB},
	{BBot, BBot}: nil,
}

// Move emits the op sequence that transfers the top-most element of from
// to to, applying each op on st. A rotation of a stack holding fewer than
// two elements is skipped: its top and bottom are the same element, so the
// rotation would change nothing and the machine rejects it.
func Move(st *state.State, from, to Dest) {
	for _, o := range moveTable[[2]Dest{from, to}] {
		switch o {
		case op.RA, op.RRA:
			if st.A.Len() < 2 {
				continue
			}
		case op.RB, op.RRB:
			if st.B.Len() < 2 {
				continue
			}
		}
		st.Apply(o)
	}
}

// rank returns blk's 0-based permutation rank among its Size! orderings,
// computed from pairwise comparisons (ties are impossible: inputs are
// distinct). Size must be 2 or 3.
func rank(st *state.State, blk Block) int {
	switch blk.Size {
	case 2:
		if Value(st, blk.Dest, 0) > Value(st, blk.Dest, 1) {
			return 1
		}
		return 0
	case 3:
		u := Value(st, blk.Dest, 0)
		v := Value(st, blk.Dest, 1)
		w := Value(st, blk.Dest, 2)
		switch {
		case u > v && v > w:
			return 0
		case u > w && w > v:
			return 1
		case v > u && u > w:
			return 2
		case v > w && w > u:
			return 3
		case w > u && u > v:
			return 4
		case w > v && v > u:
			return 5
		default:
			panic(&errs.Fault{Message: "block: rank: unreachable comparison outcome"})
		}
	default:
		panic(&errs.Fault{Message: "block: rank: size must be 2 or 3"})
	}
}

// sort2Table[dest][rank] moves a 2-element block at dest, sorted, to A_TOP.
var sort2Table = map[Dest][2][]op.Op{
	ATop: {{}, {op.SA}},
	ABot: {{op.RRA, op.RRA, op.SA}, {op.RRA, op.RRA}},
	BTop: {{op.PA, op.PA, op.SA}, {op.PA, op.PA}},
	BBot: {{op.RRB, op.RRB, op.PA, op.PA}, {op.RRB, op.RRB, op.PA, op.PA, op.SA}},
}

// SortTwo moves a 2-element block to A_TOP, sorted ascending.
func SortTwo(st *state.State, blk Block) {
	if blk.Size != 2 {
		panic(&errs.Fault{Message: "block: SortTwo requires Size == 2"})
	}
	r := rank(st, blk)
	for _, o := range sort2Table[blk.Dest][r] {
		st.Apply(o)
	}
}

// sort3Table[dest][rank] moves a 3-element block at dest, sorted, to A_TOP.
var sort3Table = map[Dest][6][]op.Op{
	ATop: {
		{op.SA, op.RA, op.SA, op.RRA, op.SA},
		{op.SA, op.RA, op.SA, op.RRA},
		{op.RA, op.SA, op.RRA, op.SA},
		{op.RA, op.SA, op.RRA},
		{op.SA},
		{},
	},
	ABot: {
		{op.RRA, op.RRA, op.RRA},
		{op.RRA, op.RRA, op.RRA, op.SA},
		{op.RRA, op.RRA, op.SA, op.RRA},
		{op.RRA, op.RRA, op.SA, op.RRA, op.SA},
		{op.RRA, op.RRA, op.PB, op.RRA, op.SA, op.PA},
		{op.RRA, op.PB, op.RRA, op.RRA, op.SA, op.PA},
	},
	BTop: {
		{op.PA, op.PA, op.PA},
		{op.PA, op.SB, op.PA, op.PA},
		{op.SB, op.PA, op.PA, op.PA},
		{op.SB, op.PA, op.SB, op.PA, op.PA},
		{op.PA, op.SB, op.PA, op.SA, op.PA},
		{op.SB, op.PA, op.SB, op.PA, op.SA, op.PA},
	},
	BBot: {
		{op.RRB, op.PA, op.RRB, op.PA, op.RRB, op.PA},
		{op.RRB, op.PA, op.RRB, op.RRB, op.PA, op.PA},
		{op.RRB, op.RRB, op.PA, op.PA, op.RRB, op.PA},
		{op.RRB, op.RRB, op.PA, op.RRB, op.PA, op.PA},
		{op.RRB, op.RRB, op.SB, op.RRB, op.PA, op.PA, op.PA},
		{op.RRB, op.RRB, op.RRB, op.PA, op.PA, op.PA},
	},
}

// SortThree moves a 3-element block to A_TOP, sorted ascending.
func SortThree(st *state.State, blk Block) {
	if blk.Size != 3 {
		panic(&errs.Fault{Message: "block: SortThree requires Size == 3"})
	}
	r := rank(st, blk)
	seq := sort3Table[blk.Dest][r]
	if blk.Dest == ATop && st.A.Len() == 3 {
		// The block is all of A, so rotating A cycles only these three
		// elements and every ordering sorts in at most two ops.
		seq = [6][]op.Op{
			{op.SA, op.RRA},
			{op.RA},
			{op.RRA},
			{op.RRA, op.SA},
			{op.SA},
			{},
		}[r]
	}
	for _, o := range seq {
		st.Apply(o)
	}
}

// SplitResult is the (top, mid, bot) triple returned by Split when it
// partitions a block around two pivots p1 <= p2.
type SplitResult struct {
	Top Block
	Mid Block
	Bot Block
}

// destinations computes the three sub-blocks' Dest fields from blk's own
// Dest. From a block on A, top and mid go to B and bot stays on A; from a
// block on B, mid and bot go to A and top stays on B:
//
//	top.dest = (blk.dest == B_BOT) ? B_TOP : B_BOT
//	mid.dest = (blk.dest is on B) ? A_BOT : B_TOP
//	bot.dest = (blk.dest == A_TOP) ? A_BOT : A_TOP
func destinations(blk Block) (top, mid, bot Dest) {
	if blk.Dest == BBot {
		top = BTop
	} else {
		top = BBot
	}
	if blk.Dest.onB() {
		mid = ABot
	} else {
		mid = BTop
	}
	if blk.Dest == ATop {
		bot = ABot
	} else {
		bot = ATop
	}
	return
}

// Split iterates blk top-down, routing each value to one of three
// destinations by comparing it to p1 <= p2: v >= p2 goes to bot, p1 <= v <
// p2 goes to mid, v < p1 goes to top.
func Split(st *state.State, blk Block, p1, p2 int) SplitResult {
	errs.Assert(p1 <= p2, "block: Split requires p1 <= p2, got %d > %d", p1, p2)

	topDest, midDest, botDest := destinations(blk)
	split := SplitResult{
		Top: Block{Dest: topDest},
		Mid: Block{Dest: midDest},
		Bot: Block{Dest: botDest},
	}

	for blk.Size > 0 {
		v := Value(st, blk.Dest, 0)
		switch {
		case v >= p2:
			Move(st, blk.Dest, split.Bot.Dest)
			split.Bot.Size++
		case v >= p1:
			Move(st, blk.Dest, split.Mid.Dest)
			split.Mid.Size++
		default:
			Move(st, blk.Dest, split.Top.Dest)
			split.Top.Size++
		}
		blk.Size--
	}
	return split
}
