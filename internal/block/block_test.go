package block

import (
	"testing"

	"pushopt/internal/state"
)

func TestSortTwoATopBothOrders(t *testing.T) {
	cases := [][]int{{1, 2}, {2, 1}}
	for _, values := range cases {
		s := state.New(values)
		blk := Block{Dest: ATop, Size: 2}
		SortTwo(s, blk)
		got := s.A.Values()
		if got[0] > got[1] {
			t.Errorf("SortTwo(A_TOP, %v) left A = %v, not sorted", values, got)
		}
	}
}

func TestSortThreeAllPermutations(t *testing.T) {
	perms := [][]int{
		{1, 2, 3}, {1, 3, 2}, {2, 1, 3},
		{2, 3, 1}, {3, 1, 2}, {3, 2, 1},
	}
	for _, p := range perms {
		s := state.New(p)
		blk := Block{Dest: ATop, Size: 3}
		SortThree(s, blk)
		if !s.A.IsSorted() {
			t.Errorf("SortThree(%v) left A = %v, not sorted", p, s.A.Values())
		}
		if s.A.Len() != 3 || s.B.Len() != 0 {
			t.Errorf("SortThree(%v) left sizes A=%d B=%d", p, s.A.Len(), s.B.Len())
		}
	}
}

func TestSplitPreservesMultiset(t *testing.T) {
	values := []int{5, 1, 8, 3, 9, 2, 7, 4, 6}
	s := state.New(values)
	blk := Block{Dest: ATop, Size: len(values)}
	split := Split(s, blk, 3, 7)

	if split.Top.Size+split.Mid.Size+split.Bot.Size != len(values) {
		t.Fatalf("split sizes %d+%d+%d != %d", split.Top.Size, split.Mid.Size, split.Bot.Size, len(values))
	}

	seen := map[int]bool{}
	for _, v := range s.A.Values() {
		seen[v] = true
	}
	for _, v := range s.B.Values() {
		seen[v] = true
	}
	if len(seen) != len(values) {
		t.Fatalf("split lost or duplicated values: saw %d distinct, want %d", len(seen), len(values))
	}
	for _, v := range values {
		if !seen[v] {
			t.Fatalf("value %d missing after split", v)
		}
	}
}

func TestSplitRouting(t *testing.T) {
	values := []int{1, 5, 10}
	s := state.New(values)
	blk := Block{Dest: ATop, Size: 3}
	split := Split(s, blk, 3, 7)
	if split.Top.Size != 1 || split.Mid.Size != 1 || split.Bot.Size != 1 {
		t.Fatalf("routing: top=%d mid=%d bot=%d, want 1,1,1", split.Top.Size, split.Mid.Size, split.Bot.Size)
	}
}

func TestSplitFromBBotDestinations(t *testing.T) {
	values := []int{9, 8, 7, 6, 5, 4}
	s := state.New(values)
	// Move all of A onto B via moveTable's A_TOP->B_TOP path, then split the
	// resulting B_BOT-addressed block (exercises the "blk.dest on B" arm of
	// the destination-assignment rule).
	for s.A.Len() > 0 {
		Move(s, ATop, BTop)
	}
	blk := Block{Dest: BBot, Size: s.B.Len()}
	split := Split(s, blk, 6, 8)
	if split.Mid.Dest != ABot {
		t.Errorf("mid.dest for a B-side block = %v, want A_BOT", split.Mid.Dest)
	}
	if split.Top.Dest != BTop {
		t.Errorf("top.dest for a B_BOT block = %v, want B_TOP", split.Top.Dest)
	}
	if split.Bot.Dest != ATop {
		t.Errorf("bot.dest for a non-A_TOP block = %v, want A_TOP", split.Bot.Dest)
	}
}
