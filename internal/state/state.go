// Package state owns the two-stack machine: stack A, stack B, an
// append-only history log of saves, the running op counter and the
// search-depth counter the pivot tuner uses to gate itself.
//
// Grounded on original_source/src/state/state.{c,h}; state_op's dispatch
// and save bookkeeping is the direct model for Apply, and state_bifurcate's
// value-copied history prefix is the model for Bifurcate.
package state

import (
	"pushopt/internal/errs"
	"pushopt/internal/op"
	"pushopt/internal/stack"
)

// Save is an immutable snapshot of (A, B, op) appended by each recorded op.
// The 0th save is always {Op: op.NOP} holding the initial configuration.
type Save struct {
	Values []int // A's window then B's window, top-most element of each first
	SzA    int
	SzB    int
	Op     op.Op
}

// Equal reports whether the save's (A, B) contents match sizes szA, szB and
// the concatenated values slice exactly.
func (s Save) Equal(szA, szB int, values []int) bool {
	if s.SzA != szA || s.SzB != szB {
		return false
	}
	for i, v := range values {
		if s.Values[i] != v {
			return false
		}
	}
	return true
}

// State owns both stacks, the history log (only populated while recording),
// the op counter, the bifurcation point and the pivot tuner's search-depth
// counter.
//
// recording is true only for the root state returned by New: every Apply
// on it appends a Save. Bifurcate returns a state with recording=false and
// BifurcatePoint set to the history index it was seeded from (which may
// legitimately be 0, bifurcating from the initial configuration); Clone
// returns a state with recording=false, BifurcatePoint=-1 and no history
// at all, used only by the pivot tuner to cost out a candidate
// split+recursion without touching the real trace.
type State struct {
	A *stack.Stack
	B *stack.Stack

	History        []Save
	BifurcatePoint int
	OpCount        int
	SearchDepth    int

	recording bool
}

// New creates a state with all of values on stack A (top-most first) and an
// empty stack B, both with capacity len(values). The history starts with
// the single NOP save for the initial configuration.
func New(values []int) *State {
	errs.Assert(len(values) >= 1, "state: New requires at least one value")
	cap := len(values)
	s := &State{
		A:         stack.FromValues(cap, values),
		B:         stack.New(cap),
		recording: true,
	}
	s.History = []Save{s.snapshot(op.NOP)}
	return s
}

// IsRecording reports whether Apply appends to History.
func (s *State) IsRecording() bool { return s.recording }

func (s *State) snapshot(o op.Op) Save {
	values := make([]int, 0, s.A.Len()+s.B.Len())
	values = append(values, s.A.Values()...)
	values = append(values, s.B.Values()...)
	return Save{Values: values, SzA: s.A.Len(), SzB: s.B.Len(), Op: o}
}

func (s *State) checkPrecondition(o op.Op) {
	switch o {
	case op.SA:
		errs.Assert(s.A.Len() >= 2, "SA requires |A| >= 2, got %d", s.A.Len())
	case op.SB:
		errs.Assert(s.B.Len() >= 2, "SB requires |B| >= 2, got %d", s.B.Len())
	case op.SS:
		errs.Assert(s.A.Len() >= 2 && s.B.Len() >= 2, "SS requires |A|,|B| >= 2, got %d,%d", s.A.Len(), s.B.Len())
	case op.PA:
		errs.Assert(s.B.Len() >= 1, "PA requires non-empty B")
	case op.PB:
		errs.Assert(s.A.Len() >= 1, "PB requires non-empty A")
	case op.RA:
		errs.Assert(s.A.Len() >= 2, "RA requires |A| >= 2, got %d", s.A.Len())
	case op.RRA:
		errs.Assert(s.A.Len() >= 2, "RRA requires |A| >= 2, got %d", s.A.Len())
	case op.RB:
		errs.Assert(s.B.Len() >= 2, "RB requires |B| >= 2, got %d", s.B.Len())
	case op.RRB:
		errs.Assert(s.B.Len() >= 2, "RRB requires |B| >= 2, got %d", s.B.Len())
	case op.RR:
		errs.Assert(s.A.Len() >= 2 && s.B.Len() >= 2, "RR requires |A|,|B| >= 2, got %d,%d", s.A.Len(), s.B.Len())
	case op.RRR:
		errs.Assert(s.A.Len() >= 2 && s.B.Len() >= 2, "RRR requires |A|,|B| >= 2, got %d,%d", s.A.Len(), s.B.Len())
	case op.NOP:
		// no operands, always valid
	default:
		errs.Assert(false, "unknown op %v", o)
	}
}

// CanApply reports whether o's precondition currently holds, without
// panicking. Used by the peephole search to prune candidate instructions
// before trying them.
func (s *State) CanApply(o op.Op) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	s.checkPrecondition(o)
	return true
}

func (s *State) mutate(o op.Op) {
	if o.TouchesA() && o.TouchesB() && o != op.SS && o != op.RR && o != op.RRR {
		errs.Assert(false, "combined op with mismatched operator: %v", o)
	}
	switch {
	case o == op.NOP:
		// no-op
	case o == op.SA:
		s.A.Swap()
	case o == op.SB:
		s.B.Swap()
	case o == op.SS:
		s.A.Swap()
		s.B.Swap()
	case o == op.PA:
		s.A.PushFrom(s.B)
	case o == op.PB:
		s.B.PushFrom(s.A)
	case o == op.RA:
		s.A.Rotate()
	case o == op.RB:
		s.B.Rotate()
	case o == op.RR:
		s.A.Rotate()
		s.B.Rotate()
	case o == op.RRA:
		s.A.RevRotate()
	case o == op.RRB:
		s.B.RevRotate()
	case o == op.RRR:
		s.A.RevRotate()
		s.B.RevRotate()
	default:
		errs.Assert(false, "unknown op %v", o)
	}
}

// Apply executes o's preconditions (fatal Fault on violation), mutates the
// stacks, bumps the op counter, and — in recording mode — appends a Save.
func (s *State) Apply(o op.Op) {
	s.checkPrecondition(o)
	s.mutate(o)
	s.OpCount += o.Cost()
	if s.IsRecording() {
		s.History = append(s.History, s.snapshot(o))
	}
}

// Undo executes the inverse of o, decrementing the op counter without
// appending to history. Only valid on a non-recording state (a Bifurcate
// or Clone result); calling it on the recording root is a Fault.
func (s *State) Undo(o op.Op) {
	errs.Assert(!s.recording, "Undo called on a recording state")
	inv := o.Inverse()
	s.checkPrecondition(inv)
	s.mutate(inv)
	s.OpCount -= o.Cost()
}

// Bifurcate returns a new State whose stacks equal History[k], whose
// History is a fresh copy of History[0:k+1], and whose BifurcatePoint is k.
// The returned state's op counter starts at 0 and does not record further
// Applies into its own History.
func (s *State) Bifurcate(k int) *State {
	errs.Assert(s.IsRecording(), "Bifurcate called on a non-recording state")
	errs.Assert(k >= 0 && k < len(s.History), "Bifurcate index %d out of range [0,%d)", k, len(s.History))

	save := s.History[k]
	a := make([]int, save.SzA)
	copy(a, save.Values[:save.SzA])
	b := make([]int, save.SzB)
	copy(b, save.Values[save.SzA:])

	histCopy := make([]Save, k+1)
	copy(histCopy, s.History[:k+1])

	return &State{
		A:              stack.FromValues(s.A.Cap(), a),
		B:              stack.FromValues(s.B.Cap(), b),
		History:        histCopy,
		BifurcatePoint: k,
		SearchDepth:    s.SearchDepth,
	}
}

// Clone returns a bare, non-recording deep copy of the current stacks with
// no history at all — used only by the pivot tuner (internal/sortdrv) to
// cost out a candidate split+recursion on disposable state.
func (s *State) Clone() *State {
	return &State{
		A:              s.A.Clone(),
		B:              s.B.Clone(),
		BifurcatePoint: -1,
		SearchDepth:    s.SearchDepth,
	}
}
