package stack

import (
	"reflect"
	"testing"
)

func TestPushRotateRevRotate(t *testing.T) {
	a := FromValues(4, []int{1, 2, 3, 4})
	b := New(4)

	b.PushFrom(a)
	if !reflect.DeepEqual(b.Values(), []int{1}) {
		t.Fatalf("after PushFrom, b = %v", b.Values())
	}
	if !reflect.DeepEqual(a.Values(), []int{2, 3, 4}) {
		t.Fatalf("after PushFrom, a = %v", a.Values())
	}

	a.Rotate()
	if !reflect.DeepEqual(a.Values(), []int{3, 4, 2}) {
		t.Fatalf("after Rotate, a = %v", a.Values())
	}

	a.RevRotate()
	if !reflect.DeepEqual(a.Values(), []int{2, 3, 4}) {
		t.Fatalf("after RevRotate, a = %v", a.Values())
	}
}

func TestSwap(t *testing.T) {
	a := FromValues(3, []int{1, 2, 3})
	a.Swap()
	if !reflect.DeepEqual(a.Values(), []int{2, 1, 3}) {
		t.Fatalf("after Swap, a = %v", a.Values())
	}
}

func TestRecenterManyRotates(t *testing.T) {
	n := 5
	vals := []int{5, 4, 3, 2, 1}
	a := FromValues(n, vals)
	// Rotate far more than 2*capacity times, should never corrupt the window.
	for i := 0; i < 10*n; i++ {
		a.Rotate()
	}
	got := a.Values()
	if len(got) != n {
		t.Fatalf("len changed: %v", got)
	}
	// 10n rotations is a multiple of n, so it returns to the original order.
	if !reflect.DeepEqual(got, vals) {
		t.Fatalf("after %d rotates, a = %v, want %v", 10*n, got, vals)
	}
}

func TestRecenterManyRevRotates(t *testing.T) {
	n := 5
	vals := []int{5, 4, 3, 2, 1}
	a := FromValues(n, vals)
	for i := 0; i < 10*n; i++ {
		a.RevRotate()
	}
	if got := a.Values(); !reflect.DeepEqual(got, vals) {
		t.Fatalf("after %d rev-rotates, a = %v, want %v", 10*n, got, vals)
	}
}

func TestIsSorted(t *testing.T) {
	if !FromValues(3, []int{1, 2, 3}).IsSorted() {
		t.Error("expected sorted")
	}
	if FromValues(3, []int{1, 3, 2}).IsSorted() {
		t.Error("expected not sorted")
	}
	if !New(3).IsSorted() {
		t.Error("empty stack should be sorted")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := FromValues(4, []int{1, 2, 3, 4})
	c := a.Clone()
	c.Swap()
	if reflect.DeepEqual(a.Values(), c.Values()) {
		t.Fatal("clone shares backing storage with original")
	}
}

func TestPushRotateManyInterleaved(t *testing.T) {
	a := FromValues(6, []int{1, 2, 3, 4, 5, 6})
	b := New(6)
	for i := 0; i < 50; i++ {
		if a.Len() > 0 && i%2 == 0 {
			b.PushFrom(a)
		} else if b.Len() > 0 {
			a.PushFrom(b)
		}
		if a.Len() > 1 {
			a.Rotate()
		}
		if b.Len() > 1 {
			b.RevRotate()
		}
	}
	if a.Len()+b.Len() != 6 {
		t.Fatalf("lost elements: a=%v b=%v", a.Values(), b.Values())
	}
}
