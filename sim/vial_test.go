package sim

import (
	"strings"
	"testing"
)

func TestNewVialState_OpensFirstVial(t *testing.T) {
	// GIVEN a fresh vial supply
	v := NewVialState(10)

	// THEN the first vial is already open and full
	if v.Opened != 1 {
		t.Errorf("Opened: got %d, want 1", v.Opened)
	}
	if v.Remaining != 10 {
		t.Errorf("Remaining: got %g, want 10", v.Remaining)
	}
}

func TestVialState_Draw_WithinRemainder_NoWaste(t *testing.T) {
	// GIVEN an open vial with 10 mL
	v := NewVialState(10)

	// WHEN 6 mL is drawn
	wasted := v.Draw(6)

	// THEN nothing is discarded and the remainder shrinks
	if wasted != 0 {
		t.Errorf("Draw: wasted %g, want 0", wasted)
	}
	if v.Remaining != 4 {
		t.Errorf("Remaining: got %g, want 4", v.Remaining)
	}
	if v.Opened != 1 {
		t.Errorf("Opened: got %d, want 1", v.Opened)
	}
}

func TestVialState_Draw_ShortRemainder_DiscardsAndReplaces(t *testing.T) {
	// GIVEN a vial with 4 mL left
	v := NewVialState(10)
	v.Draw(6)

	// WHEN a 6 mL dose is drawn
	wasted := v.Draw(6)

	// THEN the 4 mL remainder is discarded in full and a fresh vial
	// serves the dose
	if wasted != 4 {
		t.Errorf("Draw: wasted %g, want 4", wasted)
	}
	if v.Opened != 2 {
		t.Errorf("Opened: got %d, want 2", v.Opened)
	}
	if v.Remaining != 4 {
		t.Errorf("Remaining: got %g, want 4", v.Remaining)
	}
}

func TestVialState_Draw_ExactFit_NoReplacement(t *testing.T) {
	// GIVEN a vial drained to exactly zero
	v := NewVialState(10)
	v.Draw(5)
	wasted := v.Draw(5)

	// THEN the exact fit wastes nothing and keeps the vial
	if wasted != 0 {
		t.Errorf("Draw to zero: wasted %g, want 0", wasted)
	}
	if v.Remaining != 0 || v.Opened != 1 {
		t.Errorf("after exact fit: remaining %g opened %d, want 0 and 1", v.Remaining, v.Opened)
	}

	// WHEN the next dose arrives
	wasted = v.Draw(5)

	// THEN the empty vial is replaced with zero discarded volume
	if wasted != 0 {
		t.Errorf("Draw on empty: wasted %g, want 0", wasted)
	}
	if v.Opened != 2 || v.Remaining != 5 {
		t.Errorf("after replacement: remaining %g opened %d, want 5 and 2", v.Remaining, v.Opened)
	}
}

func TestVialState_Draw_AccumulatedDust_SnapsToZero(t *testing.T) {
	// GIVEN doses that mathematically drain the vial exactly but leave
	// float dust when subtracted one by one
	v := NewVialState(1.12)

	// WHEN four 0.28 mL doses are drawn
	var wasted float64
	for i := 0; i < 4; i++ {
		wasted += v.Draw(0.28)
	}

	// THEN no replacement was triggered and the remainder is exactly zero
	if wasted != 0 {
		t.Errorf("Draw: wasted %g, want 0", wasted)
	}
	if v.Opened != 1 {
		t.Errorf("Opened: got %d, want 1", v.Opened)
	}
	if v.Remaining != 0 {
		t.Errorf("Remaining: got %g, want exactly 0", v.Remaining)
	}
}

func TestVialState_Draw_DoseAboveCapacity_Panics(t *testing.T) {
	// GIVEN a dose no vial can serve; the builder prunes these, so
	// reaching Draw with one is an invariant violation
	v := NewVialState(5)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Draw: expected panic, got none")
		}
		if !strings.Contains(r.(string), "negative") {
			t.Errorf("Draw panic: got %q, want mention of negative remainder", r)
		}
	}()

	// WHEN a 7 mL dose is drawn from 5 mL vials
	v.Draw(7)
}
