package sim

import "fmt"

// drawEps tolerates float accumulation error when comparing a dose
// against the vial remainder, so a dose that mathematically fits never
// triggers a spurious replacement.
const drawEps = 1e-9

// VialState tracks the vial currently being drawn from. Mutated only by
// the simulator during one run; never shared across runs or across
// concurrent evaluations.
type VialState struct {
	Capacity  float64
	Remaining float64
	Opened    int64
}

// NewVialState opens the first vial.
func NewVialState(capacity float64) *VialState {
	return &VialState{Capacity: capacity, Remaining: capacity, Opened: 1}
}

// Draw removes dose from the open vial. When the remainder cannot cover
// the dose, the remainder is discarded in full and a fresh vial is
// opened; the draw then succeeds against the full vial. A short vial is
// never topped up. Returns the discarded volume, zero when no
// replacement happened.
//
// Remainders within drawEps of zero are snapped to zero so exact-fit
// schedules compare equal across arithmetic orderings.
func (v *VialState) Draw(dose float64) float64 {
	wasted := 0.0
	if dose > v.Remaining+drawEps {
		wasted = v.Remaining
		v.Remaining = v.Capacity
		v.Opened++
	}
	v.Remaining -= dose
	switch {
	case v.Remaining < -drawEps:
		panic(fmt.Sprintf("vial remaining went negative: %g (dose %g, capacity %g)",
			v.Remaining, dose, v.Capacity))
	case v.Remaining < drawEps:
		v.Remaining = 0
	}
	return wasted
}
