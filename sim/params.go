package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams reports unusable global simulation parameters.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// ErrEmptySpace reports that no candidate schedule can be enumerated.
var ErrEmptySpace = errors.New("empty candidate space")

// Params are the global knobs shared by every simulation run. Horizon
// counts simulated days: injections occur on days 0..Horizon-1.
type Params struct {
	VialCapacity float64 `yaml:"vial_capacity" json:"vial_capacity"`
	Horizon      int64   `yaml:"horizon" json:"horizon"`
}

// Validate checks the parameters before any enumeration or simulation.
// A non-positive horizon schedules nothing, so it is reported as an
// empty candidate space rather than a parameter error.
func (p Params) Validate() error {
	if math.IsNaN(p.VialCapacity) || math.IsInf(p.VialCapacity, 0) || p.VialCapacity <= 0 {
		return fmt.Errorf("%w: vial_capacity must be positive, got %g", ErrInvalidParams, p.VialCapacity)
	}
	if p.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrEmptySpace, p.Horizon)
	}
	return nil
}
