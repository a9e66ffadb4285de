package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange reports a person spec whose ranges cannot be enumerated.
var ErrInvalidRange = errors.New("invalid range")

// rangeEps absorbs float accumulation error when counting grid points,
// so a range like {0.1, 0.3, 0.1} enumerates all three values.
const rangeEps = 1e-9

// DoseRange enumerates dose values {Min, Min+Step, ..., <=Max}.
// The upper bound is inclusive.
type DoseRange struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

// Validate checks that the range can be enumerated.
func (r DoseRange) Validate() error {
	if !isFinite(r.Min) || !isFinite(r.Max) || !isFinite(r.Step) {
		return fmt.Errorf("%w: bounds must be finite, got {min: %g, max: %g, step: %g}",
			ErrInvalidRange, r.Min, r.Max, r.Step)
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidRange, r.Step)
	}
	if r.Min <= 0 {
		return fmt.Errorf("%w: min must be positive, got %g", ErrInvalidRange, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %g exceeds max %g", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Count returns the number of enumerable values.
func (r DoseRange) Count() int {
	return int(math.Floor((r.Max-r.Min)/r.Step+rangeEps)) + 1
}

// Value returns the i-th enumerated value, counting from zero.
func (r DoseRange) Value(i int) float64 {
	return r.Min + float64(i)*r.Step
}

// Values materializes the full enumeration. Intended for small grids
// and tests; candidate enumeration goes through Count and Value.
func (r DoseRange) Values() []float64 {
	out := make([]float64, r.Count())
	for i := range out {
		out[i] = r.Value(i)
	}
	return out
}

// IntervalRange enumerates day counts {Min, Min+Step, ..., <=Max}.
// The upper bound is inclusive.
type IntervalRange struct {
	Min  int64 `yaml:"min" json:"min"`
	Max  int64 `yaml:"max" json:"max"`
	Step int64 `yaml:"step" json:"step"`
}

// Validate checks that the range can be enumerated.
func (r IntervalRange) Validate() error {
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidRange, r.Step)
	}
	if r.Min <= 0 {
		return fmt.Errorf("%w: min must be positive, got %d", ErrInvalidRange, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Count returns the number of enumerable values.
func (r IntervalRange) Count() int {
	return int((r.Max-r.Min)/r.Step) + 1
}

// Value returns the i-th enumerated value, counting from zero.
func (r IntervalRange) Value(i int) int64 {
	return r.Min + int64(i)*r.Step
}

// Values materializes the full enumeration.
func (r IntervalRange) Values() []int64 {
	out := make([]int64, r.Count())
	for i := range out {
		out[i] = r.Value(i)
	}
	return out
}

// Person declares one participant's schedule search ranges. Immutable
// once constructed.
//
// Exactly one of Dose or DailyRate must be set. Dose enumerates the
// injected dose directly; DailyRate enumerates a per-day consumption
// rate, and the injected dose for an interval of n days is rate*n
// rounded to two decimals.
type Person struct {
	Name        string        `yaml:"name,omitempty" json:"name,omitempty"`
	Dose        *DoseRange    `yaml:"dose,omitempty" json:"dose,omitempty"`
	DailyRate   *DoseRange    `yaml:"daily_rate,omitempty" json:"daily_rate,omitempty"`
	Interval    IntervalRange `yaml:"interval" json:"interval"`
	StartOffset int64         `yaml:"start_offset,omitempty" json:"start_offset,omitempty"`
}

// Validate checks all ranges before any enumeration begins.
func (p Person) Validate() error {
	if p.Dose == nil && p.DailyRate == nil {
		return fmt.Errorf("%w: one of dose or daily_rate is required", ErrInvalidRange)
	}
	if p.Dose != nil && p.DailyRate != nil {
		return fmt.Errorf("%w: dose and daily_rate are mutually exclusive", ErrInvalidRange)
	}
	axis := "dose"
	if p.DailyRate != nil {
		axis = "daily_rate"
	}
	if err := p.doseAxis().Validate(); err != nil {
		return fmt.Errorf("%s: %w", axis, err)
	}
	if err := p.Interval.Validate(); err != nil {
		return fmt.Errorf("interval: %w", err)
	}
	if p.StartOffset < 0 {
		return fmt.Errorf("%w: start_offset must be non-negative, got %d", ErrInvalidRange, p.StartOffset)
	}
	return nil
}

// doseAxis returns whichever dose-defining range is set.
func (p Person) doseAxis() *DoseRange {
	if p.Dose != nil {
		return p.Dose
	}
	return p.DailyRate
}

// DoseCount returns the size of the person's dose axis.
func (p Person) DoseCount() int {
	return p.doseAxis().Count()
}

// DoseFor returns the injected dose for the i-th dose-axis value at the
// given interval. Direct dose ranges ignore the interval; daily rates
// are scaled by it.
func (p Person) DoseFor(i int, interval int64) float64 {
	if p.Dose != nil {
		return p.Dose.Value(i)
	}
	return round2(p.DailyRate.Value(i) * float64(interval))
}

// round2 rounds to two decimals, the resolution doses are prepared at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
