// sim/sweep/stats.go
package sweep

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WasteStats summarizes the waste distribution across an entire sweep.
type WasteStats struct {
	Count  int64   `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// computeWasteStats sorts the sample in place and summarizes it.
// Returns nil for an empty sample.
func computeWasteStats(wastes []float64) *WasteStats {
	if len(wastes) == 0 {
		return nil
	}
	sort.Float64s(wastes)
	s := &WasteStats{
		Count: int64(len(wastes)),
		Mean:  stat.Mean(wastes, nil),
		Min:   wastes[0],
		Max:   wastes[len(wastes)-1],
		P50:   stat.Quantile(0.5, stat.Empirical, wastes, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, wastes, nil),
	}
	if len(wastes) > 1 {
		s.StdDev = stat.StdDev(wastes, nil)
	}
	return s
}
