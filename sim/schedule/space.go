// Package schedule enumerates the candidate space: every combination
// of one (dose, interval) pair per person, produced lazily in a fixed
// order so sweeps can be partitioned and reproduced.
package schedule

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/vialsim/vialsim/sim"
)

// ErrSpaceTooLarge reports a candidate space that may not be enumerated.
var ErrSpaceTooLarge = errors.New("candidate space too large")

// maxPairsPerPerson bounds the materialized per-person grid. The
// combinatorial product across persons stays lazy, but each person's
// own pair grid is held in memory.
const maxPairsPerPerson = 1 << 20

// Space is the validated, capacity-pruned candidate space. Candidates
// are never materialized; cursors decode them on demand from their
// enumeration index.
type Space struct {
	params  sim.Params
	persons []sim.Person
	grids   [][]sim.Assignment // surviving pairs per person, enumeration order

	size      int64 // product of grid sizes, MaxInt64 when saturated
	saturated bool
	excluded  int64 // candidates lost to pruning, MaxInt64 when saturated
}

// New validates every range eagerly, enumerates each person's
// (dose, interval) grid, and drops pairs whose dose cannot be served
// by one vial. Pairs are enumerated dose-major: every interval for the
// first dose value, then the next dose value. Candidate enumeration
// walks the grids with the last person's pair varying fastest.
func New(params sim.Params, persons []sim.Person) (*Space, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("%w: no persons declared", sim.ErrEmptySpace)
	}
	for i, p := range persons {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("person[%d]: %w", i, err)
		}
	}

	s := &Space{
		params:  params,
		persons: persons,
		grids:   make([][]sim.Assignment, len(persons)),
	}

	kept, keptSat := int64(1), false
	full, fullSat := int64(1), false
	var droppedPairs int64
	for i, p := range persons {
		pairs, _ := satMul(int64(p.DoseCount()), int64(p.Interval.Count()), false)
		if pairs > maxPairsPerPerson {
			return nil, fmt.Errorf("%w: person[%d] enumerates %d pairs, limit %d",
				ErrSpaceTooLarge, i, pairs, maxPairsPerPerson)
		}

		grid, dropped := enumeratePairs(p, params.VialCapacity)
		if len(grid) == 0 {
			return nil, fmt.Errorf("%w: person[%d] has no feasible (dose, interval) pair under capacity %g",
				sim.ErrEmptySpace, i, params.VialCapacity)
		}
		s.grids[i] = grid
		droppedPairs += dropped
		kept, keptSat = satMul(kept, int64(len(grid)), keptSat)
		full, fullSat = satMul(full, pairs, fullSat)
	}

	s.size, s.saturated = kept, keptSat
	if fullSat {
		s.excluded = math.MaxInt64
	} else {
		s.excluded = full - kept
	}
	if droppedPairs > 0 {
		logrus.Warnf("dropped %d (dose, interval) pair(s) infeasible under vial capacity %g, excluding %d candidate(s)",
			droppedPairs, params.VialCapacity, s.excluded)
	}
	return s, nil
}

// enumeratePairs builds one person's surviving grid. A pair is dropped
// when its dose exceeds the vial capacity or, for daily-rate specs,
// rounds down to zero. Returns the grid and the dropped-pair count.
func enumeratePairs(p sim.Person, capacity float64) ([]sim.Assignment, int64) {
	doses := p.DoseCount()
	intervals := p.Interval.Count()
	grid := make([]sim.Assignment, 0, doses*intervals)
	var dropped int64
	for di := 0; di < doses; di++ {
		for ii := 0; ii < intervals; ii++ {
			interval := p.Interval.Value(ii)
			dose := p.DoseFor(di, interval)
			if dose <= 0 || dose > capacity {
				dropped++
				continue
			}
			grid = append(grid, sim.Assignment{Dose: dose, Interval: interval})
		}
	}
	return grid, dropped
}

// satMul multiplies non-negative counts, saturating at MaxInt64.
func satMul(a, b int64, saturated bool) (int64, bool) {
	if saturated || (a != 0 && b > math.MaxInt64/a) {
		return math.MaxInt64, true
	}
	return a * b, saturated
}

// Params returns the global parameters the space was built against.
func (s *Space) Params() sim.Params {
	return s.params
}

// Persons returns a copy of the person specs in declaration order.
// Callers may mutate the returned slice without corrupting the space.
func (s *Space) Persons() []sim.Person {
	persons := make([]sim.Person, len(s.persons))
	copy(persons, s.persons)
	return persons
}

// Size returns the number of candidates, saturating at MaxInt64. The
// count is computed from range arithmetic alone, so oversized spaces
// can be refused before any candidate exists.
func (s *Space) Size() int64 {
	return s.size
}

// Exact reports whether Size is exact rather than saturated.
func (s *Space) Exact() bool {
	return !s.saturated
}

// Excluded returns how many candidates pruning removed, saturating at
// MaxInt64.
func (s *Space) Excluded() int64 {
	return s.excluded
}

// PairCounts returns each person's surviving pair count.
func (s *Space) PairCounts() []int {
	counts := make([]int, len(s.grids))
	for i, g := range s.grids {
		counts[i] = len(g)
	}
	return counts
}
