// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCandidate reports a candidate the simulator refuses to run.
// Any such error aborts the whole optimization; there is no
// per-candidate recovery.
var ErrInvalidCandidate = errors.New("invalid candidate")

// Simulator runs candidate schedules against a shared vial supply. It
// is reusable across candidates but not safe for concurrent use;
// parallel sweeps construct one Simulator per worker.
type Simulator struct {
	Params  Params
	Persons []Person
}

// NewSimulator validates the global parameters and person specs once,
// so every subsequent Run only has to check its candidate.
func NewSimulator(params Params, persons []Person) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return nil, fmt.Errorf("%w: no persons declared", ErrEmptySpace)
	}
	for i, p := range persons {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("person[%d]: %w", i, err)
		}
	}
	return &Simulator{Params: params, Persons: persons}, nil
}

// Result summarizes one simulated candidate. LastEventTime is -1 when
// the horizon admits no injections at all. LeftoverAtHorizon is the
// medication still in the open vial after the last draw; it is reported
// but never counted as waste.
type Result struct {
	Candidate         Candidate `json:"candidate"`
	TotalWaste        float64   `json:"total_waste"`
	VialsOpened       int64     `json:"vials_opened"`
	Injections        int64     `json:"injections"`
	LastEventTime     int64     `json:"last_event_time"`
	LeftoverAtHorizon float64   `json:"leftover_at_horizon"`
}

// Run simulates one candidate and returns its waste accounting.
//
// Draws are processed in ascending day order; people sharing a day draw
// in declaration order, which decides who pays for a replacement when
// the vial runs short. Each person's first draw is at their start
// offset, subsequent draws every interval days, bounded by the horizon.
func (s *Simulator) Run(c Candidate) (Result, error) {
	if err := s.checkCandidate(c); err != nil {
		return Result{}, err
	}

	queue := NewEventHeap()
	for i, p := range s.Persons {
		if p.StartOffset < s.Params.Horizon {
			queue.Schedule(InjectionEvent{Time: p.StartOffset, Person: i})
		}
	}

	vial := NewVialState(s.Params.VialCapacity)
	res := Result{Candidate: c, LastEventTime: -1}
	clock := int64(0)
	traceOn := logrus.IsLevelEnabled(logrus.TraceLevel)

	for {
		ev, ok := queue.PopNext()
		if !ok {
			break
		}
		if ev.Time < clock {
			panic(fmt.Sprintf("clock went backwards: %d < %d", ev.Time, clock))
		}
		clock = ev.Time

		dose := c.Pairs[ev.Person].Dose
		res.TotalWaste += vial.Draw(dose)
		res.Injections++
		res.LastEventTime = ev.Time
		if traceOn {
			logrus.Tracef("day %d: person[%d] drew %g, vial %d has %g left",
				ev.Time, ev.Person, dose, vial.Opened, vial.Remaining)
		}

		next := ev.Time + c.Pairs[ev.Person].Interval
		if next < s.Params.Horizon {
			queue.Schedule(InjectionEvent{Time: next, Person: ev.Person})
		}
	}

	res.VialsOpened = vial.Opened
	res.LeftoverAtHorizon = vial.Remaining
	return res, nil
}

// checkCandidate rejects candidates the vial can never serve. The
// builder prunes these pair by pair, so hitting one here means the
// candidate bypassed the builder.
func (s *Simulator) checkCandidate(c Candidate) error {
	if len(c.Pairs) != len(s.Persons) {
		return fmt.Errorf("%w: %d pairs for %d persons", ErrInvalidCandidate, len(c.Pairs), len(s.Persons))
	}
	for i, a := range c.Pairs {
		if math.IsNaN(a.Dose) || math.IsInf(a.Dose, 0) || a.Dose <= 0 {
			return fmt.Errorf("%w: person[%d] dose must be positive, got %g", ErrInvalidCandidate, i, a.Dose)
		}
		if a.Dose > s.Params.VialCapacity {
			return fmt.Errorf("%w: person[%d] dose %g exceeds vial capacity %g",
				ErrInvalidCandidate, i, a.Dose, s.Params.VialCapacity)
		}
		if a.Interval <= 0 {
			return fmt.Errorf("%w: person[%d] interval must be positive, got %d", ErrInvalidCandidate, i, a.Interval)
		}
	}
	return nil
}
