// Package sweep evaluates every candidate in a schedule space and
// reports the least wasteful ones. Shards of the enumeration are
// scored on worker goroutines and merged deterministically, so the
// outcome is identical for any worker count.
package sweep

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vialsim/vialsim/sim"
	"github.com/vialsim/vialsim/sim/schedule"
)

// DefaultMaxCandidates bounds a sweep unless the caller raises it.
const DefaultMaxCandidates = 5_000_000

// cancelCheckStride is how many candidates a worker scores between
// context checks.
const cancelCheckStride = 1024

// Config tunes a sweep.
type Config struct {
	// Workers is the number of evaluation goroutines. Values below 2
	// select the sequential path.
	Workers int

	// TopK sizes the leaderboard of best-so-far schedules. Zero
	// disables it.
	TopK int

	// MaxCandidates refuses spaces larger than this. Zero selects
	// DefaultMaxCandidates; negative lifts the limit entirely.
	MaxCandidates int64

	// KeepWaste retains every candidate's waste for summary
	// statistics. Costs 8 bytes per candidate.
	KeepWaste bool
}

// Outcome is the merged result of a sweep.
type Outcome struct {
	// MinWaste is the least total waste observed across the space.
	MinWaste float64 `json:"min_waste"`

	// Best holds every candidate achieving MinWaste exactly, in
	// enumeration order.
	Best []sim.Result `json:"best"`

	// Evaluated counts simulated candidates; Excluded counts
	// candidates pruned away before simulation.
	Evaluated int64 `json:"evaluated"`
	Excluded  int64 `json:"excluded"`

	// Leaderboard ranks the TopK least wasteful candidates, waste
	// ascending with enumeration order breaking ties.
	Leaderboard []sim.Result `json:"leaderboard,omitempty"`

	// Stats summarizes the waste distribution when Config.KeepWaste
	// was set.
	Stats *WasteStats `json:"stats,omitempty"`
}

// Optimizer runs exhaustive sweeps over candidate spaces.
type Optimizer struct {
	cfg Config
}

// New returns an optimizer with the given configuration.
func New(cfg Config) *Optimizer {
	if cfg.MaxCandidates == 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return &Optimizer{cfg: cfg}
}

// Run scores every candidate in the space and returns the merged
// outcome. The context cancels a sweep early; the first worker error
// aborts the whole run.
func (o *Optimizer) Run(ctx context.Context, space *schedule.Space) (*Outcome, error) {
	if !space.Exact() {
		return nil, fmt.Errorf("%w: candidate count overflows int64", schedule.ErrSpaceTooLarge)
	}
	size := space.Size()
	if o.cfg.MaxCandidates > 0 && size > o.cfg.MaxCandidates {
		return nil, fmt.Errorf("%w: %d candidates exceeds limit %d",
			schedule.ErrSpaceTooLarge, size, o.cfg.MaxCandidates)
	}

	workers := o.cfg.Workers
	if int64(workers) > size {
		workers = int(size)
	}

	var parts []*partial
	if workers < 2 {
		p, err := o.evalShard(ctx, space, 0, size)
		if err != nil {
			return nil, err
		}
		parts = []*partial{p}
	} else {
		bounds := shardBounds(size, workers)
		parts = make([]*partial, len(bounds))
		g, gctx := errgroup.WithContext(ctx)
		for i, b := range bounds {
			i, b := i, b
			g.Go(func() error {
				p, err := o.evalShard(gctx, space, b.lo, b.hi)
				if err != nil {
					return err
				}
				parts[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	merged := parts[0]
	for _, p := range parts[1:] {
		merged.merge(p)
	}
	return merged.finish(space), nil
}

// span is a half-open shard of the enumeration.
type span struct {
	lo, hi int64
}

// shardBounds splits [0, size) into n near-equal contiguous spans.
func shardBounds(size int64, n int) []span {
	base := size / int64(n)
	rem := size % int64(n)
	bounds := make([]span, 0, n)
	var lo int64
	for i := 0; i < n; i++ {
		hi := lo + base
		if int64(i) < rem {
			hi++
		}
		bounds = append(bounds, span{lo: lo, hi: hi})
		lo = hi
	}
	return bounds
}

// evalShard scores enumeration indexes [lo, hi) on one goroutine.
// Each shard owns a simulator, so workers share nothing mutable.
func (o *Optimizer) evalShard(ctx context.Context, space *schedule.Space, lo, hi int64) (*partial, error) {
	simulator, err := sim.NewSimulator(space.Params(), space.Persons())
	if err != nil {
		return nil, err
	}

	p := newPartial(o.cfg)
	cursor := space.Shard(lo, hi)
	for {
		cand, ok := cursor.Next()
		if !ok {
			return p, nil
		}
		if p.evaluated%cancelCheckStride == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		res, err := simulator.Run(cand)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", cand.Index, err)
		}
		p.observe(res)
	}
}

// partial accumulates one shard's results. Merging partials in shard
// order reproduces the sequential outcome exactly.
type partial struct {
	min       float64
	best      []sim.Result
	evaluated int64
	board     *leaderboard
	wastes    []float64
}

func newPartial(cfg Config) *partial {
	p := &partial{min: math.Inf(1)}
	if cfg.TopK > 0 {
		p.board = newLeaderboard(cfg.TopK)
	}
	if cfg.KeepWaste {
		p.wastes = make([]float64, 0, 1024)
	}
	return p
}

// observe folds one result in. Ties on waste are exact float
// comparisons: a candidate joins the best set only when its waste
// equals the minimum bit for bit.
func (p *partial) observe(res sim.Result) {
	p.evaluated++
	switch {
	case res.TotalWaste < p.min:
		p.min = res.TotalWaste
		p.best = p.best[:0]
		p.best = append(p.best, res)
	case res.TotalWaste == p.min:
		p.best = append(p.best, res)
	}
	if p.board != nil {
		p.board.offer(res)
	}
	if p.wastes != nil {
		p.wastes = append(p.wastes, res.TotalWaste)
	}
}

// merge folds a later shard into this one.
func (p *partial) merge(q *partial) {
	p.evaluated += q.evaluated
	switch {
	case q.min < p.min:
		p.min = q.min
		p.best = append(p.best[:0], q.best...)
	case q.min == p.min:
		p.best = append(p.best, q.best...)
	}
	if p.board != nil {
		p.board.absorb(q.board)
	}
	if p.wastes != nil {
		p.wastes = append(p.wastes, q.wastes...)
	}
}

// finish seals the merged state into an Outcome.
func (p *partial) finish(space *schedule.Space) *Outcome {
	sort.Slice(p.best, func(i, j int) bool {
		return p.best[i].Candidate.Index < p.best[j].Candidate.Index
	})
	out := &Outcome{
		MinWaste:  p.min,
		Best:      p.best,
		Evaluated: p.evaluated,
		Excluded:  space.Excluded(),
	}
	if p.board != nil {
		out.Leaderboard = p.board.ranked()
	}
	if p.wastes != nil {
		out.Stats = computeWasteStats(p.wastes)
	}
	logrus.Debugf("sweep evaluated %d candidate(s), min waste %g across %d schedule(s)",
		out.Evaluated, out.MinWaste, len(out.Best))
	return out
}
