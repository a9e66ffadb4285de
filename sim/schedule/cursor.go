// sim/schedule/cursor.go
package schedule

import (
	"fmt"

	"github.com/vialsim/vialsim/sim"
)

// Cursor walks a contiguous slice of the candidate space in
// enumeration order. The space is a mixed-radix counter over the
// per-person grids with the last person's pair varying fastest, so any
// candidate can be decoded directly from its index and shards can be
// handed to workers without coordination.
type Cursor struct {
	space  *Space
	next   int64
	hi     int64
	digits []int // current grid index per person
}

// Candidates returns a cursor over the whole space.
func (s *Space) Candidates() *Cursor {
	return s.Shard(0, s.size)
}

// Shard returns a cursor over enumeration indexes [lo, hi). Bounds
// outside the space indicate a partitioning bug in the caller.
func (s *Space) Shard(lo, hi int64) *Cursor {
	if s.saturated {
		panic("schedule: cannot enumerate a saturated space")
	}
	if lo < 0 || hi > s.size || lo > hi {
		panic(fmt.Sprintf("schedule: shard [%d, %d) outside space of %d candidates", lo, hi, s.size))
	}
	c := &Cursor{
		space:  s,
		next:   lo,
		hi:     hi,
		digits: make([]int, len(s.grids)),
	}
	if lo < hi {
		c.seek(lo)
	}
	return c
}

// seek positions the digit vector at enumeration index i.
func (c *Cursor) seek(i int64) {
	for k := len(c.space.grids) - 1; k >= 0; k-- {
		radix := int64(len(c.space.grids[k]))
		c.digits[k] = int(i % radix)
		i /= radix
	}
}

// Next returns the next candidate in the shard. The second return is
// false once the shard is exhausted. The returned candidate owns its
// pair slice; callers may retain it across further Next calls.
func (c *Cursor) Next() (sim.Candidate, bool) {
	if c.next >= c.hi {
		return sim.Candidate{}, false
	}
	pairs := make([]sim.Assignment, len(c.digits))
	for k, d := range c.digits {
		pairs[k] = c.space.grids[k][d]
	}
	cand := sim.Candidate{Index: c.next, Pairs: pairs}
	c.next++
	if c.next < c.hi {
		c.advance()
	}
	return cand, true
}

// advance increments the mixed-radix counter by one, carrying from the
// last person leftward.
func (c *Cursor) advance() {
	for k := len(c.digits) - 1; k >= 0; k-- {
		c.digits[k]++
		if c.digits[k] < len(c.space.grids[k]) {
			return
		}
		c.digits[k] = 0
	}
}
