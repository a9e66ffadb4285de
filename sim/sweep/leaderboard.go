// sim/sweep/leaderboard.go
package sweep

import (
	"container/heap"

	"github.com/vialsim/vialsim/sim"
)

// leaderboard keeps the k best results seen so far. It is a max-heap
// on "worse than", so the root is the current worst member and a
// better offer evicts it in O(log k). Because (waste, enumeration
// index) totally orders results, the kept set is independent of offer
// order.
type leaderboard struct {
	k       int
	entries []sim.Result
}

func newLeaderboard(k int) *leaderboard {
	return &leaderboard{k: k, entries: make([]sim.Result, 0, k)}
}

// worse reports whether a ranks strictly worse than b.
// Ordering: higher waste first, then higher enumeration index.
func worse(a, b sim.Result) bool {
	if a.TotalWaste != b.TotalWaste {
		return a.TotalWaste > b.TotalWaste
	}
	return a.Candidate.Index > b.Candidate.Index
}

func (l *leaderboard) Len() int {
	return len(l.entries)
}

func (l *leaderboard) Less(i, j int) bool {
	return worse(l.entries[i], l.entries[j])
}

func (l *leaderboard) Swap(i, j int) {
	l.entries[i], l.entries[j] = l.entries[j], l.entries[i]
}

func (l *leaderboard) Push(x interface{}) {
	l.entries = append(l.entries, x.(sim.Result))
}

func (l *leaderboard) Pop() interface{} {
	old := l.entries
	n := len(old)
	res := old[n-1]
	l.entries = old[:n-1]
	return res
}

// offer admits the result if the board has room or the result beats
// the current worst member.
func (l *leaderboard) offer(res sim.Result) {
	if len(l.entries) < l.k {
		heap.Push(l, res)
		return
	}
	if worse(res, l.entries[0]) {
		return
	}
	l.entries[0] = res
	heap.Fix(l, 0)
}

// absorb folds another board's members in.
func (l *leaderboard) absorb(other *leaderboard) {
	if other == nil {
		return
	}
	for _, res := range other.entries {
		l.offer(res)
	}
}

// ranked returns the members best first. The board is drained; it must
// not be offered to afterwards.
func (l *leaderboard) ranked() []sim.Result {
	out := make([]sim.Result, len(l.entries))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(l).(sim.Result)
	}
	return out
}
