package sim

import "container/heap"

// InjectionEvent is one scheduled draw: Person draws their assigned
// dose on day Time. Events are generated lazily by the simulator, one
// pending event per person.
type InjectionEvent struct {
	Time   int64
	Person int
}

// EventHeap implements a priority queue with deterministic ordering
// Ordering: day → person index
type EventHeap struct {
	events []InjectionEvent
}

// NewEventHeap creates a new event heap
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		events: make([]InjectionEvent, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *EventHeap) Len() int {
	return len(h.events)
}

// Less implements heap.Interface with deterministic ordering
// Order by: day → person index
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]

	// Primary: day (earlier first)
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}

	// Secondary: person declaration index (lower first, deterministic tie-breaker)
	return ei.Person < ej.Person
}

// Swap implements heap.Interface
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface
func (h *EventHeap) Push(x interface{}) {
	h.events = append(h.events, x.(InjectionEvent))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() interface{} {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the heap
func (h *EventHeap) Schedule(e InjectionEvent) {
	heap.Push(h, e)
}

// PopNext removes and returns the earliest event.
func (h *EventHeap) PopNext() (InjectionEvent, bool) {
	if h.Len() == 0 {
		return InjectionEvent{}, false
	}
	return heap.Pop(h).(InjectionEvent), true
}

// Peek returns the earliest event without removing it.
func (h *EventHeap) Peek() (InjectionEvent, bool) {
	if h.Len() == 0 {
		return InjectionEvent{}, false
	}
	return h.events[0], true
}
