package sim

// Assignment is one person's scheduled draw: Dose taken every Interval
// days.
type Assignment struct {
	Dose     float64 `json:"dose"`
	Interval int64   `json:"interval"`
}

// Candidate assigns exactly one (dose, interval) pair to every person,
// in person declaration order. Index is the candidate's position in the
// builder's enumeration order and is the deterministic tie-break key
// whenever results are ranked or merged.
type Candidate struct {
	Index int64        `json:"index"`
	Pairs []Assignment `json:"pairs"`
}
