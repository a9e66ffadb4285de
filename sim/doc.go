// Package sim provides the discrete-event engine at the core of
// vialsim: deterministic simulation of people drawing recurring doses
// from a shared multi-use vial, and the types describing what to
// search over.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - person.go: dose/interval search ranges and per-person schedule specs
//   - event.go: the injection event heap and its deterministic ordering
//   - simulator.go: the event loop, vial replacement, and waste accounting
//
// # Architecture
//
// The sim package owns the single-candidate simulation; the search over
// candidates lives in sub-packages:
//   - sim/schedule/: lazy enumeration of the candidate space (the
//     Cartesian product of every person's (dose, interval) grid), with
//     contiguous index shards for parallel evaluation
//   - sim/sweep/: the optimizer that streams candidates through the
//     simulator, tracks minimum waste with every tie retained, and
//     merges per-shard partials deterministically
//
// # Determinism
//
// Determinism is a hard requirement, not a nicety: events are ordered
// by (day, person index), candidates by their enumeration index, and
// re-running any simulation yields bit-identical results. Nothing in
// this package reads the wall clock or global randomness.
package sim
