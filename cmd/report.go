// cmd/report.go
package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/vialsim/vialsim/sim"
	"github.com/vialsim/vialsim/sim/sweep"
)

// maxRenderedTies caps how many tied schedules the text report prints
// in full.
const maxRenderedTies = 10

// Report pairs a sweep outcome with the scenario it came from.
type Report struct {
	Scenario string         `json:"scenario"`
	Params   sim.Params     `json:"params"`
	Persons  []sim.Person   `json:"people"`
	Outcome  *sweep.Outcome `json:"outcome"`
}

// NewReport builds a report for rendering.
func NewReport(scenario string, params sim.Params, persons []sim.Person, outcome *sweep.Outcome) *Report {
	return &Report{Scenario: scenario, Params: params, Persons: persons, Outcome: outcome}
}

// RenderText writes the human-readable report.
func (r *Report) RenderText(w io.Writer) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(w, "least wasteful dosing schedules")
	fmt.Fprintf(w, "scenario %s: vial %g mL, horizon %d day(s)\n", r.Scenario, r.Params.VialCapacity, r.Params.Horizon)
	fmt.Fprintf(w, "evaluated %d candidate schedule(s)\n", r.Outcome.Evaluated)
	if r.Outcome.Excluded > 0 {
		yellow.Fprintf(w, "%d candidate(s) excluded: dose does not fit the vial\n", r.Outcome.Excluded)
	}
	green.Fprintf(w, "minimum waste: %.2f mL (%d schedule(s) tie)\n", r.Outcome.MinWaste, len(r.Outcome.Best))

	shown := r.Outcome.Best
	if len(shown) > maxRenderedTies {
		shown = shown[:maxRenderedTies]
	}
	for _, res := range shown {
		fmt.Fprintf(w, "\nwasted %.2f mL, %d vial(s) opened, %d injection(s)",
			res.TotalWaste, res.VialsOpened, res.Injections)
		if res.LastEventTime >= 0 {
			fmt.Fprintf(w, ", last on day %d", res.LastEventTime)
		}
		fmt.Fprintln(w)
		for i, pair := range res.Candidate.Pairs {
			offsetNote := ""
			if r.Persons[i].StartOffset > 0 {
				offsetNote = fmt.Sprintf(" (starts day %d)", r.Persons[i].StartOffset)
			}
			fmt.Fprintf(w, "  %s: %.2f mL every %d day(s)%s\n", r.Persons[i].Name, pair.Dose, pair.Interval, offsetNote)
		}
		fmt.Fprintf(w, "  %.2f mL left in the open vial at the horizon\n", res.LeftoverAtHorizon)
	}
	if n := len(r.Outcome.Best) - len(shown); n > 0 {
		fmt.Fprintf(w, "\n(and %d more tied schedule(s))\n", n)
	}

	if len(r.Outcome.Leaderboard) > 0 {
		bold.Fprintln(w, "\nleaderboard")
		for rank, res := range r.Outcome.Leaderboard {
			fmt.Fprintf(w, "%2d. %.2f mL wasted: %s\n", rank+1, res.TotalWaste, r.scheduleLine(res))
		}
	}
	if s := r.Outcome.Stats; s != nil {
		bold.Fprintln(w, "\nwaste across the space")
		fmt.Fprintf(w, "n=%d mean=%.3f stddev=%.3f min=%.3f p50=%.3f p90=%.3f max=%.3f\n",
			s.Count, s.Mean, s.StdDev, s.Min, s.P50, s.P90, s.Max)
	}
}

// scheduleLine compacts a candidate into one line of assignments.
func (r *Report) scheduleLine(res sim.Result) string {
	parts := make([]string, len(res.Candidate.Pairs))
	for i, pair := range res.Candidate.Pairs {
		parts[i] = fmt.Sprintf("%s %.2f mL/%dd", r.Persons[i].Name, pair.Dose, pair.Interval)
	}
	return strings.Join(parts, ", ")
}

// RenderJSON writes the report as indented JSON.
func (r *Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteLeaderboardCSV writes the ranked schedules to path, one row
// per schedule with per-person dose and interval columns. Falls back
// to the tied-best set when no leaderboard was collected.
func WriteLeaderboardCSV(path string, persons []sim.Person, outcome *sweep.Outcome) error {
	rows := outcome.Leaderboard
	if len(rows) == 0 {
		rows = outcome.Best
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing leaderboard: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	header := []string{"rank", "candidate", "waste_ml", "vials_opened", "injections"}
	for _, p := range persons {
		header = append(header, p.Name+"_dose", p.Name+"_interval")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for rank, res := range rows {
		row := []string{
			strconv.Itoa(rank + 1),
			strconv.FormatInt(res.Candidate.Index, 10),
			strconv.FormatFloat(res.TotalWaste, 'f', -1, 64),
			strconv.FormatInt(res.VialsOpened, 10),
			strconv.FormatInt(res.Injections, 10),
		}
		for _, pair := range res.Candidate.Pairs {
			row = append(row,
				strconv.FormatFloat(pair.Dose, 'f', -1, 64),
				strconv.FormatInt(pair.Interval, 10))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
