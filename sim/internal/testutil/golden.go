// Package testutil provides shared test infrastructure for the vialsim
// simulator. It consolidates golden scenario types and assertion helpers
// used across sim/ and sim/sweep/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenScenarios represents the structure of testdata/goldenscenarios.json.
type GoldenScenarios struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is a single fully pinned schedule with hand-checked
// simulation results.
type GoldenScenario struct {
	Name         string         `json:"name"`
	VialCapacity float64        `json:"vial_capacity"`
	Horizon      int64          `json:"horizon"`
	People       []GoldenPerson `json:"people"`
	Expect       GoldenExpect   `json:"expect"`
}

// GoldenPerson is one person's fixed (dose, interval) assignment.
type GoldenPerson struct {
	Dose        float64 `json:"dose"`
	Interval    int64   `json:"interval"`
	StartOffset int64   `json:"start_offset"`
}

// GoldenExpect holds the hand-computed results for a scenario.
type GoldenExpect struct {
	TotalWaste        float64 `json:"total_waste"`
	VialsOpened       int64   `json:"vials_opened"`
	Injections        int64   `json:"injections"`
	LastEventTime     int64   `json:"last_event_time"`
	LeftoverAtHorizon float64 `json:"leftover_at_horizon"`
}

// LoadGoldenScenarios loads the golden scenarios from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenScenarios(t *testing.T) *GoldenScenarios {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenscenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden scenarios: %v", err)
	}

	var scenarios GoldenScenarios
	if err := json.Unmarshal(data, &scenarios); err != nil {
		t.Fatalf("Failed to parse golden scenarios: %v", err)
	}

	return &scenarios
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
