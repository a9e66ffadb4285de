package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialsim/vialsim/sim/schedule"
	"github.com/vialsim/vialsim/sim/sweep"
)

// TestExampleScenarios_Household verifies that household.yaml loads and
// produces the candidate space its comments describe.
func TestExampleScenarios_Household(t *testing.T) {
	// GIVEN the household.yaml example scenario
	path := filepath.Join("..", "examples", "household.yaml")
	spec, err := LoadScenarioSpec(path)
	require.NoError(t, err, "failed to load household.yaml")

	// THEN validation passes
	require.NoError(t, spec.Validate(), "validation failed")

	// THEN the candidate space matches the documented shape
	space, err := schedule.New(spec.Params(), spec.Persons())
	require.NoError(t, err)
	assert.Equal(t, []int{15, 9, 12}, space.PairCounts())
	assert.Equal(t, int64(1620), space.Size())
	assert.Equal(t, int64(0), space.Excluded())

	names := make([]string, 0, len(spec.People))
	for _, p := range spec.Persons() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, names)
}

// TestExampleScenarios_Clinic verifies that clinic.yaml loads and that
// the bolus patient's oversized doses are excluded as documented.
func TestExampleScenarios_Clinic(t *testing.T) {
	// GIVEN the clinic.yaml example scenario
	path := filepath.Join("..", "examples", "clinic.yaml")
	spec, err := LoadScenarioSpec(path)
	require.NoError(t, err, "failed to load clinic.yaml")

	// THEN validation passes
	require.NoError(t, spec.Validate(), "validation failed")

	// THEN the 11 and 12 mL bolus pairs are pruned from the space
	space, err := schedule.New(spec.Params(), spec.Persons())
	require.NoError(t, err)
	assert.Equal(t, []int{10, 2, 9, 2}, space.PairCounts())
	assert.Equal(t, int64(360), space.Size())
	assert.Equal(t, int64(360), space.Excluded())
}

// TestExampleScenarios_Clinic_EndToEnd sweeps the clinic example and
// sanity-checks the outcome shape.
func TestExampleScenarios_Clinic_EndToEnd(t *testing.T) {
	spec, err := LoadScenarioSpec(filepath.Join("..", "examples", "clinic.yaml"))
	require.NoError(t, err)
	require.NoError(t, spec.Validate())
	space, err := schedule.New(spec.Params(), spec.Persons())
	require.NoError(t, err)

	out, err := sweep.New(sweep.Config{Workers: 4, TopK: 3}).Run(context.Background(), space)
	require.NoError(t, err)

	assert.Equal(t, int64(360), out.Evaluated)
	assert.NotEmpty(t, out.Best)
	assert.GreaterOrEqual(t, out.MinWaste, 0.0)
	require.Len(t, out.Leaderboard, 3)
	assert.Equal(t, out.Best[0], out.Leaderboard[0])
}
