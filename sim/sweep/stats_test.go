package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWasteStats_EmptySample_ReturnsNil(t *testing.T) {
	assert.Nil(t, computeWasteStats(nil))
	assert.Nil(t, computeWasteStats([]float64{}))
}

func TestComputeWasteStats_SingleValue(t *testing.T) {
	s := computeWasteStats([]float64{2.5})
	require.NotNil(t, s)
	assert.Equal(t, int64(1), s.Count)
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 2.5, s.Min)
	assert.Equal(t, 2.5, s.Max)
	assert.Equal(t, 2.5, s.P50)
	assert.Equal(t, 2.5, s.P90)
}

func TestComputeWasteStats_KnownSample(t *testing.T) {
	// GIVEN an unsorted sample with one outlier
	s := computeWasteStats([]float64{1, 0, 0, 0})
	require.NotNil(t, s)

	// THEN the summary matches hand computation
	assert.Equal(t, int64(4), s.Count)
	assert.InDelta(t, 0.25, s.Mean, 1e-12)
	assert.InDelta(t, 0.5, s.StdDev, 1e-12) // sample stddev
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 1.0, s.Max)
	assert.Equal(t, 0.0, s.P50)
	assert.Equal(t, 1.0, s.P90)
}
