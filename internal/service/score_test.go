package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawToWeighted(t *testing.T) {
	cases := []struct {
		name     string
		raw      int
		points   int
		weight   float64
		expected int
	}{
		{name: "full marks", raw: 100, points: 100, weight: 10, expected: 10},
		{name: "partial marks", raw: 80, points: 100, weight: 10, expected: 8},
		{name: "rounds half away from zero", raw: 5, points: 10, weight: 3, expected: 2},
		{name: "rounds down below half", raw: 4, points: 10, weight: 3, expected: 1},
		{name: "zero raw score", raw: 0, points: 100, weight: 10, expected: 0},
		{name: "weight above points", raw: 50, points: 100, weight: 200, expected: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			weighted, err := RawToWeighted(tc.raw, tc.points, tc.weight)
			require.NoError(t, err)
			require.Equal(t, tc.expected, weighted)
		})
	}
}

func TestRawToWeightedRequiresPoints(t *testing.T) {
	_, err := RawToWeighted(10, 0, 5)
	require.ErrorIs(t, err, ErrPointsNotConfigured)
}

func TestWeightedToRaw(t *testing.T) {
	raw, err := WeightedToRaw(8, 100, 10)
	require.NoError(t, err)
	require.Equal(t, 80, raw)

	raw, err = WeightedToRaw(2, 10, 3)
	require.NoError(t, err)
	require.Equal(t, 7, raw)
}

func TestWeightedToRawRequiresWeight(t *testing.T) {
	_, err := WeightedToRaw(8, 100, 0)
	require.ErrorIs(t, err, ErrWeightNotConfigured)
}

// Conversions are lossy in the raw direction, but projecting a stored weighted
// value to the raw scale and back never drifts by more than one.
func TestScoreConversionRoundTrip(t *testing.T) {
	points := 100
	weight := 7.0

	for weighted := 0; weighted <= int(weight); weighted++ {
		raw, err := WeightedToRaw(weighted, points, weight)
		require.NoError(t, err)
		require.GreaterOrEqual(t, raw, 0)
		require.LessOrEqual(t, raw, points)

		back, err := RawToWeighted(raw, points, weight)
		require.NoError(t, err)

		diff := weighted - back
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqual(t, diff, 1, "weighted %d raw %d back %d", weighted, raw, back)
	}
}
