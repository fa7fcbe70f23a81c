package service

import (
	"errors"
	"math"
)

// Configuration errors: a block with zero points or weight cannot take part
// in grading. These surface as deployment problems, not user mistakes.
var (
	// ErrPointsNotConfigured indicates the block's maximum raw score is zero.
	ErrPointsNotConfigured = errors.New("block points must be greater than zero")
	// ErrWeightNotConfigured indicates the block's gradebook weight is zero.
	ErrWeightNotConfigured = errors.New("block weight must be greater than zero")
)

// RawToWeighted rescales an instructor-entered raw score to the gradebook
// weight. Rounds half away from zero; WeightedToRaw uses the same rule.
func RawToWeighted(raw, points int, weight float64) (int, error) {
	if points <= 0 {
		return 0, ErrPointsNotConfigured
	}
	return int(math.Round(float64(raw) / float64(points) * weight)), nil
}

// WeightedToRaw projects a persisted weighted score back onto the raw scale.
func WeightedToRaw(weighted, points int, weight float64) (int, error) {
	if weight <= 0 {
		return 0, ErrWeightNotConfigured
	}
	return int(math.Round(float64(weighted) * float64(points) / weight)), nil
}
