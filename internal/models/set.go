package models

import (
	"fmt"
	"math"
	"strconv"
)

// Set is one reps × load data point of a strength exercise. The zero value is
// not a valid set; use NewSet.
type Set struct {
	reps   int
	loadKg float64
}

// NewSet validates and builds a set. Both reps and load must be positive;
// load must also be finite.
func NewSet(reps int, loadKg float64) (Set, error) {
	if reps <= 0 {
		return Set{}, fmt.Errorf("%w: reps must be positive, got %d", ErrInvalidArgument, reps)
	}
	if !positiveFinite(loadKg) {
		return Set{}, fmt.Errorf("%w: load must be a positive number, got %g", ErrInvalidArgument, loadKg)
	}
	return Set{reps: reps, loadKg: loadKg}, nil
}

// Reps returns the repetition count.
func (s Set) Reps() int { return s.reps }

// LoadKg returns the load in kilograms.
func (s Set) LoadKg() float64 { return s.loadKg }

func (s Set) String() string {
	return fmt.Sprintf("%d reps x %s kg", s.reps, formatDecimal(s.loadKg))
}

// formatDecimal prints the shortest decimal that reads back as v.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// positiveFinite rejects NaN and the infinities along with v <= 0.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
