// Package bmi derives body-mass index and its weight category.
package bmi

import (
	"fmt"
	"math"

	"github.com/claude/gymtrack/internal/models"
)

// Category is a BMI weight band.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// Category thresholds. Each lower bound is inclusive.
const (
	normalFrom     = 18.5
	overweightFrom = 25.0
	obeseFrom      = 30.0

	// epsilon absorbs binary rounding in w/h², so inputs that are exactly on a
	// threshold in decimal (59.94 kg at 180 cm is 18.5) classify upward.
	epsilon = 1e-9
)

// Result is a computed BMI with its category.
type Result struct {
	HeightCm float64  `json:"height_cm"`
	WeightKg float64  `json:"weight_kg"`
	BMI      float64  `json:"bmi"`
	Category Category `json:"category"`
}

// Compute returns weightKg / (heightCm/100)^2 and its category. Both inputs
// must be positive and finite.
func Compute(heightCm, weightKg float64) (Result, error) {
	if !(heightCm > 0) || math.IsInf(heightCm, 0) {
		return Result{}, fmt.Errorf("%w: height must be positive, got %g", models.ErrInvalidArgument, heightCm)
	}
	if !(weightKg > 0) || math.IsInf(weightKg, 0) {
		return Result{}, fmt.Errorf("%w: weight must be positive, got %g", models.ErrInvalidArgument, weightKg)
	}
	m := heightCm / 100
	v := weightKg / (m * m)
	return Result{HeightCm: heightCm, WeightKg: weightKg, BMI: v, Category: Classify(v)}, nil
}

// Classify maps a BMI value to its category.
func Classify(v float64) Category {
	v += epsilon
	switch {
	case v < normalFrom:
		return Underweight
	case v < overweightFrom:
		return Normal
	case v < obeseFrom:
		return Overweight
	default:
		return Obese
	}
}

func (r Result) String() string {
	return fmt.Sprintf("BMI %.2f (%s)", r.BMI, r.Category)
}
