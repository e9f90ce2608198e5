package bmi

import (
	"errors"
	"math"
	"testing"

	"github.com/claude/gymtrack/internal/models"
)

// TestComputeBoundaries verifies the inclusive lower bound of each category
// using values that land just either side of 18.5 and 30.
func TestComputeBoundaries(t *testing.T) {
	cases := []struct {
		height, weight float64
		want           Category
	}{
		{180, 59.94, Normal},
		{180, 59.93, Underweight},
		{170, 86.7, Obese},
		{170, 86.6, Overweight},
		{175, 70, Normal},
		{160, 40, Underweight},
		{180, 81, Normal},
		{180, 81.1, Overweight},
	}
	for _, tc := range cases {
		got, err := Compute(tc.height, tc.weight)
		if err != nil {
			t.Fatalf("Compute(%g, %g): %v", tc.height, tc.weight, err)
		}
		if got.Category != tc.want {
			t.Errorf("Compute(%g, %g) = %.4f %s, want %s", tc.height, tc.weight, got.BMI, got.Category, tc.want)
		}
	}
}

// TestComputeValue verifies the formula itself.
func TestComputeValue(t *testing.T) {
	got, err := Compute(200, 100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.BMI-25) > 1e-9 {
		t.Errorf("BMI = %v, want 25", got.BMI)
	}
	if got.Category != Overweight {
		t.Errorf("category = %s, want Overweight (25 is inclusive)", got.Category)
	}
}

// TestComputeRejectsNonPositive verifies invalid measurements, including NaN
// and infinities, fail with ErrInvalidArgument.
func TestComputeRejectsNonPositive(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	for _, in := range [][2]float64{
		{0, 70}, {-170, 70}, {170, 0}, {170, -1},
		{nan, 70}, {170, nan}, {inf, 70}, {170, inf}, {-inf, 70},
	} {
		if _, err := Compute(in[0], in[1]); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("Compute(%g, %g) err = %v, want ErrInvalidArgument", in[0], in[1], err)
		}
	}
}

// TestClassifyEdges checks exact threshold values.
func TestClassifyEdges(t *testing.T) {
	cases := map[float64]Category{
		18.4999: Underweight,
		18.5:    Normal,
		24.9999: Normal,
		25:      Overweight,
		29.9999: Overweight,
		30:      Obese,
		45:      Obese,
	}
	for v, want := range cases {
		if got := Classify(v); got != want {
			t.Errorf("Classify(%v) = %s, want %s", v, got, want)
		}
	}
}

// TestRecommendationCopies verifies every category has a plan and callers
// cannot mutate the shared table.
func TestRecommendationCopies(t *testing.T) {
	for _, c := range []Category{Underweight, Normal, Overweight, Obese} {
		p := Recommendation(c)
		if len(p) == 0 {
			t.Errorf("no plan for %s", c)
			continue
		}
		p[0] = "changed"
		if Recommendation(c)[0] == "changed" {
			t.Errorf("plan for %s mutated through returned slice", c)
		}
	}
}

// TestRecommendationUnknownCategory verifies an unknown category has no plan.
func TestRecommendationUnknownCategory(t *testing.T) {
	if p := Recommendation(Category("Athletic")); p != nil {
		t.Errorf("Recommendation(Athletic) = %#v, want nil", p)
	}
}
