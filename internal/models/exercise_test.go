package models

import (
	"errors"
	"math"
	"testing"
)

func newSquat(t *testing.T) *Exercise {
	t.Helper()
	e, err := NewStrengthExercise("Squat", 10)
	if err != nil {
		t.Fatalf("NewStrengthExercise: %v", err)
	}
	return e
}

// TestAddSetRemoveLastSetInverse verifies that a push followed by a pop leaves
// the set list as it was and returns the pushed set.
func TestAddSetRemoveLastSetInverse(t *testing.T) {
	cases := []struct {
		reps int
		load float64
	}{
		{1, 0.5},
		{5, 100},
		{12, 22.5},
		{100, 1000.25},
	}
	for _, tc := range cases {
		e := newSquat(t)
		if err := e.AddSet(8, 60); err != nil {
			t.Fatalf("seed AddSet: %v", err)
		}
		before := e.Sets()

		if err := e.AddSet(tc.reps, tc.load); err != nil {
			t.Fatalf("AddSet(%d, %g): %v", tc.reps, tc.load, err)
		}
		got, err := e.RemoveLastSet()
		if err != nil {
			t.Fatalf("RemoveLastSet: %v", err)
		}
		if got.Reps() != tc.reps || got.LoadKg() != tc.load {
			t.Errorf("removed %v, want %d reps x %g kg", got, tc.reps, tc.load)
		}
		after := e.Sets()
		if len(after) != len(before) || after[0] != before[0] {
			t.Errorf("sets after push/pop = %v, want %v", after, before)
		}
	}
}

// TestAddSetRejectsNonPositive verifies that invalid reps or load fail with
// ErrInvalidArgument and leave the set list untouched.
func TestAddSetRejectsNonPositive(t *testing.T) {
	cases := []struct {
		name string
		reps int
		load float64
	}{
		{"zero reps", 0, 50},
		{"negative reps", -3, 50},
		{"zero load", 5, 0},
		{"negative load", 5, -2.5},
		{"both invalid", 0, 0},
		{"NaN load", 5, math.NaN()},
		{"infinite load", 5, math.Inf(1)},
		{"negative infinite load", 5, math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newSquat(t)
			if err := e.AddSet(5, 50); err != nil {
				t.Fatal(err)
			}
			err := e.AddSet(tc.reps, tc.load)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if n := e.SetCount(); n != 1 {
				t.Errorf("set count = %d, want 1", n)
			}
		})
	}
}

// TestRemoveLastSetEmpty verifies that popping from an exercise without sets
// reports ErrEmptyCollection.
func TestRemoveLastSetEmpty(t *testing.T) {
	e := newSquat(t)
	if _, err := e.RemoveLastSet(); !errors.Is(err, ErrEmptyCollection) {
		t.Fatalf("err = %v, want ErrEmptyCollection", err)
	}
}

// TestRemoveLastSetLIFO verifies sets come off in reverse logging order.
func TestRemoveLastSetLIFO(t *testing.T) {
	e := newSquat(t)
	for _, reps := range []int{3, 4, 5} {
		if err := e.AddSet(reps, 10); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range []int{5, 4, 3} {
		s, err := e.RemoveLastSet()
		if err != nil {
			t.Fatal(err)
		}
		if s.Reps() != want {
			t.Errorf("removed reps = %d, want %d", s.Reps(), want)
		}
	}
}

// TestSetDurationMinutes verifies positive durations overwrite and
// non-positive ones are rejected without change.
func TestSetDurationMinutes(t *testing.T) {
	e := newSquat(t)
	if err := e.SetDurationMinutes(25); err != nil {
		t.Fatal(err)
	}
	if e.DurationMinutes() != 25 {
		t.Errorf("duration = %d, want 25", e.DurationMinutes())
	}
	if err := e.SetDurationMinutes(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if e.DurationMinutes() != 25 {
		t.Errorf("duration changed to %d after rejected update", e.DurationMinutes())
	}
}

// TestCardioIsImmutable verifies that set and duration operations are not
// defined for cardio exercises.
func TestCardioIsImmutable(t *testing.T) {
	e, err := NewCardioExercise("Run", 30, 5, 300)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.AddSet(5, 10); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("AddSet err = %v, want ErrUnsupportedOperation", err)
	}
	if _, err := e.RemoveLastSet(); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("RemoveLastSet err = %v, want ErrUnsupportedOperation", err)
	}
	if err := e.SetDurationMinutes(10); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("SetDurationMinutes err = %v, want ErrUnsupportedOperation", err)
	}
	if e.Sets() != nil {
		t.Errorf("cardio Sets() = %v, want nil", e.Sets())
	}
}

// TestNewExerciseValidation verifies constructor preconditions.
func TestNewExerciseValidation(t *testing.T) {
	if _, err := NewStrengthExercise("   ", 10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank name: err = %v", err)
	}
	if _, err := NewStrengthExercise("Bench", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero duration: err = %v", err)
	}
	if _, err := NewCardioExercise("Row", 10, 0, 100); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero distance: err = %v", err)
	}
	if _, err := NewCardioExercise("Row", 10, 2, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative calories: err = %v", err)
	}
	if _, err := NewCardioExercise("Row", 10, math.NaN(), 100); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NaN distance: err = %v", err)
	}
	if _, err := NewCardioExercise("Row", 10, math.Inf(1), 100); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("infinite distance: err = %v", err)
	}
}

// TestSetsReturnsCopy verifies callers cannot mutate an exercise through the
// slice returned by Sets.
func TestSetsReturnsCopy(t *testing.T) {
	e := newSquat(t)
	if err := e.AddSet(5, 50); err != nil {
		t.Fatal(err)
	}
	sets := e.Sets()
	sets[0] = Set{reps: 99, loadKg: 99}
	if got := e.Sets()[0]; got.Reps() != 5 {
		t.Errorf("exercise mutated through Sets(): %v", got)
	}
}

// TestParseKind verifies accepted spellings for both variants.
func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"strength", KindStrength},
		{"WeightLifting", KindStrength},
		{" Cardio ", KindCardio},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := ParseKind("yoga"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseKind(yoga) err = %v, want ErrInvalidArgument", err)
	}
}
