package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind tags the exercise variant.
type Kind string

const (
	KindStrength Kind = "strength"
	KindCardio   Kind = "cardio"
)

// ParseKind maps user input ("strength", "Cardio", "weightlifting") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strength", "weightlifting", "weight_lifting":
		return KindStrength, nil
	case "cardio":
		return KindCardio, nil
	}
	return "", fmt.Errorf("%w: unknown exercise kind %q", ErrInvalidArgument, s)
}

func (k Kind) String() string {
	switch k {
	case KindStrength:
		return "Strength"
	case KindCardio:
		return "Cardio"
	}
	return string(k)
}

// Exercise is a tagged union over the strength and cardio variants. Only the
// payload matching Kind is populated.
type Exercise struct {
	id              uuid.UUID
	name            string
	durationMinutes int
	kind            Kind

	strength *strengthDetail
	cardio   *cardioDetail
}

type strengthDetail struct {
	sets []Set
}

type cardioDetail struct {
	distanceKm        float64
	estimatedCalories int
}

// NewStrengthExercise creates a strength exercise with no sets. Callers add the
// first set before handing it to a workout.
func NewStrengthExercise(name string, durationMinutes int) (*Exercise, error) {
	name, err := validateCommon(name, durationMinutes)
	if err != nil {
		return nil, err
	}
	return &Exercise{
		id:              uuid.New(),
		name:            name,
		durationMinutes: durationMinutes,
		kind:            KindStrength,
		strength:        &strengthDetail{},
	}, nil
}

// NewCardioExercise creates an immutable cardio exercise.
func NewCardioExercise(name string, durationMinutes int, distanceKm float64, estimatedCalories int) (*Exercise, error) {
	name, err := validateCommon(name, durationMinutes)
	if err != nil {
		return nil, err
	}
	if err := validateCardio(distanceKm, estimatedCalories); err != nil {
		return nil, err
	}
	return &Exercise{
		id:              uuid.New(),
		name:            name,
		durationMinutes: durationMinutes,
		kind:            KindCardio,
		cardio:          &cardioDetail{distanceKm: distanceKm, estimatedCalories: estimatedCalories},
	}, nil
}

func validateCommon(name string, durationMinutes int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: exercise name is required", ErrInvalidArgument)
	}
	if durationMinutes <= 0 {
		return "", fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidArgument, durationMinutes)
	}
	return name, nil
}

func validateCardio(distanceKm float64, estimatedCalories int) error {
	if !positiveFinite(distanceKm) {
		return fmt.Errorf("%w: distance must be a positive number, got %g", ErrInvalidArgument, distanceKm)
	}
	if estimatedCalories <= 0 {
		return fmt.Errorf("%w: calories must be positive, got %d", ErrInvalidArgument, estimatedCalories)
	}
	return nil
}

func (e *Exercise) ID() uuid.UUID        { return e.id }
func (e *Exercise) Name() string         { return e.name }
func (e *Exercise) Kind() Kind           { return e.kind }
func (e *Exercise) DurationMinutes() int { return e.durationMinutes }
func (e *Exercise) IsStrength() bool     { return e.kind == KindStrength }
func (e *Exercise) IsCardio() bool       { return e.kind == KindCardio }

// DistanceKm returns the cardio distance, or 0 for strength exercises.
func (e *Exercise) DistanceKm() float64 {
	if e.kind != KindCardio {
		return 0
	}
	return e.cardio.distanceKm
}

// EstimatedCalories returns the cardio calorie estimate, or 0 for strength exercises.
func (e *Exercise) EstimatedCalories() int {
	if e.kind != KindCardio {
		return 0
	}
	return e.cardio.estimatedCalories
}

// Sets returns a copy of the sets in logged order. Cardio exercises have none.
func (e *Exercise) Sets() []Set {
	if e.kind != KindStrength {
		return nil
	}
	out := make([]Set, len(e.strength.sets))
	copy(out, e.strength.sets)
	return out
}

// SetCount returns the number of logged sets.
func (e *Exercise) SetCount() int {
	if e.kind != KindStrength {
		return 0
	}
	return len(e.strength.sets)
}

// AddSet appends a set to a strength exercise. The set list is unchanged on error.
func (e *Exercise) AddSet(reps int, loadKg float64) error {
	if e.kind != KindStrength {
		return fmt.Errorf("%w: cannot add sets to %s exercise %q", ErrUnsupportedOperation, e.kind, e.name)
	}
	s, err := NewSet(reps, loadKg)
	if err != nil {
		return err
	}
	e.strength.sets = append(e.strength.sets, s)
	return nil
}

// RemoveLastSet pops the most recently added set. It never removes the exercise
// itself; an emptied exercise is the owning workout's concern.
func (e *Exercise) RemoveLastSet() (Set, error) {
	if e.kind != KindStrength {
		return Set{}, fmt.Errorf("%w: %s exercise %q has no sets", ErrUnsupportedOperation, e.kind, e.name)
	}
	n := len(e.strength.sets)
	if n == 0 {
		return Set{}, fmt.Errorf("%w: exercise %q has no sets to remove", ErrEmptyCollection, e.name)
	}
	last := e.strength.sets[n-1]
	e.strength.sets = e.strength.sets[:n-1]
	return last, nil
}

// SetDurationMinutes overwrites the duration of a strength exercise. Cardio
// exercises are immutable.
func (e *Exercise) SetDurationMinutes(minutes int) error {
	if e.kind != KindStrength {
		return fmt.Errorf("%w: %s exercise %q is immutable", ErrUnsupportedOperation, e.kind, e.name)
	}
	if minutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidArgument, minutes)
	}
	e.durationMinutes = minutes
	return nil
}

// matches reports whether e is a strength exercise named name, ignoring case.
func (e *Exercise) matches(name string) bool {
	return e.kind == KindStrength && strings.EqualFold(e.name, name)
}

// clone returns a deep copy so no caller can alias a workout's internal state.
func (e *Exercise) clone() *Exercise {
	c := *e
	switch e.kind {
	case KindStrength:
		sets := make([]Set, len(e.strength.sets))
		copy(sets, e.strength.sets)
		c.strength = &strengthDetail{sets: sets}
	case KindCardio:
		cd := *e.cardio
		c.cardio = &cd
	}
	return &c
}
