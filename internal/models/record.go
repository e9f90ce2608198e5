package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkoutRecord is the serialized form of a Workout, shared by the history
// codecs and the JSON API.
type WorkoutRecord struct {
	Title     string           `json:"title" yaml:"title" cbor:"title"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at" cbor:"created_at"`
	Exercises []ExerciseRecord `json:"exercises" yaml:"exercises" cbor:"exercises"`
}

// ExerciseRecord is the serialized form of an Exercise. Kind selects which of
// the variant fields are meaningful.
type ExerciseRecord struct {
	ID                string      `json:"id" yaml:"id" cbor:"id"`
	Kind              Kind        `json:"kind" yaml:"kind" cbor:"kind"`
	Name              string      `json:"name" yaml:"name" cbor:"name"`
	DurationMinutes   int         `json:"duration_minutes" yaml:"duration_minutes" cbor:"duration_minutes"`
	Sets              []SetRecord `json:"sets,omitempty" yaml:"sets,omitempty" cbor:"sets,omitempty"`
	DistanceKm        float64     `json:"distance_km,omitempty" yaml:"distance_km,omitempty" cbor:"distance_km,omitempty"`
	EstimatedCalories int         `json:"estimated_calories,omitempty" yaml:"estimated_calories,omitempty" cbor:"estimated_calories,omitempty"`
}

// SetRecord is the serialized form of a Set.
type SetRecord struct {
	Reps   int     `json:"reps" yaml:"reps" cbor:"reps"`
	LoadKg float64 `json:"load_kg" yaml:"load_kg" cbor:"load_kg"`
}

// Record converts the workout to its serialized form.
func (w *Workout) Record() WorkoutRecord {
	rec := WorkoutRecord{
		Title:     w.title,
		CreatedAt: w.createdAt,
		Exercises: make([]ExerciseRecord, 0, len(w.exercises)),
	}
	for _, e := range w.exercises {
		rec.Exercises = append(rec.Exercises, e.Record())
	}
	return rec
}

// Record converts the exercise to its serialized form.
func (e *Exercise) Record() ExerciseRecord {
	rec := ExerciseRecord{
		ID:              e.id.String(),
		Kind:            e.kind,
		Name:            e.name,
		DurationMinutes: e.durationMinutes,
	}
	switch e.kind {
	case KindStrength:
		rec.Sets = make([]SetRecord, 0, len(e.strength.sets))
		for _, s := range e.strength.sets {
			rec.Sets = append(rec.Sets, SetRecord{Reps: s.reps, LoadKg: s.loadKg})
		}
	case KindCardio:
		rec.DistanceKm = e.cardio.distanceKm
		rec.EstimatedCalories = e.cardio.estimatedCalories
	}
	return rec
}

// WorkoutFromRecord rebuilds a workout, enforcing every invariant a live
// workout holds. A stored strength exercise must have at least one set.
func WorkoutFromRecord(rec WorkoutRecord) (*Workout, error) {
	w, err := NewWorkout(rec.Title, rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	for i, er := range rec.Exercises {
		e, err := ExerciseFromRecord(er)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: %w", i+1, err)
		}
		w.exercises = append(w.exercises, e)
	}
	return w, nil
}

// ExerciseFromRecord rebuilds an exercise, keeping its stored ID.
func ExerciseFromRecord(rec ExerciseRecord) (*Exercise, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: exercise id %q: %v", ErrInvalidArgument, rec.ID, err)
	}

	var e *Exercise
	switch rec.Kind {
	case KindStrength:
		e, err = NewStrengthExercise(rec.Name, rec.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if len(rec.Sets) == 0 {
			return nil, fmt.Errorf("%w: strength exercise %q has no sets", ErrInvalidArgument, rec.Name)
		}
		for _, s := range rec.Sets {
			if err := e.AddSet(s.Reps, s.LoadKg); err != nil {
				return nil, err
			}
		}
	case KindCardio:
		e, err = NewCardioExercise(rec.Name, rec.DurationMinutes, rec.DistanceKm, rec.EstimatedCalories)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown exercise kind %q", ErrInvalidArgument, rec.Kind)
	}
	e.id = id
	return e, nil
}
