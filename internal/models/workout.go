package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Workout is a titled, timestamped session that exclusively owns an ordered
// list of exercises. Exercises leave a workout only as deep copies.
type Workout struct {
	title     string
	createdAt time.Time
	exercises []*Exercise
}

// NewWorkout starts an empty workout. createdAt is fixed for the life of the workout.
func NewWorkout(title string, createdAt time.Time) (*Workout, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: workout title is required", ErrInvalidArgument)
	}
	return &Workout{title: title, createdAt: createdAt.Round(0)}, nil
}

func (w *Workout) Title() string        { return w.title }
func (w *Workout) CreatedAt() time.Time { return w.createdAt }
func (w *Workout) Len() int             { return len(w.exercises) }
func (w *Workout) IsEmpty() bool        { return len(w.exercises) == 0 }

// SetTitle overwrites the title. Blank titles are rejected.
func (w *Workout) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: workout title is required", ErrInvalidArgument)
	}
	w.title = title
	return nil
}

// Exercises returns deep copies of the exercises in insertion order.
func (w *Workout) Exercises() []*Exercise {
	out := make([]*Exercise, len(w.exercises))
	for i, e := range w.exercises {
		out[i] = e.clone()
	}
	return out
}

// AddExercise appends ex as a new entry. It performs no merging; the workout
// keeps its own copy so the caller's value cannot alias it. A strength
// exercise must already carry at least one set.
func (w *Workout) AddExercise(ex *Exercise) error {
	if ex == nil {
		return fmt.Errorf("%w: exercise is required", ErrInvalidArgument)
	}
	if ex.IsStrength() && ex.SetCount() == 0 {
		return fmt.Errorf("%w: strength exercise %q has no sets", ErrInvalidArgument, ex.Name())
	}
	w.exercises = append(w.exercises, ex.clone())
	return nil
}

// findStrength returns the first strength exercise whose name equals name
// ignoring case. The list is session-sized, so a linear scan is fine.
func (w *Workout) findStrength(name string) *Exercise {
	for _, e := range w.exercises {
		if e.matches(name) {
			return e
		}
	}
	return nil
}

// LogEntry is one user-submitted exercise log. Reps/LoadKg apply to strength,
// DistanceKm/EstimatedCalories to cardio.
type LogEntry struct {
	Kind              Kind    `json:"kind"`
	Name              string  `json:"name"`
	DurationMinutes   int     `json:"duration_minutes"`
	Reps              int     `json:"reps,omitempty"`
	LoadKg            float64 `json:"load_kg,omitempty"`
	DistanceKm        float64 `json:"distance_km,omitempty"`
	EstimatedCalories int     `json:"estimated_calories,omitempty"`
}

// Validate checks every precondition of LogExercise without touching a workout.
func (e LogEntry) Validate() error {
	if _, err := validateCommon(e.Name, e.DurationMinutes); err != nil {
		return err
	}
	switch e.Kind {
	case KindStrength:
		_, err := NewSet(e.Reps, e.LoadKg)
		return err
	case KindCardio:
		return validateCardio(e.DistanceKm, e.EstimatedCalories)
	}
	return fmt.Errorf("%w: unknown exercise kind %q", ErrInvalidArgument, e.Kind)
}

// LogResult describes what LogExercise did.
type LogResult struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	Name       string    `json:"name"`
	Kind       Kind      `json:"kind"`
	Merged     bool      `json:"merged"`
	SetCount   int       `json:"set_count"`
}

// LogExercise records an exercise. A strength entry whose name matches an
// existing strength exercise appends one set to it and takes the new duration;
// anything else is appended as a new exercise. The workout is unchanged on error.
func (w *Workout) LogExercise(entry LogEntry) (LogResult, error) {
	if err := entry.Validate(); err != nil {
		return LogResult{}, err
	}
	name := strings.TrimSpace(entry.Name)

	switch entry.Kind {
	case KindStrength:
		if existing := w.findStrength(name); existing != nil {
			// Validated above, so neither call can fail part-way.
			if err := existing.AddSet(entry.Reps, entry.LoadKg); err != nil {
				return LogResult{}, err
			}
			existing.durationMinutes = entry.DurationMinutes
			return LogResult{
				ExerciseID: existing.id,
				Name:       existing.name,
				Kind:       KindStrength,
				Merged:     true,
				SetCount:   existing.SetCount(),
			}, nil
		}
		ex, err := NewStrengthExercise(name, entry.DurationMinutes)
		if err != nil {
			return LogResult{}, err
		}
		if err := ex.AddSet(entry.Reps, entry.LoadKg); err != nil {
			return LogResult{}, err
		}
		w.exercises = append(w.exercises, ex)
		return LogResult{ExerciseID: ex.id, Name: ex.name, Kind: KindStrength, SetCount: 1}, nil

	default:
		ex, err := NewCardioExercise(name, entry.DurationMinutes, entry.DistanceKm, entry.EstimatedCalories)
		if err != nil {
			return LogResult{}, err
		}
		w.exercises = append(w.exercises, ex)
		return LogResult{ExerciseID: ex.id, Name: ex.name, Kind: KindCardio}, nil
	}
}

// Removal tells the caller how much RemoveLastLoggedItem took away.
type Removal int

const (
	// RemovedSet means a set was popped and its exercise still has sets.
	RemovedSet Removal = iota + 1
	// RemovedExercise means the popped set was the exercise's last, so the
	// exercise was removed as well.
	RemovedExercise
)

func (r Removal) String() string {
	switch r {
	case RemovedSet:
		return "set_removed"
	case RemovedExercise:
		return "exercise_removed"
	}
	return "unknown"
}

// RemoveResult reports a RemoveLastLoggedItem outcome.
type RemoveResult struct {
	Removal       Removal `json:"-"`
	Outcome       string  `json:"outcome"`
	ExerciseName  string  `json:"exercise_name"`
	Set           Set     `json:"-"`
	RemainingSets int     `json:"remaining_sets"`
}

// RemoveLastLoggedItem pops the last set of the last exercise, removing the
// exercise too when that leaves it empty. Only the last logged exercise is
// eligible, and cardio exercises are rejected.
func (w *Workout) RemoveLastLoggedItem() (RemoveResult, error) {
	n := len(w.exercises)
	if n == 0 {
		return RemoveResult{}, fmt.Errorf("%w: workout has no exercises", ErrEmptyCollection)
	}
	last := w.exercises[n-1]

	switch last.kind {
	case KindStrength:
		set, err := last.RemoveLastSet()
		if err != nil {
			return RemoveResult{}, err
		}
		res := RemoveResult{
			Removal:       RemovedSet,
			ExerciseName:  last.name,
			Set:           set,
			RemainingSets: last.SetCount(),
		}
		if last.SetCount() == 0 {
			w.exercises[n-1] = nil
			w.exercises = w.exercises[:n-1]
			res.Removal = RemovedExercise
		}
		res.Outcome = res.Removal.String()
		return res, nil
	default:
		return RemoveResult{}, fmt.Errorf("%w: last exercise %q is %s, sets can only be removed from strength exercises",
			ErrUnsupportedOperation, last.name, last.kind)
	}
}

// Clone returns a deep copy of the workout.
func (w *Workout) Clone() *Workout {
	c := &Workout{title: w.title, createdAt: w.createdAt}
	c.exercises = make([]*Exercise, len(w.exercises))
	for i, e := range w.exercises {
		c.exercises[i] = e.clone()
	}
	return c
}
