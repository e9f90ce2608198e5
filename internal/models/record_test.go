package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestRecordRoundTrip verifies a workout rebuilt from its record renders and
// records identically, including exercise IDs.
func TestRecordRoundTrip(t *testing.T) {
	w := newTestWorkout(t)
	mustLog(t, w, strength("Squat", 5, 100))
	mustLog(t, w, strength("squat", 3, 110.25))
	mustLog(t, w, cardio("Run", 5.5, 320))

	rec := w.Record()
	back, err := WorkoutFromRecord(rec)
	if err != nil {
		t.Fatalf("WorkoutFromRecord: %v", err)
	}
	if diff := cmp.Diff(rec, back.Record()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if back.SummaryReport() != w.SummaryReport() {
		t.Error("summary differs after round trip")
	}
}

// TestWorkoutFromRecordRejectsInvalid verifies stored data is held to the
// same invariants as live data.
func TestWorkoutFromRecordRejectsInvalid(t *testing.T) {
	valid := ExerciseRecord{
		ID:              "2f1c4a8e-3b6d-4e57-9a0b-6c2d8e9f1a23",
		Kind:            KindStrength,
		Name:            "Squat",
		DurationMinutes: 10,
		Sets:            []SetRecord{{Reps: 5, LoadKg: 100}},
	}
	cases := []struct {
		name   string
		mutate func(*WorkoutRecord)
	}{
		{"blank title", func(r *WorkoutRecord) { r.Title = "" }},
		{"bad id", func(r *WorkoutRecord) { r.Exercises[0].ID = "nope" }},
		{"no sets", func(r *WorkoutRecord) { r.Exercises[0].Sets = nil }},
		{"bad set", func(r *WorkoutRecord) { r.Exercises[0].Sets[0].Reps = 0 }},
		{"unknown kind", func(r *WorkoutRecord) { r.Exercises[0].Kind = "swim" }},
		{"cardio without distance", func(r *WorkoutRecord) {
			r.Exercises[0] = ExerciseRecord{ID: valid.ID, Kind: KindCardio, Name: "Run", DurationMinutes: 5, EstimatedCalories: 10}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := valid
			ex.Sets = append([]SetRecord(nil), valid.Sets...)
			rec := WorkoutRecord{Title: "Leg Day", CreatedAt: testStart, Exercises: []ExerciseRecord{ex}}
			tc.mutate(&rec)
			if _, err := WorkoutFromRecord(rec); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
