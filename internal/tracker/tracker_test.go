package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/claude/gymtrack/internal/history"
	"github.com/claude/gymtrack/internal/models"
)

var clock = func() time.Time { return time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC) }

func newTracker(t *testing.T, path string) *Tracker {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := history.NewStore(history.NewFileBackend(path, history.YAMLCodec{}), log)
	return New(store, log, WithClock(clock))
}

func squat(load float64) models.LogEntry {
	return models.LogEntry{Kind: models.KindStrength, Name: "Squat", DurationMinutes: 10, Reps: 10, LoadKg: load}
}

// TestNewUsesDefaultTitle verifies a new session is titled after its start time.
func TestNewUsesDefaultTitle(t *testing.T) {
	tr := newTracker(t, filepath.Join(t.TempDir(), "h.yaml"))
	if got := tr.Current().Title(); got != "New Workout - 18:30" {
		t.Errorf("title = %q", got)
	}
}

// TestSaveRefusesEmptyWorkout verifies nothing is written for an empty session.
func TestSaveRefusesEmptyWorkout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.yaml")
	tr := newTracker(t, path)
	if _, err := tr.Save(context.Background()); !errors.Is(err, models.ErrEmptyCollection) {
		t.Fatalf("err = %v, want ErrEmptyCollection", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("history file exists after refused save: %v", err)
	}
}

// TestSaveAndRestore verifies a saved session resets the active workout and
// that a new tracker on the same file sees the saved history.
func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "h.yaml")
	tr := newTracker(t, path)

	if err := tr.SetTitle("Legs"); err != nil {
		t.Fatal(err)
	}
	for _, load := range []float64{50, 60} {
		if _, err := tr.LogExercise(squat(load)); err != nil {
			t.Fatal(err)
		}
	}
	saved, err := tr.Save(ctx)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Title() != "Legs" {
		t.Errorf("saved title = %q", saved.Title())
	}
	if !tr.Current().IsEmpty() || tr.Current().Title() != "New Workout - 18:30" {
		t.Error("active workout not reset after save")
	}

	again := newTracker(t, path)
	if err := again.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	hist := again.History()
	if len(hist) != 1 || hist[0].Title() != "Legs" || hist[0].Exercises()[0].SetCount() != 2 {
		t.Fatalf("restored history = %d workouts", len(hist))
	}
	if got := again.HistoryIndex(); len(got) != 1 || got[0] != "May 01 - Legs" {
		t.Errorf("HistoryIndex() = %v", got)
	}
	if !strings.Contains(again.HistoryReport(), "Set 2: 10 reps x 60 kg") {
		t.Errorf("history report missing second set:\n%s", again.HistoryReport())
	}
}

// TestRestoreFailureKeepsEmptyHistory verifies a corrupt file is reported but
// leaves a usable tracker.
func TestRestoreFailureKeepsEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.yaml")
	if err := os.WriteFile(path, []byte("::: not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	tr := newTracker(t, path)
	if err := tr.Restore(context.Background()); !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if len(tr.History()) != 0 {
		t.Error("history not empty after failed restore")
	}
	if _, err := tr.LogExercise(squat(40)); err != nil {
		t.Errorf("tracker unusable after failed restore: %v", err)
	}
}

// TestSaveFailureKeepsSession verifies a failed persist leaves the active
// workout in place and the history unchanged.
func TestSaveFailureKeepsSession(t *testing.T) {
	dir := t.TempDir()
	// A directory where the history file should be makes the rename fail.
	path := filepath.Join(dir, "h.yaml")
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0o755); err != nil {
		t.Fatal(err)
	}
	tr := newTracker(t, path)
	if _, err := tr.LogExercise(squat(40)); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Save(context.Background()); !errors.Is(err, models.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if tr.Current().IsEmpty() {
		t.Error("active workout discarded after failed save")
	}
	if len(tr.History()) != 0 {
		t.Error("history kept a workout whose save failed")
	}
}

// TestConcurrentLogging verifies concurrent callers all land in the workout.
func TestConcurrentLogging(t *testing.T) {
	tr := newTracker(t, filepath.Join(t.TempDir(), "h.yaml"))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tr.LogExercise(squat(50)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	ex := tr.Current().Exercises()
	if len(ex) != 1 || ex[0].SetCount() != 20 {
		t.Errorf("exercises = %d, sets = %d; want 1 exercise with 20 sets", len(ex), ex[0].SetCount())
	}
}

// TestRemoveLastLoggedItemThroughTracker verifies removal results pass through.
func TestRemoveLastLoggedItemThroughTracker(t *testing.T) {
	tr := newTracker(t, filepath.Join(t.TempDir(), "h.yaml"))
	if _, err := tr.RemoveLastLoggedItem(); !errors.Is(err, models.ErrEmptyCollection) {
		t.Errorf("err = %v, want ErrEmptyCollection", err)
	}
	if _, err := tr.LogExercise(squat(50)); err != nil {
		t.Fatal(err)
	}
	res, err := tr.RemoveLastLoggedItem()
	if err != nil {
		t.Fatal(err)
	}
	if res.Removal != models.RemovedExercise {
		t.Errorf("removal = %v, want exercise removed", res.Removal)
	}
}
