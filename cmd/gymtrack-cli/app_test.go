package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claude/gymtrack/internal/history"
	"github.com/claude/gymtrack/internal/tracker"
)

func runApp(t *testing.T, input string) (*tracker.Tracker, string) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := history.NewFileBackend(filepath.Join(t.TempDir(), "history.yaml"), history.YAMLCodec{})
	clock := func() time.Time { return time.Date(2026, 6, 9, 6, 45, 0, 0, time.UTC) }
	tr := tracker.New(history.NewStore(backend, log), log, tracker.WithClock(clock))

	var out bytes.Buffer
	if err := newApp(tr, strings.NewReader(input), &out).run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return tr, out.String()
}

// TestLogAndSave verifies a strength session typed at the menu ends up in
// history.
func TestLogAndSave(t *testing.T) {
	input := strings.Join([]string{
		"4", "Push Day",
		"1", "Bench", "10", "8", "60",
		"1", "bench", "12", "6", "70",
		"6",
		"8",
		"q",
	}, "\n") + "\n"
	tr, out := runApp(t, input)

	if !strings.Contains(out, "Added set 2 to Bench.") {
		t.Errorf("missing merge message in output:\n%s", out)
	}
	if !strings.Contains(out, `Saved "Push Day".`) {
		t.Errorf("missing save message in output:\n%s", out)
	}
	if !strings.Contains(out, "Jun 09 - Push Day") {
		t.Errorf("missing history index line in output:\n%s", out)
	}
	hist := tr.History()
	if len(hist) != 1 || hist[0].Exercises()[0].SetCount() != 2 {
		t.Fatalf("history = %d workouts", len(hist))
	}
	if !tr.Current().IsEmpty() {
		t.Error("active workout not reset after save")
	}
}

// TestNumericPromptsReask verifies invalid numbers are asked again instead of
// aborting the entry.
func TestNumericPromptsReask(t *testing.T) {
	input := strings.Join([]string{
		"2", "Run",
		"zero", "0", "30", // duration: two rejects
		"-1", "5.5", // distance
		"abc", "320", // calories
		"q",
	}, "\n") + "\n"
	tr, out := runApp(t, input)

	// Two rejected durations and one rejected calorie count.
	if got := strings.Count(out, "Enter a whole number of at least 1."); got != 3 {
		t.Errorf("integer prompts re-asked %d times, want 3", got)
	}
	if !strings.Contains(out, "Enter a number greater than 0.") {
		t.Errorf("distance was not re-asked:\n%s", out)
	}
	ex := tr.Current().Exercises()
	if len(ex) != 1 || ex[0].DurationMinutes() != 30 || ex[0].DistanceKm() != 5.5 || ex[0].EstimatedCalories() != 320 {
		t.Fatalf("logged exercises = %d", len(ex))
	}
	if !strings.Contains(out, `Unsaved workout "New Workout - 06:45" discarded`) {
		t.Errorf("quit did not warn about unsaved workout:\n%s", out)
	}
}

// TestErrorsAreShown verifies domain errors are printed and the loop goes on.
func TestErrorsAreShown(t *testing.T) {
	input := strings.Join([]string{
		"3", // nothing to remove
		"6", // nothing to save
		"x", // unknown option
		"9", "0", "180", "81",
		"q",
	}, "\n") + "\n"
	_, out := runApp(t, input)

	for _, want := range []string{"empty collection", `Unknown option "x".`, "Enter a number greater than 0.", "(Overweight)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestEOFEndsLoop verifies closed input ends the session mid-prompt without
// error.
func TestEOFEndsLoop(t *testing.T) {
	tr, _ := runApp(t, "1\nSquat\n10\n")
	if !tr.Current().IsEmpty() {
		t.Error("partial entry was logged")
	}
}
