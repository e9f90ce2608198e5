// Package tracker runs the single active workout session on top of the
// history store. It is the entry point the HTTP, MCP and terminal front ends
// share.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/gymtrack/internal/history"
	"github.com/claude/gymtrack/internal/models"
)

// Tracker owns the active workout. All operations are serialized, so the
// front ends may call it from concurrent request handlers.
type Tracker struct {
	mu      sync.Mutex
	current *models.Workout
	history *history.Store
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New starts a tracker with a fresh workout.
func New(store *history.Store, log *slog.Logger, opts ...Option) *Tracker {
	t := &Tracker{history: store, now: time.Now, log: log}
	for _, o := range opts {
		o(t)
	}
	t.current = t.freshWorkout()
	return t
}

// DefaultTitle is the title given to each new session, e.g. "New Workout - 18:30".
func DefaultTitle(at time.Time) string {
	return "New Workout - " + at.Format("15:04")
}

func (t *Tracker) freshWorkout() *models.Workout {
	at := t.now()
	w, err := models.NewWorkout(DefaultTitle(at), at)
	if err != nil {
		// DefaultTitle is never blank.
		panic(err)
	}
	return w
}

// Restore loads the saved history. On failure it logs, keeps an empty history
// and returns the error so callers can report it without aborting startup.
func (t *Tracker) Restore(ctx context.Context) error {
	if _, err := t.history.Restore(ctx); err != nil {
		t.log.Warn("history restore failed, continuing with empty history", "error", err)
		return err
	}
	return nil
}

// LogExercise records an exercise in the active workout.
func (t *Tracker) LogExercise(entry models.LogEntry) (models.LogResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	res, err := t.current.LogExercise(entry)
	if err != nil {
		return res, err
	}
	t.log.Info("exercise logged",
		"name", res.Name,
		"kind", res.Kind,
		"merged", res.Merged,
		"sets", res.SetCount,
	)
	return res, nil
}

// RemoveLastLoggedItem undoes the most recent set of the last exercise.
func (t *Tracker) RemoveLastLoggedItem() (models.RemoveResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	res, err := t.current.RemoveLastLoggedItem()
	if err != nil {
		return res, err
	}
	t.log.Info("logged item removed", "exercise", res.ExerciseName, "outcome", res.Outcome)
	return res, nil
}

// SetTitle renames the active workout.
func (t *Tracker) SetTitle(title string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.SetTitle(title)
}

// Current returns a copy of the active workout.
func (t *Tracker) Current() *models.Workout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Clone()
}

// SummaryReport renders the active workout.
func (t *Tracker) SummaryReport() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.SummaryReport()
}

// Save moves the active workout into history, persists the whole history and
// starts a new session. Empty workouts are refused. If persisting fails the
// active workout is kept so the save can be retried.
func (t *Tracker) Save(ctx context.Context) (*models.Workout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current.IsEmpty() {
		return nil, fmt.Errorf("%w: cannot save an empty workout", models.ErrEmptyCollection)
	}
	if err := t.history.Commit(ctx, t.current); err != nil {
		t.log.Error("saving workout failed", "title", t.current.Title(), "error", err)
		return nil, err
	}
	saved := t.current
	t.current = t.freshWorkout()
	t.log.Info("workout saved", "title", saved.Title(), "exercises", saved.Len(), "history", t.history.Len())
	return saved.Clone(), nil
}

// History returns copies of the saved workouts in order.
func (t *Tracker) History() []*models.Workout {
	return t.history.Workouts()
}

// HistoryReport renders every saved workout.
func (t *Tracker) HistoryReport() string {
	return t.history.FullReport()
}

// HistoryIndex returns one "Jan 02 - title" line per saved workout.
func (t *Tracker) HistoryIndex() []string {
	ws := t.history.Workouts()
	lines := make([]string, len(ws))
	for i, w := range ws {
		lines[i] = w.HistoryIndexLine()
	}
	return lines
}
