package mcp

import (
	"context"

	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/tracker"
)

// DataSource abstracts the workout session for MCP tools. Both Local (in
// process) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	LogExercise(ctx context.Context, entry models.LogEntry) (models.LogResult, error)
	RemoveLastLoggedItem(ctx context.Context) (models.RemoveResult, error)
	SetTitle(ctx context.Context, title string) error
	CurrentWorkout(ctx context.Context) (models.WorkoutRecord, error)
	WorkoutReport(ctx context.Context) (string, error)
	SaveWorkout(ctx context.Context) (models.WorkoutRecord, error)
	History(ctx context.Context) ([]models.WorkoutRecord, error)
	HistoryReport(ctx context.Context) (string, error)
}

// Local serves a DataSource from a tracker in the same process.
type Local struct {
	Tracker *tracker.Tracker
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

func (l Local) LogExercise(_ context.Context, entry models.LogEntry) (models.LogResult, error) {
	return l.Tracker.LogExercise(entry)
}

func (l Local) RemoveLastLoggedItem(context.Context) (models.RemoveResult, error) {
	return l.Tracker.RemoveLastLoggedItem()
}

func (l Local) SetTitle(_ context.Context, title string) error {
	return l.Tracker.SetTitle(title)
}

func (l Local) CurrentWorkout(context.Context) (models.WorkoutRecord, error) {
	return l.Tracker.Current().Record(), nil
}

func (l Local) WorkoutReport(context.Context) (string, error) {
	return l.Tracker.SummaryReport(), nil
}

func (l Local) SaveWorkout(ctx context.Context) (models.WorkoutRecord, error) {
	w, err := l.Tracker.Save(ctx)
	if err != nil {
		return models.WorkoutRecord{}, err
	}
	return w.Record(), nil
}

func (l Local) History(context.Context) ([]models.WorkoutRecord, error) {
	ws := l.Tracker.History()
	out := make([]models.WorkoutRecord, len(ws))
	for i, w := range ws {
		out[i] = w.Record()
	}
	return out, nil
}

func (l Local) HistoryReport(context.Context) (string, error) {
	return l.Tracker.HistoryReport(), nil
}
