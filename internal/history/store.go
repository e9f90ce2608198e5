// Package history holds the list of completed workouts and persists it as a
// whole. There is no partial update: every Persist writes the full list and
// every Restore replaces it.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/gymtrack/internal/models"
)

// Backend stores and loads the complete history. Load returns (nil, nil) when
// nothing has been stored yet.
type Backend interface {
	Save(ctx context.Context, records []models.WorkoutRecord) error
	Load(ctx context.Context) ([]models.WorkoutRecord, error)
	Close() error
}

// Compile-time checks.
var (
	_ Backend = (*FileBackend)(nil)
	_ Backend = (*SQLiteBackend)(nil)
)

// OpenBackend builds the backend named by kind ("file" or "sqlite").
// format selects the file codec and is ignored for sqlite.
func OpenBackend(kind, path, format string) (Backend, error) {
	switch kind {
	case "", "file":
		codec, err := CodecByName(format, path)
		if err != nil {
			return nil, err
		}
		return NewFileBackend(path, codec), nil
	case "sqlite":
		return OpenSQLiteBackend(path)
	}
	return nil, fmt.Errorf("unknown history backend %q", kind)
}

// Store is the in-memory history plus its backend. The mutex covers the whole
// append/persist cycle, since the full list is the unit of durability.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	workouts []*models.Workout
	log      *slog.Logger
}

// NewStore creates an empty store. Call Restore to load saved workouts.
func NewStore(backend Backend, log *slog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Append adds a copy of w to the end of the in-memory history. It does not persist.
func (s *Store) Append(w *models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = append(s.workouts, w.Clone())
}

// Persist writes the full in-memory history. Failures wrap models.ErrPersistence
// and leave previously stored data in place.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	records := make([]models.WorkoutRecord, 0, len(s.workouts))
	for _, w := range s.workouts {
		records = append(records, w.Record())
	}
	if err := s.backend.Save(ctx, records); err != nil {
		return fmt.Errorf("%w: saving history: %w", models.ErrPersistence, err)
	}
	s.log.Debug("history persisted", "workouts", len(records))
	return nil
}

// Commit appends w and persists in one step. If persisting fails the append is
// undone, so memory and storage stay in agreement.
func (s *Store) Commit(ctx context.Context, w *models.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workouts = append(s.workouts, w.Clone())
	if err := s.persistLocked(ctx); err != nil {
		s.workouts[len(s.workouts)-1] = nil
		s.workouts = s.workouts[:len(s.workouts)-1]
		return err
	}
	return nil
}

// Restore replaces the in-memory history with the stored one and returns a
// copy of it. No stored history yields an empty list. Unreadable or invalid
// data wraps models.ErrPersistence and leaves memory unchanged.
func (s *Store) Restore(ctx context.Context) ([]*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading history: %w", models.ErrPersistence, err)
	}

	workouts := make([]*models.Workout, 0, len(records))
	for i, rec := range records {
		w, err := models.WorkoutFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: workout %d: %w", models.ErrPersistence, i+1, err)
		}
		workouts = append(workouts, w)
	}
	s.workouts = workouts
	s.log.Info("history restored", "workouts", len(workouts))
	return cloneAll(workouts), nil
}

// Workouts returns copies of the stored workouts in order.
func (s *Store) Workouts() []*models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.workouts)
}

// Len returns the number of stored workouts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workouts)
}

// FullReport renders every stored workout in order.
func (s *Store) FullReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.HistoryReport(s.workouts)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func cloneAll(ws []*models.Workout) []*models.Workout {
	out := make([]*models.Workout, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}
