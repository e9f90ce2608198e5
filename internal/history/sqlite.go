package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/gymtrack/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS workouts (
	position   INTEGER PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS exercises (
	workout_pos        INTEGER NOT NULL,
	position           INTEGER NOT NULL,
	id                 TEXT NOT NULL,
	kind               TEXT NOT NULL,
	name               TEXT NOT NULL,
	duration_minutes   INTEGER NOT NULL,
	distance_km        REAL NOT NULL DEFAULT 0,
	estimated_calories INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (workout_pos, position)
);
CREATE TABLE IF NOT EXISTS sets (
	workout_pos  INTEGER NOT NULL,
	exercise_pos INTEGER NOT NULL,
	position     INTEGER NOT NULL,
	reps         INTEGER NOT NULL,
	load_kg      REAL NOT NULL,
	PRIMARY KEY (workout_pos, exercise_pos, position)
)`

// SQLiteBackend keeps the history in a SQLite database. Each Save rewrites all
// rows inside one transaction, so the database holds either the previous or
// the new history.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLiteBackend opens (or creates) the database at path.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history tables: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Save replaces every stored workout with records.
func (b *SQLiteBackend) Save(ctx context.Context, records []models.WorkoutRecord) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"sets", "exercises", "workouts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for wi, w := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (position, title, created_at) VALUES (?, ?, ?)`,
			wi, w.Title, w.CreatedAt.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("inserting workout %d: %w", wi, err)
		}
		for ei, e := range w.Exercises {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO exercises (workout_pos, position, id, kind, name, duration_minutes, distance_km, estimated_calories)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				wi, ei, e.ID, string(e.Kind), e.Name, e.DurationMinutes, e.DistanceKm, e.EstimatedCalories,
			); err != nil {
				return fmt.Errorf("inserting exercise %d of workout %d: %w", ei, wi, err)
			}
			for si, s := range e.Sets {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO sets (workout_pos, exercise_pos, position, reps, load_kg) VALUES (?, ?, ?, ?, ?)`,
					wi, ei, si, s.Reps, s.LoadKg,
				); err != nil {
					return fmt.Errorf("inserting set %d of exercise %d: %w", si, ei, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing history: %w", err)
	}
	return nil
}

// Load reads all workouts in stored order. An empty database is an empty history.
func (b *SQLiteBackend) Load(ctx context.Context) ([]models.WorkoutRecord, error) {
	var records []models.WorkoutRecord

	rows, err := b.db.QueryContext(ctx, `SELECT title, created_at FROM workouts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	for rows.Next() {
		var w models.WorkoutRecord
		var created string
		if err := rows.Scan(&w.Title, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("parsing workout time %q: %w", created, err)
		}
		records = append(records, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := b.loadExercises(ctx, records); err != nil {
		return nil, err
	}
	if err := b.loadSets(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (b *SQLiteBackend) loadExercises(ctx context.Context, records []models.WorkoutRecord) error {
	rows, err := b.db.QueryContext(ctx,
		`SELECT workout_pos, id, kind, name, duration_minutes, distance_km, estimated_calories
		 FROM exercises ORDER BY workout_pos, position`)
	if err != nil {
		return fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wi int
		var e models.ExerciseRecord
		var kind string
		if err := rows.Scan(&wi, &e.ID, &kind, &e.Name, &e.DurationMinutes, &e.DistanceKm, &e.EstimatedCalories); err != nil {
			return fmt.Errorf("scanning exercise: %w", err)
		}
		if wi < 0 || wi >= len(records) {
			return fmt.Errorf("exercise %s references missing workout %d", e.ID, wi)
		}
		e.Kind = models.Kind(kind)
		records[wi].Exercises = append(records[wi].Exercises, e)
	}
	return rows.Err()
}

func (b *SQLiteBackend) loadSets(ctx context.Context, records []models.WorkoutRecord) error {
	rows, err := b.db.QueryContext(ctx,
		`SELECT workout_pos, exercise_pos, reps, load_kg
		 FROM sets ORDER BY workout_pos, exercise_pos, position`)
	if err != nil {
		return fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wi, ei int
		var s models.SetRecord
		if err := rows.Scan(&wi, &ei, &s.Reps, &s.LoadKg); err != nil {
			return fmt.Errorf("scanning set: %w", err)
		}
		if wi < 0 || wi >= len(records) || ei < 0 || ei >= len(records[wi].Exercises) {
			return fmt.Errorf("set references missing exercise %d/%d", wi, ei)
		}
		ex := &records[wi].Exercises[ei]
		ex.Sets = append(ex.Sets, s)
	}
	return rows.Err()
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
