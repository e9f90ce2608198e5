package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/claude/gymtrack/internal/models"
)

// formatVersion is written into every history document. Readers reject
// documents from a newer version instead of silently dropping fields.
const formatVersion = 1

type document struct {
	Version  int                    `yaml:"version" cbor:"version"`
	Workouts []models.WorkoutRecord `yaml:"workouts" cbor:"workouts"`
}

// FileBackend keeps the whole history in a single file.
type FileBackend struct {
	path  string
	codec Codec
}

// NewFileBackend returns a backend writing path with codec.
func NewFileBackend(path string, codec Codec) *FileBackend {
	return &FileBackend{path: path, codec: codec}
}

// Path returns the history file location.
func (b *FileBackend) Path() string { return b.path }

// Save replaces the history file. The document is written to a temp file in
// the same directory, synced and renamed over the old file, so a crash leaves
// either the old or the new history on disk.
func (b *FileBackend) Save(ctx context.Context, records []models.WorkoutRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []models.WorkoutRecord{}
	}
	data, err := b.codec.Marshal(document{Version: formatVersion, Workouts: records})
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history data: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing history data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp history file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return fmt.Errorf("renaming history file to %s: %w", b.path, err)
	}

	success = true
	return nil
}

// Load reads the history file. A missing file is an empty history.
func (b *FileBackend) Load(ctx context.Context) ([]models.WorkoutRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var doc document
	if err := b.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s history: %w", b.codec.Name(), err)
	}
	switch {
	case doc.Version == 0:
		return nil, fmt.Errorf("history file %s has no version", b.path)
	case doc.Version > formatVersion:
		return nil, fmt.Errorf("history file version %d is newer than supported version %d", doc.Version, formatVersion)
	}
	return doc.Workouts, nil
}

// Close is a no-op; the file is only open during Save and Load.
func (b *FileBackend) Close() error { return nil }
