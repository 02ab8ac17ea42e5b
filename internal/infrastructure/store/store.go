// Package store provides JSON file-based persistence for snapshot series.
// It is the local adapter behind the application's SnapshotStore port; the
// normalization core never depends on it.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// DefaultMaxEntries is the default number of snapshots to keep.
const DefaultMaxEntries = 100

// FileStore persists a snapshot series as an indented JSON file.
type FileStore struct {
	Path       string
	MaxEntries int
}

// Note: fileLock and acquireLock/release are defined in platform-specific
// files (lock_unix.go, lock_windows.go).

// Load reads the series from the JSON file. A missing file is an empty
// series, not an error.
func (s *FileStore) Load() (domain.Series, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Series{}, nil
		}
		return domain.Series{}, err
	}

	var series domain.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return domain.Series{}, err
	}

	return series, nil
}

// Save writes the series to the JSON file, creating parent directories as
// needed.
func (s *FileStore) Save(series domain.Series) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.Path, data, 0o600)
}

// Append adds a snapshot to the series and saves it, trimming the oldest
// entries beyond the retention limit. A file lock serializes concurrent
// appends from separate processes.
func (s *FileStore) Append(snapshot domain.Snapshot) error {
	lock, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer lock.release()

	series, err := s.Load()
	if err != nil {
		return err
	}

	series.Snapshots = append(series.Snapshots, snapshot)

	max := s.MaxEntries
	if max == 0 {
		max = DefaultMaxEntries
	}
	if len(series.Snapshots) > max {
		series.Snapshots = series.Snapshots[len(series.Snapshots)-max:]
	}

	return s.Save(series)
}
