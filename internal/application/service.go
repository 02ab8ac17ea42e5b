// Package application wires the normalization pipeline, the snapshot
// store, and the analytics into the operations the CLI exposes.
package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/covpipe/internal/domain"
	"github.com/felixgeelhaar/covpipe/internal/normalize"
)

// Service implements the application operations. The pipeline is stateless;
// persistence goes through the SnapshotStore passed to each operation, so
// the CLI can point different commands at different history files.
type Service struct {
	Pipeline *normalize.Pipeline

	// Now is the clock used for snapshot timestamps and analytics windows.
	// Injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewService creates a Service with the default clock.
func NewService(pipeline *normalize.Pipeline) *Service {
	return &Service{
		Pipeline: pipeline,
		Now:      time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Normalize reads a coverage report file and converts it into the
// canonical model.
func (s *Service) Normalize(ctx context.Context, opts NormalizeOptions) (domain.Report, error) {
	content, err := os.ReadFile(opts.Path)
	if err != nil {
		return domain.Report{}, fmt.Errorf("read coverage file: %w", err)
	}

	hint := opts.FormatHint
	if hint == "" {
		hint = filepath.Base(opts.Path)
	}

	return s.Pipeline.Normalize(content, hint)
}

// Record normalizes a coverage report and appends it to the snapshot
// store together with its commit metadata.
func (s *Service) Record(ctx context.Context, opts RecordOptions, store SnapshotStore) (domain.Snapshot, error) {
	report, err := s.Normalize(ctx, NormalizeOptions{Path: opts.Path})
	if err != nil {
		return domain.Snapshot{}, err
	}

	snapshot := domain.Snapshot{
		Report:    report,
		Commit:    opts.Commit,
		Branch:    opts.Branch,
		CreatedAt: s.now(),
	}

	if err := store.Append(snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("append snapshot: %w", err)
	}

	return snapshot, nil
}
