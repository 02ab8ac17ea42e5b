package application

import (
	"context"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// OutputFormat selects how CLI results are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config represents validated, application-ready configuration.
type Config struct {
	History HistoryConfig
	Trend   TrendConfig
}

// HistoryConfig configures snapshot persistence.
type HistoryConfig struct {
	Path       string // snapshot store location
	MaxEntries int    // retention limit (0 = store default)
}

// TrendConfig configures trend analysis defaults.
type TrendConfig struct {
	Days int // default analysis window in days
}

// SnapshotStore persists the historical series of canonical reports for a
// project. The core only ever reads the series it is handed; storage
// strategy is the store's concern.
type SnapshotStore interface {
	Load() (domain.Series, error)
	Append(snapshot domain.Snapshot) error
}

// FileWatcher provides file change notifications for watch mode.
type FileWatcher interface {
	WatchDir(root string) error
	Events(ctx context.Context) <-chan struct{}
	Close() error
}

// NormalizeOptions configures a single normalization run.
type NormalizeOptions struct {
	Path       string // coverage report file to ingest
	FormatHint string // filename hint; defaults to the file's base name
}

// RecordOptions configures recording a normalized report into the store.
type RecordOptions struct {
	Path   string
	Commit string
	Branch string
}

// TrendOptions configures trend analysis.
type TrendOptions struct {
	Days int // analysis window; 0 falls back to the configured default
}

// DiffOptions configures a comparison between two coverage reports.
type DiffOptions struct {
	BasePath string
	HeadPath string
}

// GapsOptions configures coverage-gap detection.
type GapsOptions struct {
	Path string // coverage report file
	File string // restrict output to one source file path (optional)
}

// FileGaps is the gap analysis of a single source file.
type FileGaps struct {
	Path      string       `json:"path"`
	Percent   float64      `json:"coveragePercentage"`
	Uncovered []int        `json:"uncoveredLines,omitempty"`
	Gaps      []domain.Gap `json:"coverageGaps,omitempty"`
}

// WatchOptions configures watch mode.
type WatchOptions struct {
	Path string // coverage report file to re-normalize on change
}

// WatchCallback receives the result of each watch-triggered normalization.
type WatchCallback func(report domain.Report, err error)
