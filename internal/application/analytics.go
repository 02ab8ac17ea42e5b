package application

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// DefaultTrendDays is the analysis window used when none is configured.
const DefaultTrendDays = 30

// Trend computes the coverage trajectory over the requested window from
// the stored snapshot series.
func (s *Service) Trend(ctx context.Context, opts TrendOptions, store SnapshotStore) (domain.TrendResult, error) {
	series, err := store.Load()
	if err != nil {
		return domain.TrendResult{}, fmt.Errorf("load snapshot series: %w", err)
	}

	days := opts.Days
	if days <= 0 {
		days = DefaultTrendDays
	}

	return domain.AnalyzeTrend(series, days, s.now()), nil
}

// Summary builds the project coverage summary from the stored series.
func (s *Service) Summary(ctx context.Context, store SnapshotStore) (domain.SummaryResult, error) {
	series, err := store.Load()
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("load snapshot series: %w", err)
	}

	return domain.Summarize(series, s.now()), nil
}

// Diff normalizes two coverage report files and compares head against base.
func (s *Service) Diff(ctx context.Context, opts DiffOptions) (domain.ReportDiff, error) {
	base, err := s.Normalize(ctx, NormalizeOptions{Path: opts.BasePath})
	if err != nil {
		return domain.ReportDiff{}, fmt.Errorf("normalize base report: %w", err)
	}

	head, err := s.Normalize(ctx, NormalizeOptions{Path: opts.HeadPath})
	if err != nil {
		return domain.ReportDiff{}, fmt.Errorf("normalize head report: %w", err)
	}

	return domain.Diff(base, head), nil
}

// Gaps normalizes a coverage report and derives the uncovered-line ranges
// per file. With opts.File set, only that file is analyzed.
func (s *Service) Gaps(ctx context.Context, opts GapsOptions) ([]FileGaps, error) {
	report, err := s.Normalize(ctx, NormalizeOptions{Path: opts.Path})
	if err != nil {
		return nil, err
	}

	if opts.File != "" {
		for _, f := range report.Files {
			if f.Path == opts.File {
				return []FileGaps{fileGaps(f)}, nil
			}
		}
		return nil, fmt.Errorf("file %q not present in report", opts.File)
	}

	gaps := make([]FileGaps, 0, len(report.Files))
	for _, f := range report.Files {
		gaps = append(gaps, fileGaps(f))
	}
	return gaps, nil
}

func fileGaps(f domain.FileCoverage) FileGaps {
	return FileGaps{
		Path:      f.Path,
		Percent:   f.Percent,
		Uncovered: domain.UncoveredLines(f.LineHits),
		Gaps:      domain.Gaps(f.LineHits),
	}
}
