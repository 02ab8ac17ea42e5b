package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/covpipe/internal/application"
	"github.com/felixgeelhaar/covpipe/internal/domain"
)

type fakeService struct {
	report        domain.Report
	normalizeErr  error
	snapshot      domain.Snapshot
	recordErr     error
	recordedStore application.SnapshotStore
	trendResult   domain.TrendResult
	trendErr      error
	summaryResult domain.SummaryResult
	summaryErr    error
	diffResult    domain.ReportDiff
	diffErr       error
	gapsResult    []application.FileGaps
	gapsErr       error
}

func (f *fakeService) Normalize(_ context.Context, _ application.NormalizeOptions) (domain.Report, error) {
	if f.normalizeErr != nil {
		return domain.Report{}, f.normalizeErr
	}
	return f.report, nil
}

func (f *fakeService) Record(_ context.Context, _ application.RecordOptions, store application.SnapshotStore) (domain.Snapshot, error) {
	f.recordedStore = store
	if f.recordErr != nil {
		return domain.Snapshot{}, f.recordErr
	}
	return f.snapshot, nil
}

func (f *fakeService) Trend(_ context.Context, _ application.TrendOptions, _ application.SnapshotStore) (domain.TrendResult, error) {
	if f.trendErr != nil {
		return domain.TrendResult{}, f.trendErr
	}
	return f.trendResult, nil
}

func (f *fakeService) Summary(_ context.Context, _ application.SnapshotStore) (domain.SummaryResult, error) {
	if f.summaryErr != nil {
		return domain.SummaryResult{}, f.summaryErr
	}
	return f.summaryResult, nil
}

func (f *fakeService) Diff(_ context.Context, _ application.DiffOptions) (domain.ReportDiff, error) {
	if f.diffErr != nil {
		return domain.ReportDiff{}, f.diffErr
	}
	return f.diffResult, nil
}

func (f *fakeService) Gaps(_ context.Context, _ application.GapsOptions) ([]application.FileGaps, error) {
	if f.gapsErr != nil {
		return nil, f.gapsErr
	}
	return f.gapsResult, nil
}

func (f *fakeService) Watch(_ context.Context, _ application.WatchOptions, _ application.FileWatcher, _ application.WatchCallback) error {
	return nil
}

func TestOutputValueSet(t *testing.T) {
	val := outputValue(application.OutputText)
	if err := val.Set("json"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if string(val) != "json" {
		t.Fatalf("expected json")
	}
	if err := val.Set("bad"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"covpipe"}, &out, &out, &fakeService{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunUnknown(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"covpipe", "nope"}, &out, &out, &fakeService{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunNormalize(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := &fakeService{report: domain.Report{
		Format:  domain.FormatLCOV,
		Overall: domain.Metrics{LinesCovered: 1, LinesTotal: 2, Percent: 50.0},
	}}
	code := Run([]string{"covpipe", "normalize", "coverage.info"}, &out, &errOut, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "Format: lcov") {
		t.Fatalf("expected report output, got %q", out.String())
	}
}

func TestRunNormalizeMissingArg(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"covpipe", "normalize"}, &out, &out, &fakeService{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunNormalizeError(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := &fakeService{normalizeErr: errors.New("bad report")}
	code := Run([]string{"covpipe", "normalize", "coverage.info"}, &out, &errOut, svc)
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if !strings.Contains(errOut.String(), "bad report") {
		t.Fatalf("expected error on stderr, got %q", errOut.String())
	}
}

func TestRunRecord(t *testing.T) {
	var out, errOut bytes.Buffer
	history := filepath.Join(t.TempDir(), "snapshots.json")
	svc := &fakeService{snapshot: domain.Snapshot{
		Report: domain.Report{Overall: domain.Metrics{Percent: 80.0}},
	}}
	code := Run([]string{"covpipe", "record", "-history", history, "coverage.info"}, &out, &errOut, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if svc.recordedStore == nil {
		t.Fatal("expected a store to be passed to Record")
	}
	if !strings.Contains(out.String(), "80.00%") {
		t.Fatalf("expected confirmation, got %q", out.String())
	}
}

func TestRunTrendJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := &fakeService{trendResult: domain.TrendResult{
		Direction:  domain.TrendStable,
		PeriodDays: 30,
	}}
	code := Run([]string{"covpipe", "trend", "-o", "json"}, &out, &errOut, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "\"trendDirection\": \"stable\"") {
		t.Fatalf("expected JSON trend, got %q", out.String())
	}
}

func TestRunSummary(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := &fakeService{summaryResult: domain.SummaryResult{}}
	code := Run([]string{"covpipe", "summary"}, &out, &errOut, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "No coverage data") {
		t.Fatalf("expected empty summary message, got %q", out.String())
	}
}

func TestRunDiffArgCount(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"covpipe", "diff", "base.info"}, &out, &out, &fakeService{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunDiff(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := &fakeService{diffResult: domain.ReportDiff{
		Overall: domain.OverallChange{Percent: 1.25},
	}}
	code := Run([]string{"covpipe", "diff", "base.info", "head.info"}, &out, &errOut, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "+1.25%") {
		t.Fatalf("expected overall delta, got %q", out.String())
	}
}

func TestRunGaps(t *testing.T) {
	var out, errOut bytes.Buffer
	svc := &fakeService{gapsResult: []application.FileGaps{
		{Path: "a.py", Percent: 50.0, Gaps: []domain.Gap{{Start: 1, End: 2}}},
	}}
	code := Run([]string{"covpipe", "gaps", "coverage.info"}, &out, &errOut, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "lines 1-2") {
		t.Fatalf("expected gap ranges, got %q", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"covpipe", "version"}, &out, &out, &fakeService{})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "covpipe") {
		t.Fatalf("expected version line, got %q", out.String())
	}
}
