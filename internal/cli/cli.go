// Package cli implements the covpipe command line interface.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/covpipe/internal/application"
	"github.com/felixgeelhaar/covpipe/internal/domain"
	"github.com/felixgeelhaar/covpipe/internal/infrastructure/config"
	"github.com/felixgeelhaar/covpipe/internal/infrastructure/render"
	"github.com/felixgeelhaar/covpipe/internal/infrastructure/store"
	"github.com/felixgeelhaar/covpipe/internal/infrastructure/watcher"
	"github.com/felixgeelhaar/covpipe/internal/normalize"
)

type Service interface {
	Normalize(ctx context.Context, opts application.NormalizeOptions) (domain.Report, error)
	Record(ctx context.Context, opts application.RecordOptions, store application.SnapshotStore) (domain.Snapshot, error)
	Trend(ctx context.Context, opts application.TrendOptions, store application.SnapshotStore) (domain.TrendResult, error)
	Summary(ctx context.Context, store application.SnapshotStore) (domain.SummaryResult, error)
	Diff(ctx context.Context, opts application.DiffOptions) (domain.ReportDiff, error)
	Gaps(ctx context.Context, opts application.GapsOptions) ([]application.FileGaps, error)
	Watch(ctx context.Context, opts application.WatchOptions, watcher application.FileWatcher, callback application.WatchCallback) error
}

func Run(args []string, stdout, stderr io.Writer, svc Service) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	ctx := context.Background()
	writer := render.Writer{}

	switch args[1] {
	case "normalize":
		fs := flag.NewFlagSet("normalize", flag.ExitOnError)
		output := outputFlags(fs)
		hint := fs.String("format-hint", "", "Filename hint for format detection (defaults to the file name)")
		_ = fs.Parse(args[2:])
		path, ok := singleFileArg(fs, stderr)
		if !ok {
			return 2
		}
		report, err := svc.Normalize(ctx, application.NormalizeOptions{Path: path, FormatHint: *hint})
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		return exitCode(writer.WriteReport(stdout, report, *output), 3, stderr)
	case "record":
		fs := flag.NewFlagSet("record", flag.ExitOnError)
		configPath := fs.String("config", config.DefaultPath, "Config file path")
		historyPath := fs.String("history", "", "Snapshot history file path")
		commit := fs.String("commit", "", "Git commit SHA (optional)")
		branch := fs.String("branch", "", "Git branch name (optional)")
		_ = fs.Parse(args[2:])
		path, ok := singleFileArg(fs, stderr)
		if !ok {
			return 2
		}
		st, err := buildStore(*configPath, *historyPath)
		if err != nil {
			return exitCode(err, 2, stderr)
		}
		snapshot, err := svc.Record(ctx, application.RecordOptions{
			Path:   path,
			Commit: *commit,
			Branch: *branch,
		}, st)
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		fmt.Fprintf(stdout, "Recorded %.2f%% coverage (%d files)\n",
			snapshot.Report.Overall.Percent, len(snapshot.Report.Files))
		return 0
	case "trend":
		fs := flag.NewFlagSet("trend", flag.ExitOnError)
		configPath := fs.String("config", config.DefaultPath, "Config file path")
		historyPath := fs.String("history", "", "Snapshot history file path")
		days := fs.Int("days", 0, "Analysis window in days (defaults to the configured window)")
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])
		st, err := buildStore(*configPath, *historyPath)
		if err != nil {
			return exitCode(err, 2, stderr)
		}
		windowDays := *days
		if windowDays <= 0 {
			windowDays = configuredTrendDays(*configPath)
		}
		result, err := svc.Trend(ctx, application.TrendOptions{Days: windowDays}, st)
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		return exitCode(writer.WriteTrend(stdout, result, *output), 3, stderr)
	case "summary":
		fs := flag.NewFlagSet("summary", flag.ExitOnError)
		configPath := fs.String("config", config.DefaultPath, "Config file path")
		historyPath := fs.String("history", "", "Snapshot history file path")
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])
		st, err := buildStore(*configPath, *historyPath)
		if err != nil {
			return exitCode(err, 2, stderr)
		}
		result, err := svc.Summary(ctx, st)
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		return exitCode(writer.WriteSummary(stdout, result, *output), 3, stderr)
	case "diff":
		fs := flag.NewFlagSet("diff", flag.ExitOnError)
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])
		if fs.NArg() != 2 {
			fmt.Fprintln(stderr, "usage: covpipe diff [flags] <base-report> <head-report>")
			return 2
		}
		result, err := svc.Diff(ctx, application.DiffOptions{
			BasePath: fs.Arg(0),
			HeadPath: fs.Arg(1),
		})
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		return exitCode(writer.WriteDiff(stdout, result, *output), 3, stderr)
	case "gaps":
		fs := flag.NewFlagSet("gaps", flag.ExitOnError)
		output := outputFlags(fs)
		file := fs.String("file", "", "Restrict output to one source file path")
		_ = fs.Parse(args[2:])
		path, ok := singleFileArg(fs, stderr)
		if !ok {
			return 2
		}
		result, err := svc.Gaps(ctx, application.GapsOptions{Path: path, File: *file})
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		return exitCode(writer.WriteGaps(stdout, result, *output), 3, stderr)
	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		output := outputFlags(fs)
		_ = fs.Parse(args[2:])
		path, ok := singleFileArg(fs, stderr)
		if !ok {
			return 2
		}
		return runWatch(ctx, stdout, stderr, svc, path, *output)
	case "version":
		fmt.Fprintf(stdout, "covpipe %s (commit %s, built %s)\n", Version, Commit, Date)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

// BuildService wires the production normalization pipeline.
func BuildService() *application.Service {
	return application.NewService(normalize.New())
}

func runWatch(ctx context.Context, stdout, stderr io.Writer, svc Service, path string, output application.OutputFormat) int {
	w, err := watcher.New()
	if err != nil {
		fmt.Fprintf(stderr, "failed to create watcher: %v\n", err)
		return 3
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(stdout, "\nStopping watch mode...")
		cancel()
	}()

	fmt.Fprintln(stdout, "Watching for report changes... (Ctrl+C to stop)")

	writer := render.Writer{}
	callback := func(report domain.Report, runErr error) {
		fmt.Fprintf(stdout, "\n--- %s ---\n", time.Now().Format("15:04:05"))
		if runErr != nil {
			fmt.Fprintf(stderr, "normalization failed: %v\n", runErr)
			return
		}
		if err := writer.WriteReport(stdout, report, output); err != nil {
			fmt.Fprintf(stderr, "render failed: %v\n", err)
		}
	}

	if err := svc.Watch(ctx, application.WatchOptions{Path: path}, w, callback); err != nil {
		if ctx.Err() == context.Canceled {
			return 0
		}
		fmt.Fprintf(stderr, "watch error: %v\n", err)
		return 3
	}
	return 0
}

// buildStore resolves the snapshot store from the config file, letting the
// -history flag override the configured path.
func buildStore(configPath, historyPath string) (*store.FileStore, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	path := cfg.History.Path
	if historyPath != "" {
		path = historyPath
	}
	return &store.FileStore{Path: path, MaxEntries: cfg.History.MaxEntries}, nil
}

func configuredTrendDays(configPath string) int {
	cfg, err := loadConfig(configPath)
	if err != nil || cfg.Trend.Days <= 0 {
		return application.DefaultTrendDays
	}
	return cfg.Trend.Days
}

func loadConfig(path string) (application.Config, error) {
	loader := config.Loader{}
	exists, err := loader.Exists(path)
	if err != nil {
		return application.Config{}, err
	}
	if !exists {
		return config.Default(), nil
	}
	return loader.Load(path)
}

func outputFlags(fs *flag.FlagSet) *application.OutputFormat {
	output := application.OutputText
	fs.Var((*outputValue)(&output), "output", "Output format: text|json")
	fs.Var((*outputValue)(&output), "o", "Output format: text|json")
	return &output
}

type outputValue application.OutputFormat

func (o *outputValue) String() string { return string(*o) }

func (o *outputValue) Set(value string) error {
	switch value {
	case string(application.OutputText), string(application.OutputJSON):
		*o = outputValue(value)
		return nil
	default:
		return fmt.Errorf("invalid output format: %s", value)
	}
}

func singleFileArg(fs *flag.FlagSet, stderr io.Writer) (string, bool) {
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: covpipe %s [flags] <report-file>\n", fs.Name())
		return "", false
	}
	return fs.Arg(0), true
}

func exitCode(err error, code int, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, err)
	return code
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `covpipe <command>

Commands:
  normalize  Convert a coverage report to the canonical model
  record     Normalize a report and append it to the snapshot history
  trend      Show the coverage trajectory over time
  summary    Show the latest coverage with its file distribution
  diff       Compare two coverage reports
  gaps       Show uncovered line ranges per file
  watch      Re-normalize a report whenever it changes
  version    Print version information`)
}
