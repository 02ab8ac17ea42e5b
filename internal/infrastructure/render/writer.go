// Package render writes normalized reports and analysis results to the
// terminal, as aligned text tables or indented JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/felixgeelhaar/covpipe/internal/application"
	"github.com/felixgeelhaar/covpipe/internal/domain"
)

type Writer struct{}

var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04")).Bold(true)
	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
)

func (Writer) WriteReport(w io.Writer, report domain.Report, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		return writeJSON(w, report)
	case application.OutputText, "":
		return writeReportText(w, report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (Writer) WriteTrend(w io.Writer, trend domain.TrendResult, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		return writeJSON(w, trend)
	case application.OutputText, "":
		return writeTrendText(w, trend)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (Writer) WriteSummary(w io.Writer, summary domain.SummaryResult, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		return writeJSON(w, summary)
	case application.OutputText, "":
		return writeSummaryText(w, summary)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (Writer) WriteDiff(w io.Writer, diff domain.ReportDiff, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		return writeJSON(w, diff)
	case application.OutputText, "":
		return writeDiffText(w, diff)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (Writer) WriteGaps(w io.Writer, gaps []application.FileGaps, format application.OutputFormat) error {
	switch format {
	case application.OutputJSON:
		payload := struct {
			Files []application.FileGaps `json:"files"`
		}{Files: gaps}
		return writeJSON(w, payload)
	case application.OutputText, "":
		return writeGapsText(w, gaps)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReportText(w io.Writer, report domain.Report) error {
	colorize := colorEnabled(w)

	overall := fmt.Sprintf("%.2f%%", report.Overall.Percent)
	if colorize {
		overall = percentStyle(report.Overall.Percent).Render(overall)
	}
	fmt.Fprintf(w, "Format: %s\n", report.Format)
	fmt.Fprintf(w, "Overall: %s (%d/%d lines)\n", overall, report.Overall.LinesCovered, report.Overall.LinesTotal)

	if len(report.Files) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "File\tCoverage\tLines")
	for _, f := range report.Files {
		pct := fmt.Sprintf("%.2f%%", f.Percent)
		if colorize {
			pct = percentStyle(f.Percent).Render(pct)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d/%d\n", f.Path, pct, f.LinesCovered, f.LinesTotal)
	}
	return tw.Flush()
}

func writeTrendText(w io.Writer, trend domain.TrendResult) error {
	if len(trend.Points) == 0 {
		fmt.Fprintf(w, "No coverage data recorded in the last %d days.\n", trend.PeriodDays)
		return nil
	}

	colorize := colorEnabled(w)
	direction := string(trend.Direction)
	if colorize {
		switch trend.Direction {
		case domain.TrendIncreasing:
			direction = goodStyle.Render(direction)
		case domain.TrendDecreasing:
			direction = badStyle.Render(direction)
		default:
			direction = warnStyle.Render(direction)
		}
	}
	fmt.Fprintf(w, "Trend over %d days: %s\n\n", trend.PeriodDays, direction)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "Date\tCoverage\tCommit\tBranch")
	for _, p := range trend.Points {
		commit := p.Commit
		if commit == "" {
			commit = "-"
		}
		branch := p.Branch
		if branch == "" {
			branch = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%.2f%%\t%s\t%s\n", p.Date, p.Percent, commit, branch)
	}
	return tw.Flush()
}

func writeSummaryText(w io.Writer, summary domain.SummaryResult) error {
	if !summary.HasCoverage {
		fmt.Fprintln(w, "No coverage data recorded yet.")
		return nil
	}

	colorize := colorEnabled(w)
	latest := summary.Latest

	pct := fmt.Sprintf("%.2f%%", latest.Percent)
	if colorize {
		pct = percentStyle(latest.Percent).Render(pct)
	}
	fmt.Fprintf(w, "Coverage: %s (%d/%d lines)\n", pct, latest.LinesCovered, latest.LinesTotal)
	if latest.Commit != "" {
		fmt.Fprintf(w, "Commit: %s", latest.Commit)
		if latest.Branch != "" {
			fmt.Fprintf(w, " (%s)", latest.Branch)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Recorded: %s\n", latest.CreatedAt.Format("2006-01-02 15:04"))

	if summary.WeeklyChange != 0 {
		change := fmt.Sprintf("%+.2f%%", summary.WeeklyChange)
		if colorize {
			if summary.WeeklyChange > 0 {
				change = upStyle.Render(change)
			} else {
				change = downStyle.Render(change)
			}
		}
		fmt.Fprintf(w, "Change (7d): %s\n", change)
	}

	fmt.Fprintf(w, "\nFiles: %d across %d snapshots\n", summary.FileCount, summary.Snapshots)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "  excellent (>=90%%)\t%d\n", summary.Distribution.Excellent)
	_, _ = fmt.Fprintf(tw, "  good (80-89%%)\t%d\n", summary.Distribution.Good)
	_, _ = fmt.Fprintf(tw, "  fair (60-79%%)\t%d\n", summary.Distribution.Fair)
	_, _ = fmt.Fprintf(tw, "  poor (<60%%)\t%d\n", summary.Distribution.Poor)
	return tw.Flush()
}

func writeDiffText(w io.Writer, diff domain.ReportDiff) error {
	colorize := colorEnabled(w)

	overall := fmt.Sprintf("%+.2f%%", diff.Overall.Percent)
	if colorize {
		if diff.Overall.Percent > 0 {
			overall = upStyle.Render(overall)
		} else if diff.Overall.Percent < 0 {
			overall = downStyle.Render(overall)
		}
	}
	fmt.Fprintf(w, "Overall: %s (%+d/%+d lines)\n", overall, diff.Overall.LinesCovered, diff.Overall.LinesTotal)

	if len(diff.Files) == 0 {
		fmt.Fprintln(w, "No file changes.")
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "File\tStatus\tDelta\tBefore\tAfter")
	for _, f := range diff.Files {
		delta := fmt.Sprintf("%+.2f%%", f.PercentDelta)
		if colorize {
			if f.PercentDelta > 0 {
				delta = upStyle.Render(delta)
			} else if f.PercentDelta < 0 {
				delta = downStyle.Render(delta)
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f%%\t%.2f%%\n", f.Path, f.Status, delta, f.Before, f.After)
	}
	return tw.Flush()
}

func writeGapsText(w io.Writer, gaps []application.FileGaps) error {
	if len(gaps) == 0 {
		fmt.Fprintln(w, "No line-level coverage data available.")
		return nil
	}

	colorize := colorEnabled(w)
	for i, fg := range gaps {
		if i > 0 {
			fmt.Fprintln(w)
		}
		pct := fmt.Sprintf("%.2f%%", fg.Percent)
		if colorize {
			pct = percentStyle(fg.Percent).Render(pct)
		}
		fmt.Fprintf(w, "%s (%s)\n", fg.Path, pct)
		if len(fg.Gaps) == 0 {
			fmt.Fprintln(w, "  no uncovered lines")
			continue
		}
		for _, g := range fg.Gaps {
			if g.Start == g.End {
				fmt.Fprintf(w, "  line %d\n", g.Start)
			} else {
				fmt.Fprintf(w, "  lines %d-%d\n", g.Start, g.End)
			}
		}
	}
	return nil
}

func percentStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return goodStyle
	case pct >= 60:
		return warnStyle
	default:
		return badStyle
	}
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
