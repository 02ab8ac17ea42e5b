package domain

import "time"

// TrendDirection indicates whether coverage is rising, falling, or stable
// over the analyzed window.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// trendBand is the minimum percentage-point movement between the first and
// last point before a trend counts as increasing or decreasing.
const trendBand = 1.0

// weeklyWindow is the lookback used for the summary's coverage change.
const weeklyWindow = 7 * 24 * time.Hour

// TrendPoint is one snapshot projected onto the trend timeline.
type TrendPoint struct {
	Date    string  `json:"date"`
	Percent float64 `json:"coverage"`
	Commit  string  `json:"commit"`
	Branch  string  `json:"branch"`
}

// TrendResult is the time-ordered coverage trajectory for one project.
type TrendResult struct {
	Points     []TrendPoint   `json:"trendData"`
	Direction  TrendDirection `json:"trendDirection"`
	PeriodDays int            `json:"periodDays"`
}

// AnalyzeTrend filters the series to snapshots recorded within the last
// windowDays relative to now and classifies the overall direction.
// Chronological order of the series is preserved. Fewer than two points
// always classify as stable.
func AnalyzeTrend(series Series, windowDays int, now time.Time) TrendResult {
	start := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	result := TrendResult{
		Direction:  TrendStable,
		PeriodDays: windowDays,
	}

	for _, snap := range series.Window(start, now) {
		result.Points = append(result.Points, TrendPoint{
			Date:    snap.CreatedAt.Format("2006-01-02"),
			Percent: snap.Report.Overall.Percent,
			Commit:  snap.ShortCommit(),
			Branch:  snap.Branch,
		})
	}

	if len(result.Points) >= 2 {
		first := result.Points[0].Percent
		last := result.Points[len(result.Points)-1].Percent
		switch {
		case last > first+trendBand:
			result.Direction = TrendIncreasing
		case last < first-trendBand:
			result.Direction = TrendDecreasing
		}
	}

	return result
}

// Distribution buckets a report's files by coverage quality.
type Distribution struct {
	Excellent int `json:"excellent"` // >= 90%
	Good      int `json:"good"`      // 80-89%
	Fair      int `json:"fair"`      // 60-79%
	Poor      int `json:"poor"`      // < 60%
}

// LatestInfo describes the newest snapshot in a summary.
type LatestInfo struct {
	Percent      float64   `json:"coveragePercentage"`
	LinesCovered int       `json:"linesCovered"`
	LinesTotal   int       `json:"linesTotal"`
	Commit       string    `json:"commit,omitempty"`
	Branch       string    `json:"branch,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SummaryResult is the project-level coverage summary.
type SummaryResult struct {
	HasCoverage  bool         `json:"hasCoverage"`
	Latest       *LatestInfo  `json:"latest,omitempty"`
	FileCount    int          `json:"fileCount"`
	Distribution Distribution `json:"coverageDistribution"`
	WeeklyChange float64      `json:"coverageChange"`
	Snapshots    int          `json:"totalReports"`
}

// Summarize builds a summary from the chronologically latest snapshot plus
// a 7-day coverage delta. An empty series yields HasCoverage == false.
func Summarize(series Series, now time.Time) SummaryResult {
	latest := series.Latest()
	if latest == nil {
		return SummaryResult{}
	}

	result := SummaryResult{
		HasCoverage: true,
		Latest: &LatestInfo{
			Percent:      latest.Report.Overall.Percent,
			LinesCovered: latest.Report.Overall.LinesCovered,
			LinesTotal:   latest.Report.Overall.LinesTotal,
			Commit:       latest.Commit,
			Branch:       latest.Branch,
			CreatedAt:    latest.CreatedAt,
		},
		FileCount: len(latest.Report.Files),
		Snapshots: len(series.Snapshots),
	}

	for _, f := range latest.Report.Files {
		switch {
		case f.Percent >= 90:
			result.Distribution.Excellent++
		case f.Percent >= 80:
			result.Distribution.Good++
		case f.Percent >= 60:
			result.Distribution.Fair++
		default:
			result.Distribution.Poor++
		}
	}

	recent := series.Window(now.Add(-weeklyWindow), now)
	if len(recent) >= 2 {
		first := recent[0].Report.Overall.Percent
		last := recent[len(recent)-1].Report.Overall.Percent
		result.WeeklyChange = Round2(last - first)
	}

	return result
}
