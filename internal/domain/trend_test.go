package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotAt(percent float64, age time.Duration, now time.Time) Snapshot {
	return Snapshot{
		Report:    Report{Overall: Metrics{Percent: percent}},
		Commit:    "0123456789abcdef",
		Branch:    "main",
		CreatedAt: now.Add(-age),
	}
}

func TestAnalyzeTrend_Increasing(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{
		snapshotAt(60.0, 48*time.Hour, now),
		snapshotAt(65.0, time.Hour, now),
	}}

	result := AnalyzeTrend(series, 30, now)

	require.Len(t, result.Points, 2)
	assert.Equal(t, TrendIncreasing, result.Direction)
	assert.Equal(t, 30, result.PeriodDays)
	assert.Equal(t, "0123456", result.Points[0].Commit[:7])
	assert.Equal(t, "main", result.Points[0].Branch)
}

func TestAnalyzeTrend_StableWithinBand(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{
		snapshotAt(60.0, 48*time.Hour, now),
		snapshotAt(60.5, time.Hour, now),
	}}

	result := AnalyzeTrend(series, 30, now)

	assert.Equal(t, TrendStable, result.Direction)
}

func TestAnalyzeTrend_Decreasing(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{
		snapshotAt(80.0, 48*time.Hour, now),
		snapshotAt(70.0, time.Hour, now),
	}}

	result := AnalyzeTrend(series, 30, now)

	assert.Equal(t, TrendDecreasing, result.Direction)
}

func TestAnalyzeTrend_SinglePointIsStable(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{snapshotAt(90.0, time.Hour, now)}}

	result := AnalyzeTrend(series, 30, now)

	require.Len(t, result.Points, 1)
	assert.Equal(t, TrendStable, result.Direction)
}

func TestAnalyzeTrend_FiltersOutsideWindow(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{
		snapshotAt(10.0, 90*24*time.Hour, now), // outside 30-day window
		snapshotAt(60.0, 5*24*time.Hour, now),
		snapshotAt(62.0, time.Hour, now),
	}}

	result := AnalyzeTrend(series, 30, now)

	require.Len(t, result.Points, 2)
	assert.Equal(t, 60.0, result.Points[0].Percent)
}

func TestAnalyzeTrend_EmptySeries(t *testing.T) {
	result := AnalyzeTrend(Series{}, 30, time.Now())

	assert.Empty(t, result.Points)
	assert.Equal(t, TrendStable, result.Direction)
}

func TestSummarize_EmptySeries(t *testing.T) {
	result := Summarize(Series{}, time.Now())

	assert.False(t, result.HasCoverage)
	assert.Nil(t, result.Latest)
}

func TestSummarize_Distribution(t *testing.T) {
	now := time.Now()
	latest := Snapshot{
		CreatedAt: now,
		Commit:    "abc123",
		Branch:    "main",
		Report: Report{
			Overall: Metrics{Percent: 75.0, LinesCovered: 75, LinesTotal: 100},
			Files: []FileCoverage{
				{Path: "a.go", Percent: 95.0},
				{Path: "b.go", Percent: 85.0},
				{Path: "c.go", Percent: 65.0},
				{Path: "d.go", Percent: 30.0},
				{Path: "e.go", Percent: 90.0},
			},
		},
	}
	series := Series{Snapshots: []Snapshot{latest}}

	result := Summarize(series, now)

	require.True(t, result.HasCoverage)
	assert.Equal(t, 2, result.Distribution.Excellent)
	assert.Equal(t, 1, result.Distribution.Good)
	assert.Equal(t, 1, result.Distribution.Fair)
	assert.Equal(t, 1, result.Distribution.Poor)
	assert.Equal(t, 5, result.FileCount)
	assert.Equal(t, 75.0, result.Latest.Percent)
}

func TestSummarize_WeeklyChange(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{
		snapshotAt(50.0, 20*24*time.Hour, now), // outside the 7-day window
		snapshotAt(60.0, 6*24*time.Hour, now),
		snapshotAt(64.5, time.Hour, now),
	}}

	result := Summarize(series, now)

	assert.Equal(t, 4.5, result.WeeklyChange)
}

func TestSummarize_WeeklyChangeNeedsTwoRecentSnapshots(t *testing.T) {
	now := time.Now()
	series := Series{Snapshots: []Snapshot{
		snapshotAt(50.0, 20*24*time.Hour, now),
		snapshotAt(60.0, time.Hour, now),
	}}

	result := Summarize(series, now)

	assert.Equal(t, 0.0, result.WeeklyChange)
}
