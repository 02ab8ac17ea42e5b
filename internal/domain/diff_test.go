package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(overall Metrics, files ...FileCoverage) Report {
	return Report{Format: FormatLCOV, Overall: overall, Files: files}
}

func TestDiff_OverallChange(t *testing.T) {
	base := report(Metrics{LinesCovered: 50, LinesTotal: 100, Percent: 50.0})
	head := report(Metrics{LinesCovered: 80, LinesTotal: 110, Percent: 72.73})

	diff := Diff(base, head)

	assert.Equal(t, 22.73, diff.Overall.Percent)
	assert.Equal(t, 30, diff.Overall.LinesCovered)
	assert.Equal(t, 10, diff.Overall.LinesTotal)
}

func TestDiff_ModifiedFile(t *testing.T) {
	base := report(Metrics{},
		FileCoverage{Path: "a.py", Percent: 40.0, LinesCovered: 4, LinesTotal: 10})
	head := report(Metrics{},
		FileCoverage{Path: "a.py", Percent: 70.0, LinesCovered: 7, LinesTotal: 10})

	diff := Diff(base, head)

	require.Len(t, diff.Files, 1)
	change := diff.Files[0]
	assert.Equal(t, ChangeModified, change.Status)
	assert.Equal(t, 30.0, change.PercentDelta)
	assert.Equal(t, 3, change.LinesDelta)
	assert.Equal(t, 40.0, change.Before)
	assert.Equal(t, 70.0, change.After)
}

func TestDiff_RemovedFile(t *testing.T) {
	base := report(Metrics{},
		FileCoverage{Path: "x.py", Percent: 50.0, LinesCovered: 5, LinesTotal: 10})
	head := report(Metrics{})

	diff := Diff(base, head)

	require.Len(t, diff.Files, 1)
	change := diff.Files[0]
	assert.Equal(t, "x.py", change.Path)
	assert.Equal(t, ChangeRemoved, change.Status)
	assert.Equal(t, -50.0, change.PercentDelta)
	assert.Equal(t, -5, change.LinesDelta)
	assert.Equal(t, 50.0, change.Before)
	assert.Equal(t, 0.0, change.After)
}

func TestDiff_AddedFile(t *testing.T) {
	base := report(Metrics{})
	head := report(Metrics{},
		FileCoverage{Path: "new.go", Percent: 85.0, LinesCovered: 17, LinesTotal: 20})

	diff := Diff(base, head)

	require.Len(t, diff.Files, 1)
	change := diff.Files[0]
	assert.Equal(t, ChangeAdded, change.Status)
	assert.Equal(t, 85.0, change.PercentDelta)
	assert.Equal(t, 17, change.LinesDelta)
	assert.Equal(t, 0.0, change.Before)
	assert.Equal(t, 85.0, change.After)
}

func TestDiff_SortsByAbsolutePercentDelta(t *testing.T) {
	base := report(Metrics{},
		FileCoverage{Path: "small.go", Percent: 80.0},
		FileCoverage{Path: "big.go", Percent: 90.0},
		FileCoverage{Path: "down.go", Percent: 60.0})
	head := report(Metrics{},
		FileCoverage{Path: "small.go", Percent: 82.0},
		FileCoverage{Path: "big.go", Percent: 40.0},
		FileCoverage{Path: "down.go", Percent: 30.0})

	diff := Diff(base, head)

	require.Len(t, diff.Files, 3)
	assert.Equal(t, "big.go", diff.Files[0].Path)  // |-50|
	assert.Equal(t, "down.go", diff.Files[1].Path) // |-30|
	assert.Equal(t, "small.go", diff.Files[2].Path)
}

func TestDiff_TiesKeepUnionOrder(t *testing.T) {
	base := report(Metrics{},
		FileCoverage{Path: "first.go", Percent: 50.0},
		FileCoverage{Path: "second.go", Percent: 50.0})
	head := report(Metrics{},
		FileCoverage{Path: "first.go", Percent: 60.0},
		FileCoverage{Path: "second.go", Percent: 60.0})

	diff := Diff(base, head)

	require.Len(t, diff.Files, 2)
	assert.Equal(t, "first.go", diff.Files[0].Path)
	assert.Equal(t, "second.go", diff.Files[1].Path)
}

func TestDiff_EmptyReports(t *testing.T) {
	diff := Diff(Report{}, Report{})

	assert.Equal(t, OverallChange{}, diff.Overall)
	assert.Empty(t, diff.Files)
}
