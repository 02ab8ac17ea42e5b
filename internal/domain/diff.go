package domain

import (
	"math"
	"sort"
)

// ChangeStatus classifies how a file differs between two reports.
type ChangeStatus string

const (
	// ChangeAdded marks a file present only in the head report.
	ChangeAdded ChangeStatus = "added"
	// ChangeRemoved marks a file present only in the base report.
	ChangeRemoved ChangeStatus = "removed"
	// ChangeModified marks a file present in both reports.
	ChangeModified ChangeStatus = "modified"
)

// OverallChange is the element-wise difference (head - base) of the
// aggregate metrics of two reports.
type OverallChange struct {
	Percent      float64 `json:"coveragePercentage"`
	LinesCovered int     `json:"linesCovered"`
	LinesTotal   int     `json:"linesTotal"`
}

// FileChange describes the coverage delta of one file between two reports.
type FileChange struct {
	Path         string       `json:"path"`
	Status       ChangeStatus `json:"status"`
	PercentDelta float64      `json:"coverageChange"`
	LinesDelta   int          `json:"linesChange"`
	Before       float64      `json:"oldCoverage"`
	After        float64      `json:"newCoverage"`
}

// ReportDiff is the structural and numeric difference between two reports.
// Files are ordered by absolute percentage delta, largest swings first;
// ties keep the union's insertion order.
type ReportDiff struct {
	Overall OverallChange `json:"overallChange"`
	Files   []FileChange  `json:"fileChanges"`
}

// Diff compares two canonical reports and returns head relative to base.
// Neither input is mutated; both may safely be diffed repeatedly.
func Diff(base, head Report) ReportDiff {
	diff := ReportDiff{
		Overall: OverallChange{
			Percent:      Round2(head.Overall.Percent - base.Overall.Percent),
			LinesCovered: head.Overall.LinesCovered - base.Overall.LinesCovered,
			LinesTotal:   head.Overall.LinesTotal - base.Overall.LinesTotal,
		},
	}

	baseFiles := filesByPath(base)
	headFiles := filesByPath(head)

	for _, path := range unionPaths(base, head) {
		before, inBase := baseFiles[path]
		after, inHead := headFiles[path]

		var change FileChange
		switch {
		case inBase && inHead:
			change = FileChange{
				Path:         path,
				Status:       ChangeModified,
				PercentDelta: Round2(after.Percent - before.Percent),
				LinesDelta:   after.LinesCovered - before.LinesCovered,
				Before:       before.Percent,
				After:        after.Percent,
			}
		case inHead:
			change = FileChange{
				Path:         path,
				Status:       ChangeAdded,
				PercentDelta: after.Percent,
				LinesDelta:   after.LinesCovered,
				After:        after.Percent,
			}
		default:
			change = FileChange{
				Path:         path,
				Status:       ChangeRemoved,
				PercentDelta: -before.Percent,
				LinesDelta:   -before.LinesCovered,
				Before:       before.Percent,
			}
		}
		diff.Files = append(diff.Files, change)
	}

	sort.SliceStable(diff.Files, func(i, j int) bool {
		return math.Abs(diff.Files[i].PercentDelta) > math.Abs(diff.Files[j].PercentDelta)
	})

	return diff
}

// filesByPath indexes a report's files by path. A path appearing more than
// once (Cobertura emits one entry per class) keeps the last entry, matching
// the overall counters which already include every entry.
func filesByPath(r Report) map[string]FileCoverage {
	m := make(map[string]FileCoverage, len(r.Files))
	for _, f := range r.Files {
		m[f.Path] = f
	}
	return m
}

// unionPaths returns the union of both reports' file paths in a
// deterministic order: base paths first, then head-only paths, each in
// first-seen order.
func unionPaths(base, head Report) []string {
	seen := make(map[string]struct{}, len(base.Files)+len(head.Files))
	var paths []string
	for _, r := range []Report{base, head} {
		for _, f := range r.Files {
			if _, ok := seen[f.Path]; ok {
				continue
			}
			seen[f.Path] = struct{}{}
			paths = append(paths, f.Path)
		}
	}
	return paths
}
