// Package domain holds the canonical coverage model and the analytics that
// operate on it. Everything here is pure: no I/O, no shared mutable state.
package domain

import (
	"math"
	"time"
)

// Format identifies the source format a report was normalized from.
type Format string

const (
	// FormatCobertura is Cobertura-style XML.
	FormatCobertura Format = "cobertura"
	// FormatJaCoCo is JaCoCo-style XML.
	FormatJaCoCo Format = "jacoco"
	// FormatLCOV is LCOV text.
	FormatLCOV Format = "lcov"
	// FormatGenericXML marks well-formed XML with no recognized coverage shape.
	FormatGenericXML Format = "generic_xml"
	// FormatUnknown is the zero value for unparsed content.
	FormatUnknown Format = "unknown"
)

// Metrics contains aggregate coverage counters for a report.
type Metrics struct {
	LinesCovered     int     `json:"linesCovered"`
	LinesTotal       int     `json:"linesTotal"`
	BranchesCovered  int     `json:"branchesCovered"`
	BranchesTotal    int     `json:"branchesTotal"`
	FunctionsCovered int     `json:"functionsCovered"`
	FunctionsTotal   int     `json:"functionsTotal"`
	Percent          float64 `json:"coveragePercentage"`
}

// FileCoverage is the per-file slice of a canonical report.
//
// LineHits maps decimal line numbers to whether the line was executed.
// Keys are sparse; a missing key means "no data for that line", which is
// distinct from "present and false".
type FileCoverage struct {
	Path             string          `json:"path"`
	LinesCovered     int             `json:"linesCovered"`
	LinesTotal       int             `json:"linesTotal"`
	Percent          float64         `json:"coveragePercentage"`
	LineHits         map[string]bool `json:"lineCoverage,omitempty"`
	FunctionsCovered int             `json:"functionsCovered,omitempty"`
	FunctionsTotal   int             `json:"functionsTotal,omitempty"`
	BranchesCovered  int             `json:"branchesCovered,omitempty"`
	BranchesTotal    int             `json:"branchesTotal,omitempty"`
}

// Report is the canonical representation every input format is converted
// into. It is fully populated by the normalization pipeline and immutable
// afterwards. Files keep first-seen parse order.
type Report struct {
	Format  Format         `json:"format"`
	Overall Metrics        `json:"overall"`
	Files   []FileCoverage `json:"files"`
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentOf computes a coverage percentage from covered/total counts.
// A zero or negative total yields 0, not 100.
func PercentOf(covered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(float64(covered) / float64(total) * 100)
}

// Snapshot is a persisted canonical report with its recording metadata.
type Snapshot struct {
	Report    Report    `json:"report"`
	Commit    string    `json:"commit,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShortCommit returns the first 8 characters of the commit SHA, or "" when
// no commit was recorded.
func (s Snapshot) ShortCommit() string {
	if len(s.Commit) > 8 {
		return s.Commit[:8]
	}
	return s.Commit
}

// Series is an ordered-by-creation-time sequence of snapshots for one
// project. Analytics treat it as read-only input.
type Series struct {
	Snapshots []Snapshot `json:"snapshots"`
}

// Latest returns the chronologically newest snapshot, or nil if empty.
// Entries are scanned rather than assumed sorted.
func (s *Series) Latest() *Snapshot {
	if len(s.Snapshots) == 0 {
		return nil
	}
	latest := 0
	for i := 1; i < len(s.Snapshots); i++ {
		if s.Snapshots[i].CreatedAt.After(s.Snapshots[latest].CreatedAt) {
			latest = i
		}
	}
	return &s.Snapshots[latest]
}

// Window returns the snapshots recorded within [start, end], preserving
// series order.
func (s *Series) Window(start, end time.Time) []Snapshot {
	var out []Snapshot
	for _, snap := range s.Snapshots {
		if snap.CreatedAt.Before(start) || snap.CreatedAt.After(end) {
			continue
		}
		out = append(out, snap)
	}
	return out
}
