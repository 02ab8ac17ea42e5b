package domain

import (
	"sort"
	"strconv"
)

// Gap is a maximal contiguous run of uncovered lines, inclusive on both
// ends. A single isolated uncovered line has Start == End.
type Gap struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Gaps partitions the uncovered lines of a line-hit map into maximal runs
// of consecutive line numbers, ascending. Keys that are not decimal
// integers are ignored; an empty map yields no gaps.
func Gaps(lineHits map[string]bool) []Gap {
	uncovered := UncoveredLines(lineHits)
	if len(uncovered) == 0 {
		return nil
	}

	var gaps []Gap
	start, end := uncovered[0], uncovered[0]
	for _, n := range uncovered[1:] {
		if n == end+1 {
			end = n
			continue
		}
		gaps = append(gaps, Gap{Start: start, End: end})
		start, end = n, n
	}
	return append(gaps, Gap{Start: start, End: end})
}

// UncoveredLines returns the numeric line numbers whose hit flag is false,
// sorted ascending.
func UncoveredLines(lineHits map[string]bool) []int {
	return collectLines(lineHits, false)
}

// CoveredLines returns the numeric line numbers whose hit flag is true,
// sorted ascending.
func CoveredLines(lineHits map[string]bool) []int {
	return collectLines(lineHits, true)
}

func collectLines(lineHits map[string]bool, hit bool) []int {
	var lines []int
	for key, covered := range lineHits {
		if covered != hit {
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		lines = append(lines, n)
	}
	sort.Ints(lines)
	return lines
}
