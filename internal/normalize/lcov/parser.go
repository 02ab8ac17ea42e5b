// Package lcov parses LCOV text coverage reports into the canonical model.
//
// LCOV is the line-oriented format emitted by gcov/lcov and adopted by
// pytest-cov, nyc/c8, and most JavaScript and Ruby coverage tooling.
package lcov

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// Parse scans LCOV text in a single forward pass, maintaining one current
// file accumulator. A new SF: record flushes any open accumulator, which
// guards against reports missing end_of_record markers; the same flush
// runs once more at EOF. Unmatched lines are ignored. A non-integer field
// where an integer is expected aborts the whole parse; no partial result
// is returned.
func Parse(text string) (domain.Report, error) {
	report := domain.Report{Format: domain.FormatLCOV}
	var current *domain.FileCoverage

	flush := func() {
		if current == nil {
			return
		}
		current.Percent = domain.PercentOf(current.LinesCovered, current.LinesTotal)
		report.Overall.LinesCovered += current.LinesCovered
		report.Overall.LinesTotal += current.LinesTotal
		report.Files = append(report.Files, *current)
		current = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "SF:"):
			flush()
			current = &domain.FileCoverage{
				Path:     strings.TrimSpace(strings.TrimPrefix(line, "SF:")),
				LineHits: make(map[string]bool),
			}

		case strings.HasPrefix(line, "DA:") && current != nil:
			parts := strings.Split(strings.TrimPrefix(line, "DA:"), ",")
			if len(parts) < 2 {
				continue // malformed DA records are skipped, not fatal
			}
			hits, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return domain.Report{}, fmt.Errorf("parse DA record %q: %w", line, err)
			}
			current.LineHits[strings.TrimSpace(parts[0])] = hits > 0
			current.LinesTotal++
			if hits > 0 {
				current.LinesCovered++
			}

		case strings.HasPrefix(line, "LH:") && current != nil:
			// Authoritative summary; overrides counts accumulated from DA lines.
			n, err := intField(line, "LH:")
			if err != nil {
				return domain.Report{}, err
			}
			current.LinesCovered = n

		case strings.HasPrefix(line, "LF:") && current != nil:
			n, err := intField(line, "LF:")
			if err != nil {
				return domain.Report{}, err
			}
			current.LinesTotal = n

		case strings.HasPrefix(line, "FNH:") && current != nil:
			n, err := intField(line, "FNH:")
			if err != nil {
				return domain.Report{}, err
			}
			current.FunctionsCovered = n

		case strings.HasPrefix(line, "FNF:") && current != nil:
			n, err := intField(line, "FNF:")
			if err != nil {
				return domain.Report{}, err
			}
			current.FunctionsTotal = n

		case strings.HasPrefix(line, "BRH:") && current != nil:
			n, err := intField(line, "BRH:")
			if err != nil {
				return domain.Report{}, err
			}
			current.BranchesCovered = n

		case strings.HasPrefix(line, "BRF:") && current != nil:
			n, err := intField(line, "BRF:")
			if err != nil {
				return domain.Report{}, err
			}
			current.BranchesTotal = n

		case line == "end_of_record":
			flush()
		}
	}
	flush()

	report.Overall.Percent = domain.PercentOf(report.Overall.LinesCovered, report.Overall.LinesTotal)
	return report, nil
}

func intField(line, prefix string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
	if err != nil {
		return 0, fmt.Errorf("parse %s record %q: %w", strings.TrimSuffix(prefix, ":"), line, err)
	}
	return n, nil
}
