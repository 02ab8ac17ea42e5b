// Package normalize converts raw coverage-report bytes into the canonical
// domain model. It is the sole ingress for report ingestion: callers hand
// it raw bytes plus a filename hint and receive either a fully populated
// report or a typed *Error.
package normalize

import (
	"fmt"
	"unicode/utf8"

	"github.com/felixgeelhaar/covpipe/internal/domain"
	"github.com/felixgeelhaar/covpipe/internal/normalize/lcov"
	"github.com/felixgeelhaar/covpipe/internal/normalize/xmlreport"
)

// Pipeline orchestrates sniffing, parsing, and fallback. It holds no state
// and is safe for concurrent use.
type Pipeline struct{}

// New creates a normalization pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// Normalize converts raw coverage bytes into a canonical report. Each call
// is a pure function of its input; the same bytes always yield the same
// report. Failures are always a *Error wrapping one of the package's
// sentinel errors.
func (p *Pipeline) Normalize(content []byte, filenameHint string) (domain.Report, error) {
	text, err := decode(content)
	if err != nil {
		return domain.Report{}, &Error{Err: err}
	}

	switch strategy := Sniff(text, filenameHint); strategy {
	case StrategyXML:
		report, err := xmlreport.Parse(text)
		if err != nil {
			return domain.Report{}, &Error{
				Attempted: []Strategy{StrategyXML},
				Err:       fmt.Errorf("%w: %v", ErrMalformedInput, err),
			}
		}
		return report, nil

	case StrategyLCOV:
		report, err := lcov.Parse(text)
		if err != nil {
			return domain.Report{}, &Error{
				Attempted: []Strategy{StrategyLCOV},
				Err:       fmt.Errorf("%w: %v", ErrMalformedInput, err),
			}
		}
		return report, nil

	default:
		return p.normalizeAuto(text)
	}
}

// normalizeAuto handles content without format markers: XML first, then
// LCOV. An LCOV result without a single file record does not count as a
// successful fallback, otherwise arbitrary text would normalize to an
// empty report instead of surfacing a format error.
func (p *Pipeline) normalizeAuto(text string) (domain.Report, error) {
	if report, err := xmlreport.Parse(text); err == nil {
		return report, nil
	}

	if report, err := lcov.Parse(text); err == nil && len(report.Files) > 0 {
		return report, nil
	}

	return domain.Report{}, &Error{
		Attempted: []Strategy{StrategyXML, StrategyLCOV},
		Err:       ErrUnrecognizedFormat,
	}
}

func decode(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrDecode)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrDecode)
	}
	return string(content), nil
}
