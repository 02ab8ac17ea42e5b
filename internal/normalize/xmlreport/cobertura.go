package xmlreport

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// Cobertura carries trustworthy summary attributes on its root element, so
// overall totals are read from there verbatim and never recomputed from
// per-file sums. JaCoCo is the opposite; see jacoco.go.

type coberturaDoc struct {
	LinesValid      int                `xml:"lines-valid,attr"`
	LinesCovered    int                `xml:"lines-covered,attr"`
	BranchesValid   int                `xml:"branches-valid,attr"`
	BranchesCovered int                `xml:"branches-covered,attr"`
	Packages        []coberturaPackage `xml:"packages>package"`
}

type coberturaPackage struct {
	Name    string           `xml:"name,attr"`
	Classes []coberturaClass `xml:"classes>class"`
}

type coberturaClass struct {
	Filename string            `xml:"filename,attr"`
	Lines    []coberturaLine   `xml:"lines>line"`
	Methods  []coberturaMethod `xml:"methods>method"`
}

type coberturaMethod struct {
	Lines []coberturaLine `xml:"lines>line"`
}

type coberturaLine struct {
	Number int `xml:"number,attr"`
	Hits   int `xml:"hits,attr"`
}

func parseCobertura(text string) (domain.Report, error) {
	var doc coberturaDoc
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return domain.Report{}, fmt.Errorf("decode cobertura xml: %w", err)
	}

	report := domain.Report{
		Format: domain.FormatCobertura,
		Overall: domain.Metrics{
			LinesCovered:    doc.LinesCovered,
			LinesTotal:      doc.LinesValid,
			BranchesCovered: doc.BranchesCovered,
			BranchesTotal:   doc.BranchesValid,
			Percent:         domain.PercentOf(doc.LinesCovered, doc.LinesValid),
		},
	}

	for _, pkg := range doc.Packages {
		for _, cls := range pkg.Classes {
			if cls.Filename == "" {
				continue // classes without a filename carry no usable data
			}

			lines := cls.Lines
			for _, m := range cls.Methods {
				lines = append(lines, m.Lines...)
			}

			file := domain.FileCoverage{
				Path:     cls.Filename,
				LineHits: make(map[string]bool, len(lines)),
			}
			for _, ln := range lines {
				file.LinesTotal++
				if ln.Hits > 0 {
					file.LinesCovered++
				}
				file.LineHits[strconv.Itoa(ln.Number)] = ln.Hits > 0
			}
			file.Percent = domain.PercentOf(file.LinesCovered, file.LinesTotal)

			report.Files = append(report.Files, file)
		}
	}

	return report, nil
}
