package xmlreport

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// JaCoCo XML has no single trustworthy global line summary where this
// parser reads it, so overall totals are accumulated while walking the
// package/sourcefile tree. A line counts as covered when its ci
// (covered-instructions) attribute is positive.

// Multi-module aggregate reports nest packages under <group> elements,
// possibly several levels deep, so package collection recurses through
// groups rather than reading only the root's direct children.

type jacocoDoc struct {
	Groups   []jacocoGroup   `xml:"group"`
	Packages []jacocoPackage `xml:"package"`
}

type jacocoGroup struct {
	Groups   []jacocoGroup   `xml:"group"`
	Packages []jacocoPackage `xml:"package"`
}

func (g jacocoGroup) collect() []jacocoPackage {
	packages := g.Packages
	for _, sub := range g.Groups {
		packages = append(packages, sub.collect()...)
	}
	return packages
}

type jacocoPackage struct {
	Name        string             `xml:"name,attr"`
	SourceFiles []jacocoSourceFile `xml:"sourcefile"`
}

type jacocoSourceFile struct {
	Name  string       `xml:"name,attr"`
	Lines []jacocoLine `xml:"line"`
}

type jacocoLine struct {
	Nr int `xml:"nr,attr"`
	Ci int `xml:"ci,attr"`
}

func parseJaCoCo(text string) (domain.Report, error) {
	var doc jacocoDoc
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return domain.Report{}, fmt.Errorf("decode jacoco xml: %w", err)
	}

	report := domain.Report{Format: domain.FormatJaCoCo}

	packages := doc.Packages
	for _, group := range doc.Groups {
		packages = append(packages, group.collect()...)
	}

	for _, pkg := range packages {
		for _, src := range pkg.SourceFiles {
			if src.Name == "" {
				continue
			}

			path := src.Name
			if pkg.Name != "" {
				path = pkg.Name + "/" + src.Name
			}

			file := domain.FileCoverage{
				Path:     path,
				LineHits: make(map[string]bool, len(src.Lines)),
			}
			for _, ln := range src.Lines {
				file.LinesTotal++
				if ln.Ci > 0 {
					file.LinesCovered++
				}
				file.LineHits[strconv.Itoa(ln.Nr)] = ln.Ci > 0
			}
			file.Percent = domain.PercentOf(file.LinesCovered, file.LinesTotal)

			report.Overall.LinesCovered += file.LinesCovered
			report.Overall.LinesTotal += file.LinesTotal
			report.Files = append(report.Files, file)
		}
	}

	report.Overall.Percent = domain.PercentOf(report.Overall.LinesCovered, report.Overall.LinesTotal)
	return report, nil
}
