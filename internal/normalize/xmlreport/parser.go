// Package xmlreport parses XML coverage reports into the canonical model.
//
// Dispatch happens on the root element shape: a <coverage> root (or a dtd
// attribute mentioning Cobertura) selects the Cobertura parser, a <report>
// root selects the JaCoCo parser, and any other well-formed XML falls back
// to an empty generic report. The fallback is a deliberate "no data
// extracted, no error" policy; only malformed XML is an error.
package xmlreport

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/felixgeelhaar/covpipe/internal/domain"
)

// Parse parses XML coverage text and dispatches to the format-specific
// parser for the root element shape.
func Parse(text string) (domain.Report, error) {
	root, err := inspect(text)
	if err != nil {
		return domain.Report{}, err
	}

	switch {
	case root.name == "coverage" || strings.Contains(strings.ToLower(root.attr("dtd")), "cobertura"):
		return parseCobertura(text)
	case root.name == "report":
		return parseJaCoCo(text)
	default:
		return domain.Report{Format: domain.FormatGenericXML}, nil
	}
}

type rootElement struct {
	name  string
	attrs []xml.Attr
}

func (r rootElement) attr(name string) string {
	for _, a := range r.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// inspect walks every token in the document so that malformed XML
// (truncated or mismatched tags) fails here, before dispatch, and records
// the root element for dispatching. The generic fallback depends on this
// full scan: it must only ever see well-formed input.
func inspect(text string) (rootElement, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var root rootElement
	seen := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rootElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok && !seen {
			root = rootElement{name: start.Name.Local, attrs: start.Attr}
			seen = true
		}
	}

	if !seen {
		return rootElement{}, errors.New("no root element found")
	}
	return root, nil
}
