package normalize

import "strings"

// Strategy is a parsing strategy chosen by the sniffer.
type Strategy string

const (
	// StrategyXML commits to XML parsing.
	StrategyXML Strategy = "xml"
	// StrategyLCOV commits to LCOV parsing.
	StrategyLCOV Strategy = "lcov"
	// StrategyAuto tries XML first and falls back to LCOV on failure.
	StrategyAuto Strategy = "auto"
)

// Sniff picks a parsing strategy from decoded content and an optional
// filename hint. The decision order is fixed: XML markers win over LCOV
// markers, and content with neither gets the XML-then-LCOV fallback.
func Sniff(text, filenameHint string) Strategy {
	name := strings.ToLower(filenameHint)

	switch {
	case strings.HasSuffix(name, ".xml") ||
		strings.Contains(text, "<coverage") ||
		strings.Contains(text, "<report"):
		return StrategyXML
	case strings.HasSuffix(name, ".info") ||
		strings.HasPrefix(name, "lcov") ||
		strings.Contains(text, "TN:"):
		return StrategyLCOV
	default:
		return StrategyAuto
	}
}
