package ingest

import (
	"regexp"
	"strings"
)

var (
	reDateish = regexp.MustCompile(`\b(20\d{2}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}/\d{1,2}/20\d{2})\b`)
	reCodeish = regexp.MustCompile(`\b[a-z]{2,5}-\d{3,}\b`)
	reAmount  = regexp.MustCompile(`\b\d{1,3}(,\d{3})*(\.\d{2})\b|\b\d+\.\d{2}\b`)
)

// TextConfidence scores how document-like a blob of text looks. It is
// a logging signal only: low-confidence text still flows through the
// pipeline and surfaces as missing-field issues.
func TextConfidence(txt string) float32 {
	// boost for common back-office artifacts: date-ish, code-ish,
	// amount-ish tokens, plus enough content overall
	lower := strings.ToLower(txt)
	score := float32(0.2) // base
	if reDateish.MatchString(lower) {
		score += 0.2
	}
	if reCodeish.MatchString(lower) {
		score += 0.2
	}
	if reAmount.MatchString(lower) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
