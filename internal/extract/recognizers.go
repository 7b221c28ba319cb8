package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/docaudit/internal/entity"
)

var (
	reDateISO     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reDateSlash   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	reDateDash    = regexp.MustCompile(`\b(\d{2})-(\d{2})-(\d{4})\b`)
	reIDLabel     = regexp.MustCompile(`(?i)\b(?:Invoice\s+ID|Document\s+ID|Invoice|Document|Ref|ID)\b\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9\-]+)`)
	reIDFallback  = regexp.MustCompile(`\b([A-Z]{2,5}-\d{3,})\b`)
	reSupplier    = regexp.MustCompile(`(?i)(?:Supplier|Vendor|From)\s*[:\-]\s*(.+)`)
	reHeaderLabel = regexp.MustCompile(`(?i)^(?:date|invoice|document|supplier|vendor|from|ref|id)\b`)
)

// datePattern pairs a token regex with its interpretation. The slash
// form is ambiguous (DD/MM vs MM/DD); resolveSlashDate applies the
// day>12 rule and otherwise keeps month-first, the first layout in
// document order.
type datePattern struct {
	re      *regexp.Regexp
	resolve func(m []string) (time.Time, bool)
}

var datePatterns = []datePattern{
	{reDateISO, func(m []string) (time.Time, bool) { return buildDate(m[1], m[2], m[3]) }},
	{reDateSlash, resolveSlashDate},
	{reDateDash, func(m []string) (time.Time, bool) { return buildDate(m[3], m[2], m[1]) }},
}

func buildDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// reject normalized rollovers like 2024-02-31
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func resolveSlashDate(m []string) (time.Time, bool) {
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])
	switch {
	case first > 12:
		return buildDate(m[3], m[2], m[1]) // DD/MM/YYYY
	case second > 12:
		return buildDate(m[3], m[1], m[2]) // MM/DD/YYYY
	default:
		return buildDate(m[3], m[1], m[2]) // ambiguous: month-first wins
	}
}

// recognizeDate picks the first plausible date token, normalized to
// YYYY-MM-DD.
func recognizeDate(_ *Extractor, text string, _ []string, rec *entity.Extraction) {
	type hit struct {
		pos  int
		when time.Time
	}
	best := hit{pos: -1}
	for _, p := range datePatterns {
		loc := p.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		m := p.re.FindStringSubmatch(text[loc[0]:])
		when, ok := p.resolve(m)
		if !ok {
			continue
		}
		if best.pos == -1 || loc[0] < best.pos {
			best = hit{pos: loc[0], when: when}
		}
	}
	if best.pos >= 0 {
		s := best.when.Format("2006-01-02")
		rec.DocumentDate = &s
	}
}

// recognizeDocumentID looks for a label-prefixed identifier first, then
// falls back to a bare code token. Quantities are short, so the minimum
// length threshold keeps them out.
func recognizeDocumentID(e *Extractor, text string, _ []string, rec *entity.Extraction) {
	if m := reIDLabel.FindStringSubmatch(text); m != nil {
		if candidate := m[1]; len(candidate) >= e.cfg.MinIDLength {
			rec.DocumentID = &candidate
			return
		}
	}
	if m := reIDFallback.FindStringSubmatch(text); m != nil {
		rec.DocumentID = &m[1]
	}
}

// supplierScanDepth bounds how far from the top of the document the
// named-entity fallback looks.
const supplierScanDepth = 5

func recognizeSupplier(_ *Extractor, _ string, lines []string, rec *entity.Extraction) {
	for _, ln := range lines {
		if m := reSupplier.FindStringSubmatch(ln); m != nil {
			s := strings.TrimSpace(m[1])
			if s != "" {
				if len(s) > 80 {
					s = s[:80]
				}
				rec.Supplier = &s
				return
			}
		}
	}
	// Fallback: first capitalized multi-word line near the top that is
	// not a date, id, or labeled header line.
	for i, ln := range lines {
		if i >= supplierScanDepth {
			break
		}
		if reHeaderLabel.MatchString(ln) || hasDateToken(ln) || reIDFallback.MatchString(ln) {
			continue
		}
		words := strings.Fields(ln)
		if len(words) < 2 || !startsUpper(words[0]) {
			continue
		}
		s := ln
		if len(s) > 80 {
			s = s[:80]
		}
		rec.Supplier = &s
		return
	}
}

func hasDateToken(s string) bool {
	for _, p := range datePatterns {
		if p.re.MatchString(s) {
			return true
		}
	}
	return false
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
