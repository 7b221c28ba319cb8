package extract

import (
	"strings"

	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// Config holds thresholds and behavior flags for the extractor.
type Config struct {
	MinIDLength int // default 3
}

// Extractor turns raw document text into a typed Extraction. It never
// fails hard: unparseable input yields a record with nil header fields
// and no items, so downstream stages always get a well-formed record.
type Extractor struct {
	cfg Config
}

func New(cfg Config) *Extractor {
	if cfg.MinIDLength <= 0 {
		cfg.MinIDLength = 3
	}
	return &Extractor{cfg: cfg}
}

// headerRecognizer fills one header field from the document text.
// Recognizers are independent of each other and run in a fixed order,
// so each can be tested and reordered on its own.
type headerRecognizer func(e *Extractor, text string, lines []string, rec *entity.Extraction)

var headerRecognizers = []headerRecognizer{
	recognizeDate,
	recognizeDocumentID,
	recognizeSupplier,
}

// Extract parses raw text into a record. Identical input always yields
// an identical record.
func (e *Extractor) Extract(rawText string) entity.Extraction {
	rec := entity.Extraction{
		Items:   []entity.LineItem{},
		RawText: rawText,
	}

	lines := nonEmptyLines(rawText)
	for _, recognize := range headerRecognizers {
		recognize(e, rawText, lines, &rec)
	}
	rec.Items = parseItems(rawText)
	return rec
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			out = append(out, s)
		}
	}
	return out
}
