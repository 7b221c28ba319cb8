package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/docaudit/constants"
)

// ReadResult is what the text-production boundary hands to the core:
// plain text plus non-fatal warnings. Degraded input (empty text, no
// text layer) is ordinary input downstream, never an error.
type ReadResult struct {
	Text     string
	Warnings []string
}

// ReadText produces raw text for a supported file. Plain-text formats
// pass through verbatim; PDFs contribute their text layer. Image OCR
// stays outside this tool: scans should be run through an OCR service
// first and fed back in as text.
func ReadText(path string) (ReadResult, error) {
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "txt", "csv":
		b, err := os.ReadFile(path)
		if err != nil {
			return ReadResult{}, fmt.Errorf("read %s: %w", path, err)
		}
		return ReadResult{Text: string(b)}, nil

	case "pdf":
		return readPDFText(path)

	default:
		return ReadResult{
			Warnings: []string{fmt.Sprintf("unsupported file type: %s", filepath.Ext(path))},
		}, nil
	}
}

func readPDFText(path string) (ReadResult, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return ReadResult{
			Warnings: []string{fmt.Sprintf("could not read pdf: %v", err)},
		}, nil
	}
	defer func() { _ = f.Close() }()

	var res ReadResult
	plain, err := r.GetPlainText()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("no text layer: %v", err))
		return res, nil
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("read text layer: %v", err))
		return res, nil
	}
	res.Text = strings.TrimSpace(buf.String())
	if res.Text == "" {
		res.Warnings = append(res.Warnings, "pdf has an empty text layer; run it through OCR and retry with the text output")
	}
	return res, nil
}
