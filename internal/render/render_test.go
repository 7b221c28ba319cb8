package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/report"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleReport(t *testing.T) entity.Report {
	t.Helper()
	b := report.NewBuilder().WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	rec := entity.Extraction{
		DocumentDate: strPtr("2024-05-12"),
		DocumentID:   strPtr("INV-1"),
		Supplier:     strPtr("Acme <Wholesale>"),
		Items: []entity.LineItem{
			{SKU: strPtr("X1"), Name: strPtr("Widget"), Quantity: intPtr(5), LineIndex: 0},
		},
		RawText: "raw",
	}
	issues := []entity.ValidationIssue{
		{Severity: constants.SeverityWarning, Kind: constants.IssueQuantityAnomaly, LineIndex: intPtr(0), Field: strPtr("quantity"), Message: "quantity 5 exceeds usual max 3"},
	}
	sugs := []entity.Suggestion{
		{IssueKind: constants.IssueQuantityAnomaly, LineIndex: intPtr(0), ProposedValue: strPtr("3"), Message: "cap quantity at 3"},
	}
	rep, err := b.Build(rec, issues, sugs, constants.DispositionRequestCorrection)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return rep
}

func TestHTMLRender(t *testing.T) {
	out, err := NewHTML().Render(sampleReport(t))
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	html := string(out)
	for _, want := range []string{"INV-1", "2024-05-12", "Widget", "request_correction", "cap quantity at 3"} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q", want)
		}
	}
	// supplier markup must be escaped, not injected
	if strings.Contains(html, "<Wholesale>") {
		t.Fatalf("html contains unescaped supplier markup")
	}
	if !strings.Contains(html, "Acme &lt;Wholesale&gt;") {
		t.Fatalf("html missing escaped supplier")
	}
}

func TestHTMLRenderEmptyReport(t *testing.T) {
	b := report.NewBuilder().WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	rep, err := b.Build(entity.Extraction{Items: []entity.LineItem{}}, nil, nil, constants.DispositionApprove)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out, err := NewHTML().Render(rep)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, want := range []string{"No items detected", "No issues detected", "No suggestions"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("html missing %q", want)
		}
	}
}

func TestXLSXRender(t *testing.T) {
	out, err := NewXLSX().Render(sampleReport(t))
	if err != nil {
		t.Fatalf("render xlsx: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("empty workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Report")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	flat := ""
	for _, row := range rows {
		flat += strings.Join(row, "|") + "\n"
	}
	for _, want := range []string{"INV-1", "request_correction", "Widget", "quantity_anomaly"} {
		if !strings.Contains(flat, want) {
			t.Fatalf("workbook missing %q in:\n%s", want, flat)
		}
	}
}
