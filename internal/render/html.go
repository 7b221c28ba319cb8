package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/report"
)

// HTML renders a report as a standalone dark-panel HTML page.
type HTML struct {
	tmpl *template.Template
}

func NewHTML() *HTML {
	return &HTML{tmpl: template.Must(template.New("report").Funcs(template.FuncMap{
		"orNA":  orNA,
		"intNA": intNA,
		"numNA": numNA,
	}).Parse(reportTemplate))}
}

func (h *HTML) Render(rep entity.Report) ([]byte, error) {
	canonical, err := report.CanonicalJSON(rep)
	if err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}
	var buf bytes.Buffer
	data := struct {
		entity.Report
		Canonical string
	}{Report: rep, Canonical: string(canonical)}
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func intNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func numNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

const reportTemplate = `<html>
<body style="font-family: Arial, sans-serif; background:#0f172a; color:#e2e8f0; padding:12px;">
  <h2>Back-Office Document Report</h2>
  <p><strong>Document ID:</strong> {{orNA .Extraction.DocumentID}}</p>
  <p><strong>Date:</strong> {{orNA .Extraction.DocumentDate}}</p>
  <p><strong>Supplier:</strong> {{orNA .Extraction.Supplier}}</p>
  <h3>Items</h3>
  <table border="1" cellspacing="0" cellpadding="6" style="border-color:#334155;color:#e2e8f0;">
    <tr style="background:#1e293b;"><th>SKU</th><th>Name</th><th>Quantity</th><th>Price</th></tr>
    {{range .Extraction.Items}}<tr><td>{{orNA .SKU}}</td><td>{{orNA .Name}}</td><td>{{intNA .Quantity}}</td><td>{{numNA .Price}}</td></tr>
    {{else}}<tr><td colspan="4">No items detected</td></tr>{{end}}
  </table>
  <h3>Validation</h3>
  <ul>
    {{range .Issues}}<li><strong>{{.Severity}}:</strong> {{.Message}}</li>
    {{else}}<li>No issues detected</li>{{end}}
  </ul>
  <h3>Suggestions</h3>
  <ul>
    {{range .Suggestions}}<li>{{.Message}}</li>
    {{else}}<li>No suggestions</li>{{end}}
  </ul>
  <p><strong>Recommended action:</strong> {{.Disposition}}</p>
  <p>{{.Summary}}</p>
  <h3>JSON Output</h3>
  <pre style="background:#0b1221; padding:10px; border:1px solid #334155;">{{.Canonical}}</pre>
</body>
</html>
`
