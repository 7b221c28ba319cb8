package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildReportJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. External renderers and consumers are promised exactly
// this shape; ValidateJSON checks every canonical document against it
// before it leaves the core.
func BuildReportJSONSchema() map[string]any {
	severity := map[string]any{"type": "string", "enum": []string{"error", "warning"}}
	kind := map[string]any{"type": "string", "enum": []string{
		"missing_header_field",
		"missing_required_item_field",
		"non_positive_quantity",
		"unknown_sku",
		"name_mismatch",
		"quantity_anomaly",
		"duplicate_sku",
	}}
	nullableString := map[string]any{"type": []string{"string", "null"}}
	nullableInt := map[string]any{"type": []string{"integer", "null"}}

	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sku":        nullableString,
			"name":       nullableString,
			"quantity":   nullableInt,
			"price":      map[string]any{"type": []string{"number", "null"}},
			"line_index": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"sku", "name", "quantity", "price", "line_index"},
	}

	extraction := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"document_date": map[string]any{
				"type":    []string{"string", "null"},
				"pattern": `^\d{4}-\d{2}-\d{2}$`,
			},
			"document_id": nullableString,
			"supplier":    nullableString,
			"items":       map[string]any{"type": "array", "items": item},
			"raw_text":    map[string]any{"type": "string"},
		},
		"required": []string{"document_date", "document_id", "supplier", "items", "raw_text"},
	}

	issue := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"severity":   severity,
			"kind":       kind,
			"line_index": nullableInt,
			"field":      nullableString,
			"message":    map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"severity", "kind", "line_index", "field", "message"},
	}

	suggestion := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"issue_kind":     kind,
			"line_index":     nullableInt,
			"proposed_value": nullableString,
			"message":        map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"issue_kind", "line_index", "proposed_value", "message"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"report_id":   map[string]any{"type": "string", "minLength": 1},
			"extraction":  extraction,
			"issues":      map[string]any{"type": "array", "items": issue},
			"suggestions": map[string]any{"type": "array", "items": suggestion},
			"disposition": map[string]any{
				"type": "string",
				"enum": []string{"approve", "request_correction", "reject"},
			},
			"summary":      map[string]any{"type": "string", "minLength": 1},
			"generated_at": map[string]any{"type": "string"},
		},
		"required": []string{"report_id", "extraction", "issues", "suggestions", "disposition", "summary", "generated_at"},
	}
}

// ValidateJSON validates canonical report bytes against the schema.
func ValidateJSON(data []byte) error {
	b, err := json.Marshal(BuildReportJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("report.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal report json: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report json does not match schema: %w", err)
	}
	return nil
}
