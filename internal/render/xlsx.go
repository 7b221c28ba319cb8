package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// XLSX renders a report as a workbook: a header block, then item,
// issue and suggestion tables on one sheet.
type XLSX struct{}

func NewXLSX() *XLSX {
	return &XLSX{}
}

func (x *XLSX) Render(rep entity.Report) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Report"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIdx, _ := f.GetSheetIndex("Sheet1"); defaultIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	row := 1
	writeRow := func(values ...interface{}) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	header := [][]interface{}{
		{"Report ID", rep.ID.String()},
		{"Document ID", deref(rep.Extraction.DocumentID)},
		{"Date", deref(rep.Extraction.DocumentDate)},
		{"Supplier", deref(rep.Extraction.Supplier)},
		{"Disposition", string(rep.Disposition)},
		{"Generated At", rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Summary", rep.Summary},
	}
	for _, h := range header {
		if err := writeRow(h...); err != nil {
			return nil, err
		}
	}

	row++
	if err := writeRow("SKU", "Name", "Quantity", "Price", "Line"); err != nil {
		return nil, err
	}
	for _, item := range rep.Extraction.Items {
		if err := writeRow(deref(item.SKU), deref(item.Name), derefInt(item.Quantity), derefFloat(item.Price), item.LineIndex); err != nil {
			return nil, err
		}
	}

	row++
	if err := writeRow("Severity", "Kind", "Line", "Field", "Message"); err != nil {
		return nil, err
	}
	for _, issue := range rep.Issues {
		if err := writeRow(string(issue.Severity), string(issue.Kind), derefInt(issue.LineIndex), deref(issue.Field), issue.Message); err != nil {
			return nil, err
		}
	}

	row++
	if err := writeRow("Issue Kind", "Line", "Proposed Value", "Message"); err != nil {
		return nil, err
	}
	for _, sug := range rep.Suggestions {
		if err := writeRow(string(sug.IssueKind), derefInt(sug.LineIndex), deref(sug.ProposedValue), sug.Message); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
