package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// LoadStats summarizes one catalog load.
type LoadStats struct {
	Rows    int // data rows seen (header excluded)
	Loaded  int // entries installed (after duplicate collapse)
	Skipped int // malformed rows dropped
}

// LoadFile loads a catalog from a CSV or XLSX file based on extension.
func LoadFile(path string) (Snapshot, LoadStats, error) {
	switch constants.NormalizeExt(filepath.Ext(path)) {
	case "csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		return LoadCSV(f)
	case "xlsx":
		return LoadXLSX(path)
	default:
		return nil, LoadStats{}, fmt.Errorf("unsupported catalog format: %s", filepath.Ext(path))
	}
}

// LoadCSV reads tabular rows with columns sku, name, max_quantity.
// Malformed rows (missing sku or name) are skipped; when the same sku
// appears twice the last row wins.
func LoadCSV(r io.Reader) (Snapshot, LoadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read catalog csv: %w", err)
	}
	if len(rows) == 0 {
		return Snapshot{}, LoadStats{}, nil
	}
	return fromRows(rows)
}

// LoadXLSX reads the first sheet of a workbook with the same columns as
// the CSV form.
func LoadXLSX(path string) (Snapshot, LoadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Snapshot{}, LoadStats{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read catalog sheet: %w", err)
	}
	if len(rows) == 0 {
		return Snapshot{}, LoadStats{}, nil
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (Snapshot, LoadStats, error) {
	cols := headerIndex(rows[0])
	if _, ok := cols["sku"]; !ok {
		return nil, LoadStats{}, fmt.Errorf("catalog header missing sku column")
	}

	snap := Snapshot{}
	stats := LoadStats{}
	for _, row := range rows[1:] {
		stats.Rows++
		sku := cell(row, cols, "sku")
		name := cell(row, cols, "name")
		if strings.TrimSpace(sku) == "" || strings.TrimSpace(name) == "" {
			stats.Skipped++
			continue
		}
		entry := entity.CatalogEntry{
			SKU:  strings.TrimSpace(sku),
			Name: strings.TrimSpace(name),
		}
		// An unparseable or non-positive ceiling means "no ceiling",
		// not a dropped row.
		if raw := cell(row, cols, "max_quantity"); raw != "" {
			if q, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && q > 0 {
				entry.MaxQuantity = &q
			}
		}
		snap[NormalizeSKU(entry.SKU)] = entry
	}
	stats.Loaded = len(snap)
	return snap, stats, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
