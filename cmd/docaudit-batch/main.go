package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/docaudit/internal/advise"
	"github.com/joseph-ayodele/docaudit/internal/archive"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/common"
	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/extract"
	"github.com/joseph-ayodele/docaudit/internal/ingest"
	"github.com/joseph-ayodele/docaudit/internal/pipeline"
	"github.com/joseph-ayodele/docaudit/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory of documents to process (required)")
		catalogArg = flag.String("catalog", "", "catalog file (.csv or .xlsx); overrides CATALOG_PATH")
		out        = flag.String("out", "", "output XLSX index path (defaults to parent of --dir)")
		exts       = flag.String("ext", "", "comma-separated extensions to include (default: txt,csv,pdf)")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "docaudit-index.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *catalogArg != "" {
		cfg.Catalog.Path = *catalogArg
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store := catalog.NewStore()
	snap, stats, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		logger.Error("load catalog", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}
	store.Replace(snap)
	logger.Info("catalog.loaded", "entries", stats.Loaded, "skipped", stats.Skipped)

	var arch *archive.Store
	if cfg.Report.ArchivePath != "" {
		arch, err = archive.Open(ctx, cfg.Report.ArchivePath)
		if err != nil {
			logger.Error("open archive", "path", cfg.Report.ArchivePath, "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := arch.Close(); cerr != nil {
				logger.Error("close archive", "error", cerr)
			}
		}()
	}

	var include []string
	if *exts != "" {
		include = strings.Split(*exts, ",")
	}
	files, walkStats, err := ingest.WalkDocuments(*dir, include)
	if err != nil {
		logger.Error("walk documents", "dir", *dir, "error", err)
		os.Exit(1)
	}
	logger.Info("batch.scan",
		"scanned", walkStats.Scanned, "matched", walkStats.Matched, "failed", walkStats.Failed)

	p := pipeline.NewProcessor(
		logger,
		extract.New(extract.Config{MinIDLength: cfg.Extract.MinIDLength}),
		store,
		advise.NewHeuristic(advise.Config{SimilarityCutoff: cfg.Advisor.SimilarityCutoff}),
		report.NewBuilder(),
		arch,
	)

	var rows []indexRow
	for _, f := range files {
		if f.Err != "" {
			rows = append(rows, indexRow{path: f.Path, err: f.Err})
			continue
		}
		rep, perr := p.Process(ctx, f.Text)
		if perr != nil {
			logger.Error("process failed", "file", f.Path, "error", perr)
			rows = append(rows, indexRow{path: f.Path, err: perr.Error()})
			continue
		}
		rows = append(rows, indexRow{path: f.Path, rep: rep})
	}

	if err := writeIndex(*out, rows); err != nil {
		logger.Error("write index", "out", *out, "error", err)
		os.Exit(1)
	}
	logger.Info("batch.ok", "documents", len(rows), "index", *out)
}

type indexRow struct {
	path string
	rep  entity.Report
	err  string
}

// writeIndex writes one row per processed document: file, document id,
// disposition, issue count, summary.
func writeIndex(path string, rows []indexRow) error {
	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIdx, _ := f.GetSheetIndex("Sheet1"); defaultIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"File", "Report ID", "Document ID", "Disposition", "Issues", "Summary / Error"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		values := []interface{}{r.path, "", "", "", "", r.err}
		if r.err == "" {
			docID := ""
			if r.rep.Extraction.DocumentID != nil {
				docID = *r.rep.Extraction.DocumentID
			}
			values = []interface{}{
				r.path, r.rep.ID.String(), docID,
				string(r.rep.Disposition), len(r.rep.Issues), r.rep.Summary,
			}
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
