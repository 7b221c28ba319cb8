package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/docaudit/internal/advise"
	"github.com/joseph-ayodele/docaudit/internal/archive"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/common"
	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/extract"
	"github.com/joseph-ayodele/docaudit/internal/ingest"
	"github.com/joseph-ayodele/docaudit/internal/pipeline"
	"github.com/joseph-ayodele/docaudit/internal/render"
	"github.com/joseph-ayodele/docaudit/internal/report"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		file       = flag.String("file", "", "document to process: .txt, .csv or .pdf with a text layer (required)")
		catalogArg = flag.String("catalog", "", "catalog file (.csv or .xlsx); overrides CATALOG_PATH")
		outDir     = flag.String("out", "", "output directory; overrides REPORT_DIR")
		withHTML   = flag.Bool("html", true, "also write an HTML rendering")
		withXLSX   = flag.Bool("xlsx", false, "also write an XLSX rendering")
	)
	flag.Parse()

	if *file == "" {
		logger.Error("usage", "cmd", "docaudit --file <document> [--catalog <file>] [--out <dir>]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *catalogArg != "" {
		cfg.Catalog.Path = *catalogArg
	}
	if *outDir != "" {
		cfg.Report.OutputDir = *outDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := catalog.NewStore()
	snap, stats, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		logger.Error("load catalog", "path", cfg.Catalog.Path, "error", err)
		os.Exit(1)
	}
	store.Replace(snap)
	logger.Info("catalog.loaded",
		"path", cfg.Catalog.Path, "entries", stats.Loaded, "skipped", stats.Skipped)

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

	read, err := ingest.ReadText(*file)
	if err != nil {
		logger.Error("read document", "file", *file, "error", err)
		os.Exit(1)
	}
	for _, w := range read.Warnings {
		logger.Warn("ingest warning", "file", *file, "warning", w)
	}

	p := pipeline.NewProcessor(
		logger,
		extract.New(extract.Config{MinIDLength: cfg.Extract.MinIDLength}),
		store,
		advise.NewHeuristic(advise.Config{SimilarityCutoff: cfg.Advisor.SimilarityCutoff}),
		report.NewBuilder(),
		arch,
	)

	start := time.Now()
	rep, err := p.Process(ctx, read.Text)
	if err != nil {
		logger.Error("pipeline failed", "file", *file, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		logger.Error("create output dir", "dir", cfg.Report.OutputDir, "error", err)
		os.Exit(1)
	}

	base := filepath.Join(cfg.Report.OutputDir, rep.ID.String())

	canonical, err := report.CanonicalJSON(rep)
	if err != nil {
		logger.Error("canonical json", "error", err)
		os.Exit(1)
	}
	if err := report.ValidateJSON(canonical); err != nil {
		logger.Error("report json failed schema self-check", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(base+".json", canonical, 0o644); err != nil {
		logger.Error("write report json", "error", err)
		os.Exit(1)
	}

	// Renderer failures are downstream of the built report: log and
	// keep going, the JSON artifact already stands on its own.
	if *withHTML {
		writeRendering(logger, render.NewHTML(), rep, base+".html")
	}
	if *withXLSX {
		writeRendering(logger, render.NewXLSX(), rep, base+".xlsx")
	}

	logger.Info("docaudit.ok",
		"report_id", rep.ID,
		"disposition", rep.Disposition,
		"summary", rep.Summary,
		"out", base+".json",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println(rep.Summary)
}

func writeRendering(logger *slog.Logger, r render.Renderer, rep entity.Report, path string) {
	b, err := r.Render(rep)
	if err != nil {
		logger.Warn("renderer failed", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		logger.Warn("write rendering", "path", path, "error", err)
	}
}
