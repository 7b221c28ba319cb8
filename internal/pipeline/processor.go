package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/docaudit/internal/advise"
	"github.com/joseph-ayodele/docaudit/internal/archive"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/extract"
	"github.com/joseph-ayodele/docaudit/internal/ingest"
	"github.com/joseph-ayodele/docaudit/internal/report"
	"github.com/joseph-ayodele/docaudit/internal/validate"
)

// Processor runs the full extract -> validate -> advise -> build chain
// for one document. Each stage is a pure function of its inputs; the
// catalog is read once per run from the atomic store, so a concurrent
// catalog replacement never tears a run in half.
type Processor struct {
	Logger    *slog.Logger
	Extractor *extract.Extractor
	Catalog   *catalog.Store
	Advisor   advise.Advisor
	Builder   *report.Builder
	Archive   *archive.Store // optional; nil disables archiving
}

func NewProcessor(logger *slog.Logger, ex *extract.Extractor, store *catalog.Store, adv advise.Advisor, builder *report.Builder, arch *archive.Store) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:    logger,
		Extractor: ex,
		Catalog:   store,
		Advisor:   adv,
		Builder:   builder,
		Archive:   arch,
	}
}

// Process converts raw document text into a built report. Bad data
// never fails the run; the only error paths are a broken caller
// contract inside the builder and archive I/O.
func (p *Processor) Process(ctx context.Context, rawText string) (entity.Report, error) {
	p.Logger.Info("pipeline.start",
		"bytes", len(rawText),
		"text_confidence", ingest.TextConfidence(rawText),
	)

	rec := p.Extractor.Extract(rawText)
	snap := p.Catalog.Current()
	issues := validate.Run(rec, snap)
	suggestions, disposition := p.Advisor.Advise(rec, issues, snap)

	rep, err := p.Builder.Build(rec, issues, suggestions, disposition)
	if err != nil {
		return entity.Report{}, fmt.Errorf("build report: %w", err)
	}

	if p.Archive != nil {
		if err := p.Archive.Save(ctx, rep); err != nil {
			return entity.Report{}, fmt.Errorf("archive report: %w", err)
		}
	}

	p.Logger.Info("pipeline.ok",
		"report_id", rep.ID,
		"items", len(rec.Items),
		"issues", len(issues),
		"suggestions", len(suggestions),
		"disposition", disposition,
	)
	return rep, nil
}
