package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docaudit/constants"
)

// Report is the immutable aggregate produced once per pipeline run.
// Re-running the pipeline produces a new Report with a new ID; an
// already-built Report is never mutated.
type Report struct {
	ID          uuid.UUID             `json:"report_id"`
	Extraction  Extraction            `json:"extraction"`
	Issues      []ValidationIssue     `json:"issues"`
	Suggestions []Suggestion          `json:"suggestions"`
	Disposition constants.Disposition `json:"disposition"`
	Summary     string                `json:"summary"`
	GeneratedAt time.Time             `json:"generated_at"`
}
