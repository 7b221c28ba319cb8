package advise

import (
	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// Advisor is the interface the pipeline depends on. A model-backed
// implementation can replace the heuristic one without touching the
// validator or the report contract.
type Advisor interface {
	Advise(rec entity.Extraction, issues []entity.ValidationIssue, snap catalog.Snapshot) ([]entity.Suggestion, constants.Disposition)
}
