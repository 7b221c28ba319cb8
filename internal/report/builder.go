package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/common"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// Builder assembles the immutable report aggregate. It never fails on
// minimal input; the only error path is a broken caller contract
// (an issue or suggestion pointing at a line that does not exist).
type Builder struct {
	now func() time.Time
}

func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// WithClock pins the generation timestamp source.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

func (b *Builder) Build(rec entity.Extraction, issues []entity.ValidationIssue, suggestions []entity.Suggestion, disp constants.Disposition) (entity.Report, error) {
	if err := checkLineRefs(rec, issues, suggestions); err != nil {
		return entity.Report{}, err
	}

	rep := entity.Report{
		ID:          uuid.New(),
		Extraction:  cloneExtraction(rec),
		Issues:      append([]entity.ValidationIssue{}, issues...),
		Suggestions: append([]entity.Suggestion{}, suggestions...),
		Disposition: disp,
		Summary:     summarize(rec, issues, disp),
		// Truncate drops the monotonic reading so a report that went
		// through canonical JSON compares equal to the original.
		GeneratedAt: b.now().UTC().Truncate(time.Second),
	}
	return rep, nil
}

// checkLineRefs enforces the attribution invariants: items are indexed
// by position, and every line-scoped issue or suggestion points at a
// real item. A violation is a defect in the calling code, not bad data.
func checkLineRefs(rec entity.Extraction, issues []entity.ValidationIssue, suggestions []entity.Suggestion) error {
	for i, item := range rec.Items {
		if item.LineIndex != i {
			return common.ContractViolation("item at position %d carries line_index %d", i, item.LineIndex)
		}
	}
	for _, issue := range issues {
		if issue.LineIndex != nil && (*issue.LineIndex < 0 || *issue.LineIndex >= len(rec.Items)) {
			return common.ContractViolation("issue %s references line_index %d outside %d items", issue.Kind, *issue.LineIndex, len(rec.Items))
		}
	}
	for _, sug := range suggestions {
		if sug.LineIndex != nil && (*sug.LineIndex < 0 || *sug.LineIndex >= len(rec.Items)) {
			return common.ContractViolation("suggestion %s references line_index %d outside %d items", sug.IssueKind, *sug.LineIndex, len(rec.Items))
		}
	}
	return nil
}

// summarize writes the short extractive summary line.
func summarize(rec entity.Extraction, issues []entity.ValidationIssue, disp constants.Disposition) string {
	errs, warns := 0, 0
	for _, issue := range issues {
		if issue.Severity == constants.SeverityError {
			errs++
		} else {
			warns++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Document %s dated %s from %s with %d item(s)",
		orUnknown(rec.DocumentID), orUnknown(rec.DocumentDate), orUnknown(rec.Supplier), len(rec.Items))
	if len(issues) == 0 {
		sb.WriteString("; no issues found")
	} else {
		fmt.Fprintf(&sb, "; %d error(s), %d warning(s)", errs, warns)
	}
	fmt.Fprintf(&sb, "; recommended action: %s.", disp)
	return sb.String()
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "unknown"
	}
	return *s
}

func cloneExtraction(rec entity.Extraction) entity.Extraction {
	out := rec
	out.Items = append([]entity.LineItem{}, rec.Items...)
	return out
}
