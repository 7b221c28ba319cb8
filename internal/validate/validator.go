package validate

import (
	"sort"

	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// Run evaluates the fixed rule set against a record and a catalog
// snapshot. It is stateless and idempotent: the same inputs always
// produce the same ordered issue list.
//
// Ordering contract: line_index ascending with header-level (nil)
// issues first, then errors before warnings, then kind name. The
// advisor and the report both rely on this order.
func Run(rec entity.Extraction, snap catalog.Snapshot) []entity.ValidationIssue {
	issues := []entity.ValidationIssue{}
	for _, r := range rules {
		issues = append(issues, r(rec, snap)...)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return less(issues[i], issues[j])
	})
	return issues
}

func less(a, b entity.ValidationIssue) bool {
	ai, bi := lineRank(a.LineIndex), lineRank(b.LineIndex)
	if ai != bi {
		return ai < bi
	}
	if a.Severity.Rank() != b.Severity.Rank() {
		return a.Severity.Rank() < b.Severity.Rank()
	}
	return a.Kind < b.Kind
}

// lineRank places header-level issues (nil line) before any item line.
func lineRank(idx *int) int {
	if idx == nil {
		return -1
	}
	return *idx
}
