package advise

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// Config holds thresholds for the heuristic advisor. The similarity
// cutoff mirrors the matcher tolerance a reviewer would accept; it is
// tunable because it is a business heuristic, not a fixed contract.
type Config struct {
	SimilarityCutoff float64 // default 0.5
}

// Heuristic is the rule-driven Advisor. For each issue it produces at
// most one suggestion via a fixed mapping, then derives the disposition
// purely from the issue list and which issues got a proposed fix.
type Heuristic struct {
	cfg Config
	now func() time.Time
}

func NewHeuristic(cfg Config) *Heuristic {
	if cfg.SimilarityCutoff <= 0 {
		cfg.SimilarityCutoff = 0.5
	}
	return &Heuristic{cfg: cfg, now: time.Now}
}

// WithClock pins the advisor's clock; used by tests and anywhere a
// reproducible "today" is needed.
func (h *Heuristic) WithClock(now func() time.Time) *Heuristic {
	h.now = now
	return h
}

func (h *Heuristic) Advise(rec entity.Extraction, issues []entity.ValidationIssue, snap catalog.Snapshot) ([]entity.Suggestion, constants.Disposition) {
	suggestions := []entity.Suggestion{}
	fixed := make([]bool, len(issues))

	for i, issue := range issues {
		sug, ok := h.suggest(rec, issue, snap)
		if !ok {
			continue
		}
		suggestions = append(suggestions, sug)
		fixed[i] = sug.ProposedValue != nil
	}

	return suggestions, derive(issues, fixed)
}

// suggest is the fixed issue-to-suggestion mapping. Returning ok=false
// means the issue gets no suggestion at all.
func (h *Heuristic) suggest(rec entity.Extraction, issue entity.ValidationIssue, snap catalog.Snapshot) (entity.Suggestion, bool) {
	sug := entity.Suggestion{
		IssueKind: issue.Kind,
		LineIndex: issue.LineIndex,
	}

	switch issue.Kind {
	case constants.IssueMissingHeaderField:
		if issue.Field != nil && *issue.Field == "document_date" {
			today := h.now().UTC().Format("2006-01-02")
			sug.ProposedValue = &today
			sug.Message = fmt.Sprintf("no document date found; defaulting to today (%s), confirm against the source document", today)
			return sug, true
		}
		sug.Message = "provide the missing header field before approval"
		return sug, true

	case constants.IssueMissingRequiredItemField:
		if issue.Field != nil && *issue.Field == "sku" {
			item, ok := itemAt(rec, issue.LineIndex)
			if !ok || item.Name == nil {
				return entity.Suggestion{}, false
			}
			entry, ok := closestByName(*item.Name, snap, h.cfg.SimilarityCutoff)
			if !ok {
				return entity.Suggestion{}, false
			}
			sku := entry.SKU
			sug.ProposedValue = &sku
			sug.Message = fmt.Sprintf("item name %q matches catalog entry %q; use sku %s", *item.Name, entry.Name, entry.SKU)
			return sug, true
		}
		sug.Message = "fill in the missing item field before approval"
		return sug, true

	case constants.IssueUnknownSKU:
		item, ok := itemAt(rec, issue.LineIndex)
		if !ok {
			return entity.Suggestion{}, false
		}
		entry, found := h.closestForItem(item, snap)
		if !found {
			sug.Message = "sku is not in the catalog and no close match was found"
			return sug, true
		}
		sku := entry.SKU
		sug.ProposedValue = &sku
		sug.Message = fmt.Sprintf("did you mean sku %s (%s)?", entry.SKU, entry.Name)
		return sug, true

	case constants.IssueQuantityAnomaly:
		item, ok := itemAt(rec, issue.LineIndex)
		if !ok || item.SKU == nil {
			return entity.Suggestion{}, false
		}
		entry, found := snap.Lookup(*item.SKU)
		if !found || entry.MaxQuantity == nil {
			return entity.Suggestion{}, false
		}
		capped := strconv.Itoa(*entry.MaxQuantity)
		sug.ProposedValue = &capped
		sug.Message = fmt.Sprintf("cap quantity at the usual max of %d, or confirm the order with the supplier", *entry.MaxQuantity)
		return sug, true

	case constants.IssueDuplicateSKU:
		item, ok := itemAt(rec, issue.LineIndex)
		if !ok || item.SKU == nil {
			return entity.Suggestion{}, false
		}
		total, lines := mergeQuantities(rec, *item.SKU)
		merged := strconv.Itoa(total)
		sug.ProposedValue = &merged
		sug.Message = fmt.Sprintf("merge the %d lines for sku %s into one line with quantity %d", lines, *item.SKU, total)
		return sug, true

	default:
		// non_positive_quantity, name_mismatch and anything future:
		// explain, propose nothing.
		sug.Message = explain(issue)
		return sug, true
	}
}

// closestForItem prefers matching on the item name when one exists,
// falling back to matching the unknown code against catalog SKUs.
func (h *Heuristic) closestForItem(item entity.LineItem, snap catalog.Snapshot) (entity.CatalogEntry, bool) {
	if item.Name != nil {
		if entry, ok := closestByName(*item.Name, snap, h.cfg.SimilarityCutoff); ok {
			return entry, true
		}
	}
	if item.SKU != nil {
		return closestBySKU(*item.SKU, snap, h.cfg.SimilarityCutoff)
	}
	return entity.CatalogEntry{}, false
}

func explain(issue entity.ValidationIssue) string {
	switch issue.Kind {
	case constants.IssueNonPositiveQuantity:
		return "correct the quantity to a positive number"
	case constants.IssueNameMismatch:
		return "the item name disagrees with the catalog; confirm which is right"
	default:
		return issue.Message
	}
}

func itemAt(rec entity.Extraction, idx *int) (entity.LineItem, bool) {
	if idx == nil || *idx < 0 || *idx >= len(rec.Items) {
		return entity.LineItem{}, false
	}
	return rec.Items[*idx], true
}

func mergeQuantities(rec entity.Extraction, sku string) (total, lines int) {
	key := catalog.NormalizeSKU(sku)
	for _, item := range rec.Items {
		if item.SKU == nil || catalog.NormalizeSKU(*item.SKU) != key {
			continue
		}
		lines++
		if item.Quantity != nil {
			total += *item.Quantity
		}
	}
	return total, lines
}

// derive computes the disposition purely from the issue list and which
// issues carry a proposed fix:
//
//	reject             any error without a proposed fix
//	request_correction issues exist, every error has a proposed fix
//	approve            no issues at all
func derive(issues []entity.ValidationIssue, fixed []bool) constants.Disposition {
	if len(issues) == 0 {
		return constants.DispositionApprove
	}
	for i, issue := range issues {
		if issue.Severity == constants.SeverityError && !fixed[i] {
			return constants.DispositionReject
		}
	}
	return constants.DispositionRequestCorrection
}
