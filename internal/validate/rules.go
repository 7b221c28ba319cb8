package validate

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// rule is one independent check over the whole record. Rules never
// short-circuit each other; every applicable rule fires on every run.
type rule func(rec entity.Extraction, snap catalog.Snapshot) []entity.ValidationIssue

var rules = []rule{
	checkHeaderFields,
	checkRequiredItemFields,
	checkQuantityPositive,
	checkKnownSKU,
	checkNameMatchesCatalog,
	checkQuantityCeiling,
	checkDuplicateSKUs,
}

func checkHeaderFields(rec entity.Extraction, _ catalog.Snapshot) []entity.ValidationIssue {
	var out []entity.ValidationIssue
	if rec.DocumentDate == nil {
		out = append(out, headerIssue("document_date"))
	}
	if rec.DocumentID == nil {
		out = append(out, headerIssue("document_id"))
	}
	return out
}

func headerIssue(field string) entity.ValidationIssue {
	f := field
	return entity.ValidationIssue{
		Severity: constants.SeverityError,
		Kind:     constants.IssueMissingHeaderField,
		Field:    &f,
		Message:  fmt.Sprintf("missing required header field %s", field),
	}
}

func checkRequiredItemFields(rec entity.Extraction, _ catalog.Snapshot) []entity.ValidationIssue {
	var out []entity.ValidationIssue
	for _, item := range rec.Items {
		if item.SKU == nil {
			out = append(out, itemIssue(item, constants.IssueMissingRequiredItemField,
				constants.SeverityError, "sku",
				fmt.Sprintf("item %d has no sku", item.LineIndex)))
		}
		if item.Quantity == nil {
			out = append(out, itemIssue(item, constants.IssueMissingRequiredItemField,
				constants.SeverityError, "quantity",
				fmt.Sprintf("item %d has no quantity", item.LineIndex)))
		}
	}
	return out
}

func checkQuantityPositive(rec entity.Extraction, _ catalog.Snapshot) []entity.ValidationIssue {
	var out []entity.ValidationIssue
	for _, item := range rec.Items {
		if item.Quantity != nil && *item.Quantity <= 0 {
			out = append(out, itemIssue(item, constants.IssueNonPositiveQuantity,
				constants.SeverityError, "quantity",
				fmt.Sprintf("item %d quantity must be > 0, got %d", item.LineIndex, *item.Quantity)))
		}
	}
	return out
}

func checkKnownSKU(rec entity.Extraction, snap catalog.Snapshot) []entity.ValidationIssue {
	var out []entity.ValidationIssue
	for _, item := range rec.Items {
		if item.SKU == nil {
			continue
		}
		if _, ok := snap.Lookup(*item.SKU); !ok {
			out = append(out, itemIssue(item, constants.IssueUnknownSKU,
				constants.SeverityError, "sku",
				fmt.Sprintf("sku %s is not in the catalog", *item.SKU)))
		}
	}
	return out
}

func checkNameMatchesCatalog(rec entity.Extraction, snap catalog.Snapshot) []entity.ValidationIssue {
	var out []entity.ValidationIssue
	for _, item := range rec.Items {
		if item.SKU == nil || item.Name == nil {
			continue
		}
		entry, ok := snap.Lookup(*item.SKU)
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(*item.Name), entry.Name) {
			out = append(out, itemIssue(item, constants.IssueNameMismatch,
				constants.SeverityWarning, "name",
				fmt.Sprintf("item name %q differs from catalog name %q for sku %s",
					*item.Name, entry.Name, entry.SKU)))
		}
	}
	return out
}

func checkQuantityCeiling(rec entity.Extraction, snap catalog.Snapshot) []entity.ValidationIssue {
	var out []entity.ValidationIssue
	for _, item := range rec.Items {
		if item.SKU == nil || item.Quantity == nil {
			continue
		}
		entry, ok := snap.Lookup(*item.SKU)
		if !ok || entry.MaxQuantity == nil {
			continue
		}
		if *item.Quantity > *entry.MaxQuantity {
			out = append(out, itemIssue(item, constants.IssueQuantityAnomaly,
				constants.SeverityWarning, "quantity",
				fmt.Sprintf("quantity %d exceeds usual max %d for sku %s",
					*item.Quantity, *entry.MaxQuantity, entry.SKU)))
		}
	}
	return out
}

// checkDuplicateSKUs emits one warning per duplicated sku, attributed
// to the first occurrence and naming every line it appears on.
func checkDuplicateSKUs(rec entity.Extraction, _ catalog.Snapshot) []entity.ValidationIssue {
	byKey := map[string][]int{}
	var order []string
	for _, item := range rec.Items {
		if item.SKU == nil {
			continue
		}
		key := catalog.NormalizeSKU(*item.SKU)
		if len(byKey[key]) == 0 {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], item.LineIndex)
	}

	var out []entity.ValidationIssue
	for _, key := range order {
		lines := byKey[key]
		if len(lines) < 2 {
			continue
		}
		first := lines[0]
		f := "sku"
		out = append(out, entity.ValidationIssue{
			Severity:  constants.SeverityWarning,
			Kind:      constants.IssueDuplicateSKU,
			LineIndex: &first,
			Field:     &f,
			Message:   fmt.Sprintf("sku %s appears on lines %s", key, joinInts(lines)),
		})
	}
	return out
}

func itemIssue(item entity.LineItem, kind constants.IssueKind, sev constants.Severity, field, msg string) entity.ValidationIssue {
	idx := item.LineIndex
	f := field
	return entity.ValidationIssue{
		Severity:  sev,
		Kind:      kind,
		LineIndex: &idx,
		Field:     &f,
		Message:   msg,
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ", ")
}
