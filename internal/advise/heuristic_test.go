package advise

import (
	"testing"
	"time"

	"github.com/joseph-ayodele/docaudit/constants"
	"github.com/joseph-ayodele/docaudit/internal/catalog"
	"github.com/joseph-ayodele/docaudit/internal/entity"
	"github.com/joseph-ayodele/docaudit/internal/validate"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testCatalog() catalog.Snapshot {
	max := 10
	return catalog.Snapshot{
		"X1": {SKU: "X1", Name: "Widget", MaxQuantity: &max},
		"X2": {SKU: "X2", Name: "Gasket"},
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func newAdvisor() *Heuristic {
	return NewHeuristic(Config{}).WithClock(fixedClock())
}

// Missing document date: the advisor proposes today's date, so the one
// error has a fix and the disposition is request_correction.
func TestMissingDateProposesToday(t *testing.T) {
	rec := entity.Extraction{
		DocumentID: strPtr("INV-1"),
		Items:      []entity.LineItem{{SKU: strPtr("X1"), Quantity: intPtr(5), LineIndex: 0}},
	}
	snap := testCatalog()
	issues := validate.Run(rec, snap)
	if len(issues) != 1 || issues[0].Kind != constants.IssueMissingHeaderField {
		t.Fatalf("setup: issues = %+v", issues)
	}

	sugs, disp := newAdvisor().Advise(rec, issues, snap)
	if disp != constants.DispositionRequestCorrection {
		t.Fatalf("disposition = %s, want request_correction", disp)
	}
	if len(sugs) != 1 {
		t.Fatalf("got %d suggestions, want 1: %+v", len(sugs), sugs)
	}
	if sugs[0].ProposedValue == nil || *sugs[0].ProposedValue != "2024-06-01" {
		t.Fatalf("proposed value = %v, want 2024-06-01", sugs[0].ProposedValue)
	}
}

// Quantity above the catalog ceiling: the advisor proposes capping to
// max_quantity.
func TestQuantityAnomalyProposesCap(t *testing.T) {
	rec := entity.Extraction{
		DocumentDate: strPtr("2024-05-12"),
		DocumentID:   strPtr("INV-1"),
		Items:        []entity.LineItem{{SKU: strPtr("X1"), Quantity: intPtr(50), LineIndex: 0}},
	}
	snap := testCatalog()
	issues := validate.Run(rec, snap)

	sugs, disp := newAdvisor().Advise(rec, issues, snap)
	var capSug *entity.Suggestion
	for i := range sugs {
		if sugs[i].IssueKind == constants.IssueQuantityAnomaly {
			capSug = &sugs[i]
		}
	}
	if capSug == nil {
		t.Fatalf("no suggestion for quantity_anomaly: %+v", sugs)
	}
	if capSug.ProposedValue == nil || *capSug.ProposedValue != "10" {
		t.Fatalf("proposed value = %v, want 10", capSug.ProposedValue)
	}
	if disp != constants.DispositionRequestCorrection {
		t.Fatalf("disposition = %s, want request_correction (warning only)", disp)
	}
}

// Item with a name but no sku: the advisor proposes the catalog entry
// whose name matches.
func TestMissingSKUProposedFromName(t *testing.T) {
	rec := entity.Extraction{
		DocumentDate: strPtr("2024-05-12"),
		DocumentID:   strPtr("INV-1"),
		Items:        []entity.LineItem{{Name: strPtr("Widget"), Quantity: intPtr(2), LineIndex: 0}},
	}
	snap := testCatalog()
	issues := validate.Run(rec, snap)

	sugs, _ := newAdvisor().Advise(rec, issues, snap)
	var skuSug *entity.Suggestion
	for i := range sugs {
		if sugs[i].IssueKind == constants.IssueMissingRequiredItemField {
			skuSug = &sugs[i]
		}
	}
	if skuSug == nil {
		t.Fatalf("no suggestion for the missing sku: %+v", sugs)
	}
	if skuSug.ProposedValue == nil || *skuSug.ProposedValue != "X1" {
		t.Fatalf("proposed value = %v, want X1", skuSug.ProposedValue)
	}
}

func TestMissingSKUWithoutNameGetsNoSuggestion(t *testing.T) {
	rec := entity.Extraction{
		DocumentDate: strPtr("2024-05-12"),
		DocumentID:   strPtr("INV-1"),
		Items:        []entity.LineItem{{Quantity: intPtr(2), LineIndex: 0}},
	}
	snap := testCatalog()
	issues := validate.Run(rec, snap)

	sugs, disp := newAdvisor().Advise(rec, issues, snap)
	for _, s := range sugs {
		if s.IssueKind == constants.IssueMissingRequiredItemField {
			t.Fatalf("unexpected suggestion for nameless item: %+v", s)
		}
	}
	// the sku error has no fix, so the document is rejected
	if disp != constants.DispositionReject {
		t.Fatalf("disposition = %s, want reject", disp)
	}
}

func TestUnknownSKUSuggestsClosest(t *testing.T) {
	rec := entity.Extraction{
		DocumentDate: strPtr("2024-05-12"),
		DocumentID:   strPtr("INV-1"),
		Items: []entity.LineItem{
			{SKU: strPtr("ZZ-9"), Name: strPtr("Widgit"), Quantity: intPtr(1), LineIndex: 0},
		},
	}
	snap := testCatalog()
	issues := validate.Run(rec, snap)

	sugs, _ := newAdvisor().Advise(rec, issues, snap)
	var unknownSug *entity.Suggestion
	for i := range sugs {
		if sugs[i].IssueKind == constants.IssueUnknownSKU {
			unknownSug = &sugs[i]
		}
	}
	if unknownSug == nil {
		t.Fatalf("no suggestion for unknown_sku: %+v", sugs)
	}
	if unknownSug.ProposedValue == nil || *unknownSug.ProposedValue != "X1" {
		t.Fatalf("proposed value = %v, want X1 (Widgit ~ Widget)", unknownSug.ProposedValue)
	}
}

func TestDuplicateSKUProposesMergedQuantity(t *testing.T) {
	rec := entity.Extraction{
		DocumentDate: strPtr("2024-05-12"),
		DocumentID:   strPtr("INV-1"),
		Items: []entity.LineItem{
			{SKU: strPtr("X1"), Quantity: intPtr(2), LineIndex: 0},
			{SKU: strPtr("X1"), Quantity: intPtr(3), LineIndex: 1},
		},
	}
	snap := testCatalog()
	issues := validate.Run(rec, snap)

	sugs, _ := newAdvisor().Advise(rec, issues, snap)
	var mergeSug *entity.Suggestion
	for i := range sugs {
		if sugs[i].IssueKind == constants.IssueDuplicateSKU {
			mergeSug = &sugs[i]
		}
	}
	if mergeSug == nil {
		t.Fatalf("no suggestion for duplicate_sku: %+v", sugs)
	}
	if mergeSug.ProposedValue == nil || *mergeSug.ProposedValue != "5" {
		t.Fatalf("proposed value = %v, want merged quantity 5", mergeSug.ProposedValue)
	}
}

func TestDispositionTable(t *testing.T) {
	noFix := entity.ValidationIssue{Severity: constants.SeverityError, Kind: constants.IssueNonPositiveQuantity}
	warning := entity.ValidationIssue{Severity: constants.SeverityWarning, Kind: constants.IssueNameMismatch}

	tests := []struct {
		name   string
		issues []entity.ValidationIssue
		fixed  []bool
		want   constants.Disposition
	}{
		{"no issues", nil, nil, constants.DispositionApprove},
		{"unfixed error", []entity.ValidationIssue{noFix}, []bool{false}, constants.DispositionReject},
		{"fixed error", []entity.ValidationIssue{noFix}, []bool{true}, constants.DispositionRequestCorrection},
		{"warnings only", []entity.ValidationIssue{warning}, []bool{false}, constants.DispositionRequestCorrection},
		{"fixed error plus warning", []entity.ValidationIssue{noFix, warning}, []bool{true, false}, constants.DispositionRequestCorrection},
		{"one fixed one unfixed error", []entity.ValidationIssue{noFix, noFix}, []bool{true, false}, constants.DispositionReject},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := derive(tc.issues, tc.fixed); got != tc.want {
				t.Fatalf("derive = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"widget", "Widget", 1, 1},
		{"widgit", "widget", 0.8, 0.9},
		{"widget", "gasket", 0, 0.5},
		{"", "widget", 0, 0},
	}
	for _, tc := range tests {
		got := similarity(tc.a, tc.b)
		if got < tc.min || got > tc.max {
			t.Fatalf("similarity(%q, %q) = %f, want in [%f, %f]", tc.a, tc.b, got, tc.min, tc.max)
		}
	}
}

func TestClosestMatchIsDeterministic(t *testing.T) {
	// two entries with equally similar names must resolve the same way
	// on every run regardless of map iteration order
	snap := catalog.Snapshot{
		"A1": {SKU: "A1", Name: "Cable"},
		"B1": {SKU: "B1", Name: "Cable"},
	}
	first, ok := closestByName("cable", snap, 0.5)
	if !ok {
		t.Fatalf("no match found")
	}
	for i := 0; i < 10; i++ {
		next, ok := closestByName("cable", snap, 0.5)
		if !ok || next.SKU != first.SKU {
			t.Fatalf("tie resolved differently between runs: %s vs %s", first.SKU, next.SKU)
		}
	}
	if first.SKU != "A1" {
		t.Fatalf("tie should resolve to lowest sku, got %s", first.SKU)
	}
}
