package constants

// Severity classifies how serious a validation issue is.
type Severity string

// Stable values (these exact strings appear in report JSON).
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Rank gives the sort position of a severity: errors sort before warnings.
func (s Severity) Rank() int {
	if s == SeverityError {
		return 0
	}
	return 1
}

// IssueKind is the canonical kind for a validation issue.
type IssueKind string

// Stable values (store these exact strings in report JSON).
const (
	IssueMissingHeaderField       IssueKind = "missing_header_field"
	IssueMissingRequiredItemField IssueKind = "missing_required_item_field"
	IssueNonPositiveQuantity      IssueKind = "non_positive_quantity"
	IssueUnknownSKU               IssueKind = "unknown_sku"
	IssueNameMismatch             IssueKind = "name_mismatch"
	IssueQuantityAnomaly          IssueKind = "quantity_anomaly"
	IssueDuplicateSKU             IssueKind = "duplicate_sku"
)
