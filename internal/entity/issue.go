package entity

import "github.com/joseph-ayodele/docaudit/constants"

// ValidationIssue is one finding from the rule engine.
// LineIndex is nil for header-level issues.
type ValidationIssue struct {
	Severity  constants.Severity  `json:"severity"`
	Kind      constants.IssueKind `json:"kind"`
	LineIndex *int                `json:"line_index"`
	Field     *string             `json:"field"`
	Message   string              `json:"message"`
}

// Suggestion is a remediation hint derived from a ValidationIssue.
// ProposedValue is nil when the advisor can only explain, not fix.
type Suggestion struct {
	IssueKind     constants.IssueKind `json:"issue_kind"`
	LineIndex     *int                `json:"line_index"`
	ProposedValue *string             `json:"proposed_value"`
	Message       string              `json:"message"`
}
