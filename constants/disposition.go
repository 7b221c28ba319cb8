package constants

// Disposition is the recommended handling for a reviewed document.
// It is always derived from the issue list, never set by a caller.
type Disposition string

const (
	DispositionApprove           Disposition = "approve"
	DispositionRequestCorrection Disposition = "request_correction"
	DispositionReject            Disposition = "reject"
)
