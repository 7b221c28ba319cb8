package report

import (
	"encoding/json"
	"fmt"

	"github.com/joseph-ayodele/docaudit/internal/entity"
)

// CanonicalJSON serializes a report to its canonical form: fixed key
// order (struct order), two-space indentation, explicit nulls for
// absent optionals. The same report always yields the same bytes.
func CanonicalJSON(rep entity.Report) ([]byte, error) {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return b, nil
}

// Parse reads canonical JSON back into a report. Round-tripping a
// built report through CanonicalJSON and Parse yields field-for-field
// equality.
func Parse(data []byte) (entity.Report, error) {
	var rep entity.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return entity.Report{}, fmt.Errorf("unmarshal report: %w", err)
	}
	return rep, nil
}
