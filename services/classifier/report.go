package classifier

import (
	"fmt"

	"github.com/jacksandom/unitmapper/models"
)

// Tabulate zips the ordered input labels with the ordered call results into
// report rows, one row per label. No filtering, no deduplication, no
// reordering; the sequences must be equal length.
func Tabulate(labels []string, results []CallResult) ([]models.ReportRow, error) {
	if len(labels) != len(results) {
		return nil, fmt.Errorf("label count %d does not match result count %d", len(labels), len(results))
	}

	rows := make([]models.ReportRow, len(labels))
	for i, label := range labels {
		rows[i] = models.ReportRow{
			Label:  label,
			Result: results[i].Render(),
			Failed: results[i].Failed(),
		}
	}

	return rows, nil
}
