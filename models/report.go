package models

import "time"

const (
	ModeFreeText   = "freetext"
	ModeStructured = "structured"
)

// ReportRow pairs one input label with the model's result for it. A row with
// Failed set means the call for that label gave up (after retries, if the
// failure was a rate limit); Result empty with Failed unset means the model
// legitimately returned nothing.
type ReportRow struct {
	Label      string `json:"label"`
	Result     string `json:"result"`
	Normalized string `json:"normalized,omitempty"`
	Failed     bool   `json:"failed"`
}

// ClassificationReport is the ordered two-column table handed to display
// collaborators. Row i always corresponds to input label i.
type ClassificationReport struct {
	Mode  string      `json:"mode"`
	Model string      `json:"model"`
	Rows  []ReportRow `json:"rows"`
}

// ClassificationRun is a stored report with bookkeeping for later review.
type ClassificationRun struct {
	ID        int         `json:"id"`
	Mode      string      `json:"mode"`
	Model     string      `json:"model"`
	Rows      []ReportRow `json:"rows"`
	CreatedAt time.Time   `json:"created_at"`
}

type ClassifyRequest struct {
	Labels []string `json:"labels"`
	Mode   string   `json:"mode"`
}

type ClassifyResponse struct {
	Report *ClassificationReport `json:"report"`
	RunID  int                   `json:"run_id,omitempty"`
}
