package classifier

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTabulate(t *testing.T) {
	labels := []string{"cardio ward", "ITU", "mystery dept"}
	results := []CallResult{
		{Payloads: []json.RawMessage{json.RawMessage(`{"category":"Cardiology"}`)}},
		{Text: "Intensive Care Unit"},
		{Err: errors.New("rate limit exceeded")},
	}

	rows, err := Tabulate(labels, results)
	if err != nil {
		t.Fatalf("Tabulate returned error: %v", err)
	}

	if len(rows) != len(labels) {
		t.Fatalf("expected %d rows, got %d", len(labels), len(rows))
	}

	tests := []struct {
		index  int
		label  string
		result string
		failed bool
	}{
		{index: 0, label: "cardio ward", result: "Cardiology", failed: false},
		{index: 1, label: "ITU", result: "Intensive Care Unit", failed: false},
		{index: 2, label: "mystery dept", result: "", failed: true},
	}

	for _, tt := range tests {
		row := rows[tt.index]
		if row.Label != tt.label {
			t.Errorf("row %d label = %q, expected %q", tt.index, row.Label, tt.label)
		}
		if row.Result != tt.result {
			t.Errorf("row %d result = %q, expected %q", tt.index, row.Result, tt.result)
		}
		if row.Failed != tt.failed {
			t.Errorf("row %d failed = %v, expected %v", tt.index, row.Failed, tt.failed)
		}
	}
}

func TestTabulateLengthMismatch(t *testing.T) {
	if _, err := Tabulate([]string{"a", "b"}, []CallResult{{Text: "x"}}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestRenderMultiplePayloads(t *testing.T) {
	result := CallResult{
		Payloads: []json.RawMessage{
			json.RawMessage(`{"category":"Cardiology"}`),
			json.RawMessage(`{"category":"Coronary Care Unit"}`),
		},
	}

	if got := result.Render(); got != "Cardiology; Coronary Care Unit" {
		t.Errorf("Render() = %q, expected %q", got, "Cardiology; Coronary Care Unit")
	}
}

func TestRenderMalformedPayloadKeptVerbatim(t *testing.T) {
	result := CallResult{
		Payloads: []json.RawMessage{json.RawMessage(`{"unit":`)},
	}

	if got := result.Render(); got != `{"unit":` {
		t.Errorf("Render() = %q, expected the raw payload", got)
	}
}
