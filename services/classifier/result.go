package classifier

import (
	"encoding/json"
	"strings"
)

// CallResult is the outcome of one classification call. Exactly one of three
// shapes applies: a failure (Err set), one or more structured tool payloads,
// or free text. Keeping the failure explicit lets callers tell a failed call
// apart from a legitimately empty answer.
type CallResult struct {
	Text     string
	Payloads []json.RawMessage
	Err      error
}

func failure(err error) CallResult {
	return CallResult{Err: err}
}

func (r CallResult) Failed() bool {
	return r.Err != nil
}

// Value returns the payload the way callers expect it: the single argument
// payload when exactly one tool invocation occurred, the ordered payload list
// when there were several, the free text otherwise, and nil on failure.
func (r CallResult) Value() any {
	switch {
	case r.Err != nil:
		return nil
	case len(r.Payloads) == 1:
		return r.Payloads[0]
	case len(r.Payloads) > 1:
		return r.Payloads
	default:
		return r.Text
	}
}

// Render flattens the result into a single report cell. Structured payloads
// are reduced to their category argument; a payload that does not parse is
// kept verbatim so schema violations stay visible in the report.
func (r CallResult) Render() string {
	if r.Err != nil {
		return ""
	}

	if len(r.Payloads) == 0 {
		return strings.TrimSpace(r.Text)
	}

	parts := make([]string, 0, len(r.Payloads))
	for _, payload := range r.Payloads {
		var params AssignCategoryParams
		if err := json.Unmarshal(payload, &params); err == nil && params.Category != "" {
			parts = append(parts, params.Category)
			continue
		}
		parts = append(parts, string(payload))
	}

	return strings.Join(parts, "; ")
}
