package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jacksandom/unitmapper/models"
	"github.com/jacksandom/unitmapper/services"

	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	generate func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return f.generate(ctx, messages, options...)
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := f.generate(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func newTestService(llm llms.Model) *Service {
	return &Service{
		llm:        llm,
		categories: services.NewCategoryService(),
		model:      "test-model",
		maxTokens:  64,
		workers:    4,
		retry: RetryPolicy{
			MaxAttempts: 3,
			MinBackoff:  time.Millisecond,
			MaxBackoff:  2 * time.Millisecond,
		},
	}
}

func toolCallResponse(arguments ...string) *llms.ContentResponse {
	choice := &llms.ContentChoice{}
	for _, args := range arguments {
		choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
			ID:   "call_1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      assignCategoryToolName,
				Arguments: args,
			},
		})
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{choice}}
}

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func TestClassifyStructuredSingleToolCall(t *testing.T) {
	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return toolCallResponse(`{"category":"Cardiology"}`), nil
		},
	})

	result := service.ClassifyStructured(context.Background(), "cardio ward 3B")

	if result.Failed() {
		t.Fatalf("expected success, got failure: %v", result.Err)
	}

	// Exactly one invocation yields the bare payload, not a list.
	payload, ok := result.Value().(json.RawMessage)
	if !ok {
		t.Fatalf("expected single json.RawMessage payload, got %T", result.Value())
	}

	var params AssignCategoryParams
	if err := json.Unmarshal(payload, &params); err != nil {
		t.Fatalf("failed to unmarshal payload: %v", err)
	}
	if params.Category != "Cardiology" {
		t.Errorf("expected category %q, got %q", "Cardiology", params.Category)
	}
}

func TestClassifyStructuredMultipleToolCalls(t *testing.T) {
	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return toolCallResponse(`{"category":"Cardiology"}`, `{"category":"Coronary Care Unit"}`), nil
		},
	})

	result := service.ClassifyStructured(context.Background(), "cardiac care")

	payloads, ok := result.Value().([]json.RawMessage)
	if !ok {
		t.Fatalf("expected payload list, got %T", result.Value())
	}
	if len(payloads) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(payloads))
	}

	expected := []string{"Cardiology", "Coronary Care Unit"}
	for i, payload := range payloads {
		var params AssignCategoryParams
		if err := json.Unmarshal(payload, &params); err != nil {
			t.Fatalf("failed to unmarshal payload %d: %v", i, err)
		}
		if params.Category != expected[i] {
			t.Errorf("payload %d: expected category %q, got %q", i, expected[i], params.Category)
		}
	}
}

func TestClassifyFreeTextReturnsContent(t *testing.T) {
	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return textResponse("Intensive Care Unit"), nil
		},
	})

	result := service.ClassifyFreeText(context.Background(), "ITU bed 4")

	if result.Failed() {
		t.Fatalf("expected success, got failure: %v", result.Err)
	}
	if text, ok := result.Value().(string); !ok || text != "Intensive Care Unit" {
		t.Errorf("expected text %q, got %v", "Intensive Care Unit", result.Value())
	}
}

func TestClassifyFailureBecomesMarker(t *testing.T) {
	attempts := 0
	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			attempts++
			return nil, errors.New("401 Unauthorized")
		},
	})

	result := service.ClassifyStructured(context.Background(), "cardio ward")

	if !result.Failed() {
		t.Fatal("expected failure marker for transport error")
	}
	if result.Value() != nil {
		t.Errorf("expected nil value for failed result, got %v", result.Value())
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt for non-rate-limit failure, got %d", attempts)
	}
}

func TestClassifyBatchFailureIsolation(t *testing.T) {
	labels := []string{
		"cardio ward", "ITU", "a&e majors", "broken ward", "labour suite",
		"xray dept", "childrens ward", "eye clinic", "physio gym", "stroke rehab",
	}

	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			if strings.Contains(messageText(messages[len(messages)-1]), "broken ward") {
				return nil, errors.New("500 Internal Server Error")
			}
			return toolCallResponse(`{"category":"Cardiology"}`), nil
		},
	})

	report, err := service.ClassifyBatch(context.Background(), labels, models.ModeStructured)
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}

	if len(report.Rows) != len(labels) {
		t.Fatalf("expected %d rows, got %d", len(labels), len(report.Rows))
	}

	failed := 0
	for i, row := range report.Rows {
		if row.Label != labels[i] {
			t.Errorf("row %d has label %q, expected %q", i, row.Label, labels[i])
		}
		if row.Failed {
			failed++
			if row.Label != "broken ward" {
				t.Errorf("unexpected failed row for label %q", row.Label)
			}
			if row.Result != "" {
				t.Errorf("failed row should have empty result, got %q", row.Result)
			}
		}
	}

	if failed != 1 {
		t.Errorf("expected exactly 1 failed row, got %d", failed)
	}
}

func TestClassifyBatchNormalizesFreeText(t *testing.T) {
	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return textResponse(`"cardiology."`), nil
		},
	})

	report, err := service.ClassifyBatch(context.Background(), []string{"cardio ward"}, models.ModeFreeText)
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}

	if report.Rows[0].Normalized != "Cardiology" {
		t.Errorf("expected normalized category %q, got %q", "Cardiology", report.Rows[0].Normalized)
	}
}

func TestClassifyBatchUnknownMode(t *testing.T) {
	service := newTestService(&fakeModel{
		generate: func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
			return textResponse("unused"), nil
		},
	})

	if _, err := service.ClassifyBatch(context.Background(), []string{"x"}, "bogus"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
