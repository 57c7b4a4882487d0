package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/jacksandom/unitmapper/config"
	"github.com/jacksandom/unitmapper/models"
	"github.com/jacksandom/unitmapper/services"
	"github.com/jacksandom/unitmapper/services/categoryindex"

	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
)

// Service maps free-text delivery unit labels onto canonical categories by
// calling a hosted chat-completion endpoint, either with an unconstrained
// prompt or through the enum-constrained assign_category tool.
type Service struct {
	llm        llms.Model
	categories *services.CategoryService
	index      *categoryindex.Service

	model       string
	temperature float64
	maxTokens   int
	workers     int
	retry       RetryPolicy
}

// NewService builds the classifier from configuration. index may be nil, in
// which case the free-text prompt carries the full canonical list instead of
// a retrieved shortlist.
func NewService(cfg *config.Config, categories *services.CategoryService, index *categoryindex.Service) (*Service, error) {
	llm, err := newModel(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		llm:         llm,
		categories:  categories,
		index:       index,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		workers:     cfg.Workers,
		retry: RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			MinBackoff:  cfg.MinBackoff,
			MaxBackoff:  cfg.MaxBackoff,
		},
	}, nil
}

// ClassifyFreeText runs the unconstrained pass for one label. The model is
// asked in prose and answers in prose; whatever comes back is returned
// verbatim for later normalization.
func (s *Service) ClassifyFreeText(ctx context.Context, label string) CallResult {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, freeTextSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(freeTextUserPrompt, label, s.candidateList(ctx, label))),
	}

	call := withRetry(s.retry, func(ctx context.Context) (CallResult, error) {
		return s.classifyOnce(ctx, messages,
			llms.WithTemperature(s.temperature),
			llms.WithMaxTokens(s.maxTokens))
	})

	return call(ctx)
}

// ClassifyStructured runs the schema-constrained pass for one label. The
// assign_category tool carries the closed canonical enum, so the serving
// layer rejects any category outside the set.
func (s *Service) ClassifyStructured(ctx context.Context, label string) CallResult {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, structuredSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(structuredUserPrompt, label)),
	}

	call := withRetry(s.retry, func(ctx context.Context) (CallResult, error) {
		return s.classifyOnce(ctx, messages,
			llms.WithTemperature(s.temperature),
			llms.WithMaxTokens(s.maxTokens),
			llms.WithTools(assignCategoryTools()),
			llms.WithToolChoice("required"))
	})

	return call(ctx)
}

// ClassifyBatch fans the chosen pass out over the ordered label sequence
// with the configured worker pool and tabulates the results. One label's
// failure never aborts the rest; its row carries the failure marker.
func (s *Service) ClassifyBatch(ctx context.Context, labels []string, mode string) (*models.ClassificationReport, error) {
	log.Printf("[INFO] Starting %s classification batch for %d labels with %d workers", mode, len(labels), s.workers)

	var classify func(context.Context, string) CallResult
	switch mode {
	case models.ModeFreeText:
		classify = s.ClassifyFreeText
	case models.ModeStructured:
		classify = s.ClassifyStructured
	default:
		return nil, fmt.Errorf("unknown classification mode: %q", mode)
	}

	var done atomic.Int64
	total := len(labels)

	results := mapOrdered(ctx, s.workers, labels, func(ctx context.Context, label string) CallResult {
		result := classify(ctx, label)
		log.Printf("[INFO] Classified %d/%d labels", done.Add(1), total)
		return result
	})

	rows, err := Tabulate(labels, results)
	if err != nil {
		return nil, err
	}

	if mode == models.ModeFreeText {
		s.normalizeRows(rows)
	}

	failed := lo.CountBy(rows, func(row models.ReportRow) bool { return row.Failed })
	log.Printf("[INFO] Classification batch finished: %d rows, %d failed", len(rows), failed)

	return &models.ClassificationReport{
		Mode:  mode,
		Model: s.model,
		Rows:  rows,
	}, nil
}

// classifyOnce performs exactly one round trip. All retry logic lives in the
// wrapper; all error swallowing lives in the public operations above.
func (s *Service) classifyOnce(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (CallResult, error) {
	resp, err := s.llm.GenerateContent(ctx, messages, options...)
	if err != nil {
		return CallResult{}, err
	}

	if len(resp.Choices) == 0 {
		return CallResult{}, fmt.Errorf("no choices in model response")
	}

	choice := resp.Choices[0]

	if len(choice.ToolCalls) > 0 {
		payloads := lo.Map(choice.ToolCalls, func(toolCall llms.ToolCall, _ int) json.RawMessage {
			return json.RawMessage(toolCall.FunctionCall.Arguments)
		})
		return CallResult{Payloads: payloads}, nil
	}

	return CallResult{Text: choice.Content}, nil
}

// candidateList returns the category list for the free-text prompt: a
// retrieved shortlist when the index is available, the full canonical set
// otherwise.
func (s *Service) candidateList(ctx context.Context, label string) string {
	categories := s.categories.Categories()

	if s.index != nil {
		shortlist, err := s.index.QuerySimilar(ctx, label, 10)
		if err != nil {
			log.Printf("[WARN] Category shortlist lookup failed for %q, using full list: %v", label, err)
		} else if len(shortlist) > 0 {
			categories = shortlist
		}
	}

	return strings.Join(categories, "\n")
}

func (s *Service) normalizeRows(rows []models.ReportRow) {
	for i := range rows {
		if rows[i].Failed || rows[i].Result == "" {
			continue
		}
		if match := s.categories.MatchCategory(rows[i].Result); match.Matched {
			rows[i].Normalized = match.Category
		}
	}
}
