package classifier

import (
	"fmt"

	"github.com/jacksandom/unitmapper/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// newModel builds the chat-completion client for the configured provider.
// OpenAI-compatible serving endpoints (including hosted workspace endpoints)
// go through the openai provider with a base-URL override; Anthropic goes
// through the adapter in model_anthropic.go.
func newModel(cfg *config.Config) (llms.Model, error) {
	switch cfg.Provider {
	case "openai", "":
		opts := []openai.Option{
			openai.WithModel(cfg.Model),
			openai.WithToken(cfg.OpenAIAPIKey),
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}

		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return llm, nil

	case "anthropic":
		return newAnthropicModel(cfg.AnthropicAPIKey, cfg.Model)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}
