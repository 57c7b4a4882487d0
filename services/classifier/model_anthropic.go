package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tmc/langchaingo/llms"
)

// anthropicModel adapts the Anthropic Messages API to the llms.Model
// interface so the classifier works against either provider unchanged.
type anthropicModel struct {
	client *anthropic.Client
	model  string
}

func newAnthropicModel(apiKey, model string) (*anthropicModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &anthropicModel{
		client: &client,
		model:  model,
	}, nil
}

func (m *anthropicModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	model := m.model
	if opts.Model != "" {
		model = opts.Model
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	var system string
	var anthropicMessages []anthropic.MessageParam

	for _, msg := range messages {
		text := messageText(msg)
		switch msg.Role {
		case llms.ChatMessageTypeSystem:
			system = text
		case llms.ChatMessageTypeHuman, llms.ChatMessageTypeGeneric:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		case llms.ChatMessageTypeAI:
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		default:
			return nil, fmt.Errorf("unsupported message role: %s", msg.Role)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  anthropicMessages,
	}

	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	if len(opts.Tools) > 0 {
		toolSpecs, err := convertTools(opts.Tools)
		if err != nil {
			return nil, err
		}
		params.Tools = toolSpecs

		// "required" maps to Anthropic's any-tool choice.
		if choice, ok := opts.ToolChoice.(string); ok && choice == "required" {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{
				OfAny: &anthropic.ToolChoiceAnyParam{},
			}
		}
	}

	response, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	choice := &llms.ContentChoice{
		StopReason: string(response.StopReason),
	}

	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			choice.Content += block.Text
		case anthropic.ToolUseBlock:
			arguments, err := json.Marshal(block.Input)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal tool input: %w", err)
			}
			choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
				ID:   block.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      block.Name,
					Arguments: string(arguments),
				},
			})
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{choice},
	}, nil
}

func (m *anthropicModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, options...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in model response")
	}
	return resp.Choices[0].Content, nil
}

func convertTools(tools []llms.Tool) ([]anthropic.ToolUnionParam, error) {
	var toolSpecs []anthropic.ToolUnionParam

	for _, tool := range tools {
		if tool.Function == nil {
			return nil, fmt.Errorf("tool has no function definition")
		}

		schema := anthropic.ToolInputSchemaParam{}
		if params, ok := tool.Function.Parameters.(map[string]any); ok {
			schema.Properties = params["properties"]
		}

		toolSpecs = append(toolSpecs, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Function.Name,
				Description: anthropic.String(tool.Function.Description),
				InputSchema: schema,
			},
		})
	}

	return toolSpecs, nil
}

func messageText(msg llms.MessageContent) string {
	var text string
	for _, part := range msg.Parts {
		if textPart, ok := part.(llms.TextContent); ok {
			text += textPart.Text
		}
	}
	return text
}
