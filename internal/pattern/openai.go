package pattern

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rohankatakam/gitart/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// OpenAISuggester asks an OpenAI chat model for a pattern in JSON object mode
type OpenAISuggester struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAISuggester creates an OpenAI-backed suggester
func NewOpenAISuggester(apiKey, model string) *OpenAISuggester {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISuggester{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: slog.Default().With("component", "openai", "model", model),
	}
}

func (o *OpenAISuggester) Provider() Provider { return ProviderOpenAI }

// Suggest sends the prompt and parses the JSON answer
func (o *OpenAISuggester) Suggest(ctx context.Context, prompt string) (*Suggestion, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(prompt),
			},
		},
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, errors.ExternalError(err, "openai pattern request failed")
	}

	if len(resp.Choices) == 0 {
		return nil, errors.ExternalError(fmt.Errorf("no choices"), "openai returned no choices")
	}

	text := resp.Choices[0].Message.Content
	o.logger.Debug("openai pattern response",
		"prompt_length", len(prompt),
		"tokens", resp.Usage.TotalTokens,
	)

	return ParseSuggestion(text)
}
