package pattern

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rohankatakam/gitart/internal/errors"
	"google.golang.org/genai"
)

// GeminiSuggester asks Gemini for a pattern using structured JSON output
type GeminiSuggester struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiSuggester creates a Gemini-backed suggester
func NewGeminiSuggester(ctx context.Context, apiKey, model string) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiSuggester{
		client: client,
		model:  model,
		logger: slog.Default().With("component", "gemini", "model", model),
	}, nil
}

func (g *GeminiSuggester) Provider() Provider { return ProviderGemini }

// responseSchema mirrors Suggestion
func responseSchema() *genai.Schema {
	integer := &genai.Schema{Type: genai.TypeInteger}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"patternName": {Type: genai.TypeString},
			"points": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"x":     integer,
						"y":     integer,
						"level": integer,
					},
					Required: []string{"x", "y", "level"},
				},
			},
		},
		Required: []string{"patternName", "points"},
	}
}

// Suggest sends the prompt and parses the JSON answer
func (g *GeminiSuggester) Suggest(ctx context.Context, prompt string) (*Suggestion, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.Text(systemPrompt)[0],
		Temperature:       ptrFloat32(0.7),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(prompt)), genConfig)
	if err != nil {
		return nil, errors.ExternalError(err, "gemini pattern request failed")
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.ExternalError(fmt.Errorf("no candidates"), "gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, errors.ExternalError(fmt.Errorf("no content parts"), "gemini returned an empty answer")
	}

	text := candidate.Content.Parts[0].Text
	g.logger.Debug("gemini pattern response", "prompt_length", len(prompt), "response_length", len(text))

	return ParseSuggestion(text)
}

func ptrFloat32(v float32) *float32 {
	return &v
}
