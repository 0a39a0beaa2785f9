package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/dompet/internal/config"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
)

// ErrNoChoices is returned when an OpenAI-compatible server answers with no choices.
var ErrNoChoices = errors.New("advisor: response has no choices")

// GeminiGenerator calls the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator for apiKey.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("advisor: Gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	return resp.Text(), nil
}

// OpenAIGenerator calls an OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a generator for apiKey. baseURL may point at any
// OpenAI-compatible server; empty uses the default endpoint.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAIGenerator, error) {
	if apiKey == "" && baseURL == "" {
		return nil, errors.New("advisor: OpenAI API key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai %s: %w", g.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// FromConfig builds the generator selected by cfg. It returns nil, nil when
// no credentials are configured, which Advisor reports as "not configured".
func FromConfig(ctx context.Context, cfg config.Config) (Generator, error) {
	key := config.GetAdvisorAPIKey(cfg)
	switch cfg.Advisor.Provider {
	case config.ProviderOpenAI:
		if key == "" && cfg.Advisor.BaseURL == "" {
			return nil, nil
		}
		g, err := NewOpenAI(key, cfg.Advisor.BaseURL, cfg.Advisor.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderGemini, "":
		if key == "" {
			return nil, nil
		}
		g, err := NewGemini(ctx, key, cfg.Advisor.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("advisor: unknown provider %q", cfg.Advisor.Provider)
	}
}
