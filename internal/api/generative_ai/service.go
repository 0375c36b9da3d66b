package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/roadtrip-genie/config"
)

// ErrMissingAPIKey is returned when no Gemini key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is not set")

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// Generator is the subset of the Gemini client used by the planner.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error)
	Model() string
}

var _ Generator = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

func NewAIClient(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*AIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	logger.Info("Gemini client configured", slog.String("model", model))
	return &AIClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (ai *AIClient) Model() string {
	return ai.model
}

func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// BaseConfig builds the sampling settings shared by every planner request.
func BaseConfig(cfg config.GeminiConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(cfg.Temperature),
		TopP:             genai.Ptr(cfg.TopP),
		TopK:             genai.Ptr(cfg.TopK),
		MaxOutputTokens:  cfg.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
	return out
}

// WithSystemInstruction returns cfg with the given system prompt attached.
func WithSystemInstruction(cfg *genai.GenerateContentConfig, instruction string) *genai.GenerateContentConfig {
	cfg.SystemInstruction = &genai.Content{
		Parts: []*genai.Part{{Text: instruction}},
	}
	return cfg
}
