package generativeAI

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roadtrip-genie/config"
)

func TestNewAIClient_MissingKey(t *testing.T) {
	_, err := NewAIClient(context.Background(), config.GeminiConfig{APIKey: "  "}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestBaseConfig(t *testing.T) {
	cfg := BaseConfig(config.GeminiConfig{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 8192})

	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 1e-6)
	assert.InDelta(t, 40, *cfg.TopK, 1e-6)
	assert.Equal(t, int32(8192), cfg.MaxOutputTokens)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Nil(t, cfg.SystemInstruction)

	WithSystemInstruction(cfg, "be terse")
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "be terse", cfg.SystemInstruction.Parts[0].Text)
}
