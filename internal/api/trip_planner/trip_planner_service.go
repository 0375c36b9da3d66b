package tripPlanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/roadtrip-genie/app/observability/metrics"
	"github.com/FACorreiaa/roadtrip-genie/config"
	generativeAI "github.com/FACorreiaa/roadtrip-genie/internal/api/generative_ai"
	llmInteraction "github.com/FACorreiaa/roadtrip-genie/internal/api/llm_interaction"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service turns trip requests into normalized itineraries using the model.
type Service interface {
	GenerateItinerary(ctx context.Context, itineraryID string, req types.ItineraryRequest) (*types.ItineraryResponse, error)
	RefineItinerary(ctx context.Context, current map[string]any, request string) (*types.ItineraryResponse, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	generator generativeAI.Generator
	llmRepo   llmInteraction.LLmInteractionRepository
	gemini    config.GeminiConfig
}

func NewService(generator generativeAI.Generator,
	llmRepo llmInteraction.LLmInteractionRepository,
	gemini config.GeminiConfig,
	logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		llmRepo:   llmRepo,
		gemini:    gemini,
	}
}

func (s *ServiceImpl) requestConfig() *genai.GenerateContentConfig {
	cfg := generativeAI.WithSystemInstruction(generativeAI.BaseConfig(s.gemini), SystemPrompt())
	cfg.ResponseSchema = BuildResponseSchema()
	return cfg
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, itineraryID string, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("TripPlannerService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", itineraryID),
		attribute.String("trip.start", req.StartLocation),
		attribute.String("trip.end", req.EndLocation),
		attribute.Int("trip.duration_days", req.TripDuration),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GenerateItinerary"), slog.String("itinerary_id", itineraryID))
	l.InfoContext(ctx, "Generating itinerary",
		slog.String("from", req.StartLocation),
		slog.String("to", req.EndLocation),
		slog.String("vehicle", string(req.VehicleType)),
		slog.Bool("round_trip", req.IsRoundTrip),
		slog.Int("days", req.TripDuration),
		slog.Any("interests", req.InterestNames()))

	prompt := BuildPrompt(req)
	g, err := s.run(ctx, l, types.OperationGenerate, itineraryID, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "itinerary generation failed")
		return nil, fmt.Errorf("failed to generate itinerary: %w", err)
	}

	out := Normalize(g, req.InterestNames(), false)
	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", len(out.ItineraryDaily)),
		slog.Int("markdown_chars", len(out.ItineraryMarkdown)))
	span.SetStatus(codes.Ok, "itinerary generated")
	return out, nil
}

func (s *ServiceImpl) RefineItinerary(ctx context.Context, current map[string]any, request string) (*types.ItineraryResponse, error) {
	itineraryID, _ := current["itinerary_id"].(string)
	ctx, span := otel.Tracer("TripPlannerService").Start(ctx, "RefineItinerary", trace.WithAttributes(
		attribute.String("itinerary.id", itineraryID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "RefineItinerary"), slog.String("itinerary_id", itineraryID))

	prompt, err := BuildRefinePrompt(current, request)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to refine itinerary: %w", err)
	}

	g, err := s.run(ctx, l, types.OperationRefine, itineraryID, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "itinerary refinement failed")
		return nil, fmt.Errorf("failed to refine itinerary: %w", err)
	}

	out := Normalize(g, HighlightCategories(current), true)
	span.SetStatus(codes.Ok, "itinerary refined")
	return out, nil
}

// run sends the prompt, recovers the JSON document and records the
// interaction.
func (s *ServiceImpl) run(ctx context.Context, l *slog.Logger, operation, itineraryID, prompt string) (*GeneratedItinerary, error) {
	m := metrics.Get()
	opAttr := metric.WithAttributes(attribute.String("operation", operation))

	start := time.Now()
	text, err := s.generator.GenerateContent(ctx, prompt, s.requestConfig())
	latency := time.Since(start)
	m.AIRequestDurationSeconds.Record(ctx, latency.Seconds(), opAttr)
	if err != nil {
		l.ErrorContext(ctx, "Gemini request failed", slog.Any("error", err))
		return nil, err
	}
	l.DebugContext(ctx, "Gemini response received",
		slog.Int("length", len(text)),
		slog.Duration("latency", latency))

	doc, stage, err := ParseModelJSON(text)
	if err != nil {
		l.ErrorContext(ctx, "All JSON recovery stages failed", slog.Any("error", err))
		return nil, err
	}
	if stage != StageCleanup {
		m.JSONRepairsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("stage", string(stage))))
		l.WarnContext(ctx, "Model response needed JSON repair", slog.String("stage", string(stage)))
	}

	g, err := DecodeGenerated(doc)
	if err != nil {
		if g == nil {
			return nil, err
		}
		l.WarnContext(ctx, "Ignoring mistyped field in model response", slog.Any("error", err))
	}

	s.saveInteraction(ctx, l, types.LlmInteraction{
		ItineraryID:  itineraryID,
		Operation:    operation,
		Prompt:       prompt,
		ResponseText: text,
		ModelUsed:    s.generator.Model(),
		LatencyMs:    int(latency.Milliseconds()),
	})
	return g, nil
}

func (s *ServiceImpl) saveInteraction(ctx context.Context, l *slog.Logger, interaction types.LlmInteraction) {
	if _, err := s.llmRepo.SaveInteraction(ctx, interaction); err != nil && !errors.Is(err, context.Canceled) {
		l.WarnContext(ctx, "Failed to save llm interaction", slog.Any("error", err))
	}
}

// HighlightCategories returns the interest categories of an existing
// itinerary document, defaulting a missing category to "general".
func HighlightCategories(doc map[string]any) []string {
	raw, _ := doc["interest_highlights"].([]any)
	categories := make([]string, 0, len(raw))
	for _, item := range raw {
		h, ok := item.(map[string]any)
		if !ok {
			continue
		}
		category, _ := h["category"].(string)
		if category == "" {
			category = "general"
		}
		categories = append(categories, category)
	}
	return categories
}
