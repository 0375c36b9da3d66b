package itinerary

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/roadtrip-genie/internal/api"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

type ItineraryHandler struct {
	itineraryService ItineraryService
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService ItineraryService, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// GenerateItinerary godoc
// @Summary      Generate a roadtrip itinerary
// @Description  Plans a day by day roadtrip with logistics, budget and map data using Gemini.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body types.ItineraryRequest true "Trip details"
// @Success      200 {object} types.ItineraryResponse
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      500 {object} types.Response "Generation failed"
// @Router       /api/itinerary/generate [post]
func (h *ItineraryHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/itinerary/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.ApplyDefaults()
	if err := api.ValidateStruct(req); err != nil {
		l.WarnContext(ctx, "Invalid itinerary request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.itineraryService.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// RefineItinerary godoc
// @Summary      Refine an itinerary
// @Description  Applies a free text change request to an existing itinerary while keeping the 10% buffer fund.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body types.ItineraryRefinementRequest true "Current itinerary and change request"
// @Success      200 {object} types.ItineraryResponse
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      500 {object} types.Response "Refinement failed"
// @Router       /api/itinerary/refine [post]
func (h *ItineraryHandler) RefineItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "RefineItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/itinerary/refine"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RefineItinerary"))

	var req types.ItineraryRefinementRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary, err := h.itineraryService.Refine(ctx, req)
	if err != nil {
		span.RecordError(err)
		l.ErrorContext(ctx, "Failed to refine itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// GetItinerary godoc
// @Summary      Get an itinerary
// @Tags         Itinerary
// @Produce      json
// @Param        itinerary_id path string true "Itinerary ID"
// @Success      200 {object} types.ItineraryResponse
// @Failure      404 {object} types.Response "Itinerary not found"
// @Router       /api/itinerary/{itinerary_id} [get]
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/itinerary/{itinerary_id}"),
	))
	defer span.End()

	itineraryID := chi.URLParam(r, "itinerary_id")
	l := h.logger.With(slog.String("handler", "GetItinerary"), slog.String("itinerary_id", itineraryID))

	itinerary, err := h.itineraryService.GetByID(ctx, itineraryID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		span.RecordError(err)
		l.ErrorContext(ctx, "Failed to load itinerary", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to load itinerary: %s", err.Error()))
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}
