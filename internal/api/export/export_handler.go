package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/roadtrip-genie/internal/api"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

type ExportHandler struct {
	exportService ExportService
	logger        *slog.Logger
}

func NewExportHandler(exportService ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		logger:        logger,
	}
}

// ExportPDF godoc
// @Summary      Download itinerary PDF
// @Description  Renders the stored itinerary as an A4 roadbook.
// @Tags         Export
// @Produce      application/pdf
// @Param        itinerary_id path string true "Itinerary ID"
// @Param        token query string false "Download token"
// @Success      200 {file} binary
// @Failure      401 {object} types.Response "Missing or invalid token"
// @Failure      404 {object} types.Response "Itinerary not found"
// @Router       /api/export/pdf/{itinerary_id} [get]
func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ExportHandler").Start(r.Context(), "ExportPDF", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/export/pdf/{itinerary_id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ExportPDF"))
	itineraryID := chi.URLParam(r, "itinerary_id")

	pdf, err := h.exportService.GeneratePDF(ctx, itineraryID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		l.ErrorContext(ctx, "PDF export failed", slog.String("itinerary_id", itineraryID), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, FileName(itineraryID)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(pdf); err != nil {
		l.ErrorContext(ctx, "Failed to write PDF", slog.Any("error", err))
	}
}

// IssueDownloadToken godoc
// @Summary      Issue PDF download token
// @Description  Returns a short-lived token for the itinerary's PDF. Requires a completed payment when payment gating is on.
// @Tags         Export
// @Produce      json
// @Param        itinerary_id path string true "Itinerary ID"
// @Success      200 {object} types.DownloadToken
// @Failure      402 {object} types.Response "Payment required"
// @Failure      404 {object} types.Response "Itinerary not found"
// @Router       /api/export/token/{itinerary_id} [post]
func (h *ExportHandler) IssueDownloadToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ExportHandler").Start(r.Context(), "IssueDownloadToken", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/export/token/{itinerary_id}"),
	))
	defer span.End()

	itineraryID := chi.URLParam(r, "itinerary_id")

	token, err := h.exportService.IssueDownloadToken(ctx, itineraryID)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
		case errors.Is(err, types.ErrPaymentRequired):
			api.ErrorResponse(w, r, http.StatusPaymentRequired, "Payment required before export")
		default:
			h.logger.ErrorContext(ctx, "Failed to issue download token", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, token)
}
