package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/FACorreiaa/roadtrip-genie/internal/api"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Info identifies the running service in health and index responses.
type Info struct {
	Name        string
	Version     string
	Environment string
}

type HealthHandler struct {
	db     Pinger
	info   Info
	logger *slog.Logger
}

// NewHealthHandler builds the handler. db may be nil when no database is
// configured.
func NewHealthHandler(db Pinger, info Info, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, info: info, logger: logger}
}

// Health godoc
// @Summary      Service health
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.info.Name,
	})
}

// DatabaseHealth godoc
// @Summary      Database connectivity
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /api/health/db [get]
func (h *HealthHandler) DatabaseHealth(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
			"status":   "healthy",
			"database": "not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Database health check failed", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}

// Root godoc
// @Summary      Service information
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"service":     h.info.Name,
		"version":     h.info.Version,
		"status":      "operational",
		"docs":        "/docs",
		"api_docs":    "/docs",
		"environment": h.info.Environment,
	})
}

// Index godoc
// @Summary      API endpoint index
// @Tags         Health
// @Produce      json
// @Success      200 {object} map[string]any
// @Router       /api [get]
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"message": h.info.Name + " API",
		"version": h.info.Version,
		"endpoints": map[string]string{
			"health":   "/api/health",
			"generate": "/api/itinerary/generate",
			"refine":   "/api/itinerary/refine",
			"checkout": "/api/payment/create-checkout-session",
			"export":   "/api/export/pdf/{itinerary_id}",
		},
	})
}
