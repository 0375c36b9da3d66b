package payment

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/roadtrip-genie/internal/api"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

const maxWebhookBytes = 65536

type PaymentHandler struct {
	paymentService PaymentService
	logger         *slog.Logger
}

func NewPaymentHandler(paymentService PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// CreateCheckoutSession godoc
// @Summary      Create a Stripe checkout session
// @Description  Starts the card checkout for one itinerary at the configured price.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body types.PaymentRequest true "Checkout details"
// @Success      200 {object} types.PaymentResponse
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      404 {object} types.Response "Itinerary not found"
// @Failure      503 {object} types.Response "Payments not configured"
// @Router       /api/payment/create-checkout-session [post]
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PaymentHandler").Start(r.Context(), "CreateCheckoutSession", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/payment/create-checkout-session"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateCheckoutSession"))

	var req types.PaymentRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.paymentService.CreateCheckoutSession(ctx, req)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, types.ErrPaymentsDisabled):
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Payments are not configured")
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
		default:
			l.ErrorContext(ctx, "Checkout session failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// StripeWebhook godoc
// @Summary      Stripe webhook
// @Description  Receives signed Stripe events and updates itinerary payment status.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe signature"
// @Success      200 {object} types.WebhookResult
// @Failure      400 {object} types.Response "Invalid payload or signature"
// @Router       /api/payment/webhook [post]
func (h *PaymentHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PaymentHandler").Start(r.Context(), "StripeWebhook", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/payment/webhook"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "StripeWebhook"))

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid payload")
		return
	}

	result, err := h.paymentService.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		span.RecordError(err)
		l.WarnContext(ctx, "Webhook rejected", slog.Any("error", err))
		switch {
		case errors.Is(err, types.ErrPaymentsDisabled):
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Payments are not configured")
		case errors.Is(err, types.ErrInvalidSignature):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid signature")
		case errors.Is(err, types.ErrInvalidPayload):
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid payload")
		default:
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, result)
}
