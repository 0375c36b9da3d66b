package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/roadtrip-genie/app/observability/metrics"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

const (
	productName = "AI Roadtrip Itinerary"
	currency    = "usd"
)

var _ PaymentService = (*PaymentServiceImpl)(nil)

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req types.PaymentRequest) (*types.PaymentResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*types.WebhookResult, error)
}

// ItineraryStore is the part of the itinerary service payments depend on.
type ItineraryStore interface {
	GetByID(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error)
	UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error
}

type PaymentServiceImpl struct {
	logger      *slog.Logger
	gateway     Gateway
	itineraries ItineraryStore
	price       float64
}

// NewPaymentService builds the service. A nil gateway disables payments.
func NewPaymentService(gateway Gateway, itineraries ItineraryStore, price float64, logger *slog.Logger) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		logger:      logger,
		gateway:     gateway,
		itineraries: itineraries,
		price:       price,
	}
}

func (s *PaymentServiceImpl) CreateCheckoutSession(ctx context.Context, req types.PaymentRequest) (*types.PaymentResponse, error) {
	if s.gateway == nil {
		return nil, types.ErrPaymentsDisabled
	}
	l := s.logger.With(slog.String("method", "CreateCheckoutSession"), slog.String("itinerary_id", req.ItineraryID))

	if _, err := s.itineraries.GetByID(ctx, req.ItineraryID); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		ProductName:   productName,
		Description:   fmt.Sprintf("Premium AI-generated roadtrip plan (ID: %s)", req.ItineraryID),
		UnitAmount:    int64(math.Round(s.price * 100)),
		Currency:      currency,
		CustomerEmail: req.CustomerEmail,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		ItineraryID:   req.ItineraryID,
	})
	if err != nil {
		l.ErrorContext(ctx, "Failed to create checkout session", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	metrics.Get().CheckoutSessionsTotal.Add(ctx, 1)
	l.InfoContext(ctx, "Checkout session created", slog.String("session_id", session.ID))
	return &types.PaymentResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
		Amount:      s.price,
		Currency:    currency,
	}, nil
}

func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (*types.WebhookResult, error) {
	if s.gateway == nil {
		return nil, types.ErrPaymentsDisabled
	}
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return nil, err
	}
	metrics.Get().WebhookEventsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("type", event.Type)))

	l := s.logger.With(
		slog.String("method", "HandleWebhook"),
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.String("itinerary_id", event.ItineraryID))

	var status string
	switch event.Type {
	case EventCheckoutSessionCompleted:
		status = types.PaymentStatusCompleted
	case EventPaymentIntentFailed:
		status = types.PaymentStatusFailed
	default:
		l.DebugContext(ctx, "Ignoring webhook event")
		return &types.WebhookResult{Status: "success", EventType: event.Type}, nil
	}

	if event.ItineraryID == "" {
		l.WarnContext(ctx, "Webhook event carries no itinerary_id")
		return &types.WebhookResult{Status: "success", EventType: event.Type}, nil
	}

	if err = s.itineraries.UpdatePaymentStatus(ctx, event.ItineraryID, status); err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		l.WarnContext(ctx, "Webhook references unknown itinerary")
	} else {
		l.InfoContext(ctx, "Itinerary payment status updated", slog.String("status", status))
	}

	return &types.WebhookResult{Status: "success", EventType: event.Type, ItineraryID: event.ItineraryID}, nil
}
