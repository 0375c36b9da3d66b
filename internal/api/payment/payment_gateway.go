package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/FACorreiaa/roadtrip-genie/config"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
)

// CheckoutParams describes a single item card checkout.
type CheckoutParams struct {
	ProductName   string
	Description   string
	UnitAmount    int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	ItineraryID   string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent is the verified subset of a Stripe event the service acts on.
type WebhookEvent struct {
	ID          string
	Type        string
	ItineraryID string
}

// Gateway hides the payment provider from the service.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

var _ Gateway = (*StripeGateway)(nil)

type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: sc, webhookSecret: cfg.WebhookSecret}
}

// checkoutSessionParams tags both the session and its PaymentIntent with the
// itinerary id, since payment_intent events only carry the intent's metadata.
func checkoutSessionParams(ctx context.Context, p CheckoutParams) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.ProductName),
						Description: stripe.String(p.Description),
					},
					UnitAmount: stripe.Int64(p.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(p.SuccessURL),
		CancelURL:     stripe.String(p.CancelURL),
		CustomerEmail: stripe.String(p.CustomerEmail),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"itinerary_id": p.ItineraryID},
		},
	}
	params.Context = ctx
	params.AddMetadata("itinerary_id", p.ItineraryID)
	return params
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := checkoutSessionParams(ctx, p)
	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidPayload, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil {
		return out, nil
	}
	var object struct {
		Metadata map[string]string `json:"metadata"`
	}
	if err = json.Unmarshal(event.Data.Raw, &object); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidPayload, err)
	}
	out.ItineraryID = object.Metadata["itinerary_id"]
	return out, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}
