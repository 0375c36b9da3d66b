package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

func (m *MockGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*WebhookEvent), args.Error(1)
}

type MockItineraryStore struct {
	mock.Mock
}

func (m *MockItineraryStore) GetByID(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

func (m *MockItineraryStore) UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error {
	args := m.Called(ctx, itineraryID, status)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupPaymentServiceTest() (*PaymentServiceImpl, *MockGateway, *MockItineraryStore) {
	gw := new(MockGateway)
	store := new(MockItineraryStore)
	return NewPaymentService(gw, store, 12.99, discardLogger()), gw, store
}

func checkoutRequest() types.PaymentRequest {
	return types.PaymentRequest{
		ItineraryID:   "itin_0123456789ab",
		CustomerEmail: "traveler@example.com",
		SuccessURL:    "https://app.example.com/success",
		CancelURL:     "https://app.example.com/cancel",
	}
}

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	ctx := context.Background()

	t.Run("creates session at configured price", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		req := checkoutRequest()
		store.On("GetByID", ctx, req.ItineraryID).Return(&types.ItineraryResponse{ItineraryID: req.ItineraryID}, nil)
		gw.On("CreateCheckoutSession", ctx, CheckoutParams{
			ProductName:   "AI Roadtrip Itinerary",
			Description:   "Premium AI-generated roadtrip plan (ID: itin_0123456789ab)",
			UnitAmount:    1299,
			Currency:      "usd",
			CustomerEmail: req.CustomerEmail,
			SuccessURL:    req.SuccessURL,
			CancelURL:     req.CancelURL,
			ItineraryID:   req.ItineraryID,
		}).Return(&CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil)

		resp, err := svc.CreateCheckoutSession(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", resp.SessionID)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", resp.CheckoutURL)
		assert.InDelta(t, 12.99, resp.Amount, 0.0001)
		assert.Equal(t, "usd", resp.Currency)
		gw.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("unknown itinerary", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		req := checkoutRequest()
		store.On("GetByID", ctx, req.ItineraryID).Return(nil, types.ErrNotFound)

		_, err := svc.CreateCheckoutSession(ctx, req)
		assert.ErrorIs(t, err, types.ErrNotFound)
		gw.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	})

	t.Run("gateway failure is wrapped", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		req := checkoutRequest()
		store.On("GetByID", ctx, req.ItineraryID).Return(&types.ItineraryResponse{}, nil)
		gw.On("CreateCheckoutSession", ctx, mock.Anything).Return(nil, errors.New("card declined"))

		_, err := svc.CreateCheckoutSession(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "card declined")
	})

	t.Run("payments disabled", func(t *testing.T) {
		svc := NewPaymentService(nil, new(MockItineraryStore), 12.99, discardLogger())

		_, err := svc.CreateCheckoutSession(ctx, checkoutRequest())
		assert.ErrorIs(t, err, types.ErrPaymentsDisabled)
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)

	t.Run("completed checkout marks itinerary paid", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "sig").Return(&WebhookEvent{
			ID: "evt_1", Type: EventCheckoutSessionCompleted, ItineraryID: "itin_0123456789ab",
		}, nil)
		store.On("UpdatePaymentStatus", ctx, "itin_0123456789ab", types.PaymentStatusCompleted).Return(nil)

		res, err := svc.HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "success", res.Status)
		assert.Equal(t, "itin_0123456789ab", res.ItineraryID)
		store.AssertExpectations(t)
	})

	t.Run("failed payment marks itinerary failed", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "sig").Return(&WebhookEvent{
			ID: "evt_2", Type: EventPaymentIntentFailed, ItineraryID: "itin_0123456789ab",
		}, nil)
		store.On("UpdatePaymentStatus", ctx, "itin_0123456789ab", types.PaymentStatusFailed).Return(nil)

		res, err := svc.HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "success", res.Status)
		store.AssertExpectations(t)
	})

	t.Run("unknown itinerary is acknowledged", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "sig").Return(&WebhookEvent{
			ID: "evt_3", Type: EventCheckoutSessionCompleted, ItineraryID: "itin_missing",
		}, nil)
		store.On("UpdatePaymentStatus", ctx, "itin_missing", types.PaymentStatusCompleted).Return(types.ErrNotFound)

		res, err := svc.HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "success", res.Status)
	})

	t.Run("event without itinerary id", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "sig").Return(&WebhookEvent{ID: "evt_4", Type: EventCheckoutSessionCompleted}, nil)

		res, err := svc.HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "success", res.Status)
		store.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "sig").Return(&WebhookEvent{ID: "evt_5", Type: "customer.created"}, nil)

		res, err := svc.HandleWebhook(ctx, payload, "sig")
		require.NoError(t, err)
		assert.Equal(t, "customer.created", res.EventType)
		store.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		svc, gw, store := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "sig").Return(&WebhookEvent{
			ID: "evt_6", Type: EventCheckoutSessionCompleted, ItineraryID: "itin_0123456789ab",
		}, nil)
		store.On("UpdatePaymentStatus", ctx, "itin_0123456789ab", types.PaymentStatusCompleted).Return(errors.New("db down"))

		_, err := svc.HandleWebhook(ctx, payload, "sig")
		assert.EqualError(t, err, "db down")
	})

	t.Run("invalid signature", func(t *testing.T) {
		svc, gw, _ := setupPaymentServiceTest()
		gw.On("ParseWebhook", payload, "bad").Return(nil, types.ErrInvalidSignature)

		_, err := svc.HandleWebhook(ctx, payload, "bad")
		assert.ErrorIs(t, err, types.ErrInvalidSignature)
	})
}
