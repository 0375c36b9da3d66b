package types

import "errors"

var (
	ErrNotFound              = errors.New("requested item not found")
	ErrPaymentsDisabled      = errors.New("payments are not configured")
	ErrPaymentRequired       = errors.New("itinerary has not been paid for")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrInvalidPayload        = errors.New("invalid payload")
	ErrAIResponseUnparseable = errors.New("AI response could not be parsed as JSON")
	ErrInvalidToken          = errors.New("invalid or expired download token")
)

// Response is the generic envelope used in API docs for error bodies.
type Response struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
