package types

type PaymentRequest struct {
	ItineraryID   string `json:"itinerary_id" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	SuccessURL    string `json:"success_url" validate:"required,url"`
	CancelURL     string `json:"cancel_url" validate:"required,url"`
}

type PaymentResponse struct {
	SessionID   string  `json:"session_id"`
	CheckoutURL string  `json:"checkout_url"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type WebhookResult struct {
	Status      string `json:"status"`
	EventType   string `json:"event_type,omitempty"`
	ItineraryID string `json:"itinerary_id,omitempty"`
}

// DownloadToken grants access to a PDF export of one itinerary.
type DownloadToken struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
