package types

import (
	"github.com/google/uuid"
)

// LlmInteraction records one round trip to the model for auditing.
type LlmInteraction struct {
	ID           uuid.UUID `json:"id"`
	ItineraryID  string    `json:"itinerary_id"`
	Operation    string    `json:"operation"`
	Prompt       string    `json:"prompt"`
	ResponseText string    `json:"response_text"`
	ModelUsed    string    `json:"model_used"`
	LatencyMs    int       `json:"latency_ms"`
}

const (
	OperationGenerate = "generate"
	OperationRefine   = "refine"
)
