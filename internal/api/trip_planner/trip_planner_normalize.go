package tripPlanner

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

const fallbackHighlightAdvice = "Enjoy the journey and stay flexible with your schedule."

// GeneratedItinerary is the document shape the model returns. It accepts both
// the schema keys (days, budget_table) and the response keys (itinerary_daily,
// budget) since refinements echo back an already normalized itinerary.
type GeneratedItinerary struct {
	ItineraryID   string `json:"itinerary_id"`
	CreatedAt     string `json:"created_at"`
	PaymentStatus string `json:"payment_status"`

	TripSummary       string `json:"trip_summary"`
	SeasonInfo        string `json:"season_info"`
	ItineraryMarkdown string `json:"itinerary_markdown"`

	Days           []types.DayPlan `json:"days"`
	ItineraryDaily []types.DayPlan `json:"itinerary_daily"`

	RouteCoordinates      []types.Coordinates          `json:"route_coordinates"`
	IsRoundTrip           *bool                        `json:"is_round_trip"`
	Markers               []types.Marker               `json:"markers"`
	VehicleRecommendation *types.VehicleRecommendation `json:"vehicle_recommendation"`
	InterestHighlights    []types.InterestHighlight    `json:"interest_highlights"`

	Logistics   *types.LogisticsInfo   `json:"logistics"`
	BudgetTable *types.BudgetBreakdown `json:"budget_table"`
	Budget      *types.BudgetBreakdown `json:"budget"`

	Activities    []types.ActivityPoint `json:"activities"`
	SciencePoints []types.SciencePoint  `json:"science_points"`
	RiskWarnings  []string              `json:"risk_warnings"`
	PackingList   []string              `json:"packing_list"`
}

// DecodeGenerated unmarshals a recovered document. When a field carries the
// wrong JSON type the partially decoded document is returned together with
// the *json.UnmarshalTypeError.
func DecodeGenerated(doc []byte) (*GeneratedItinerary, error) {
	var g GeneratedItinerary
	err := json.Unmarshal(doc, &g)
	if err == nil {
		return &g, nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &g, typeErr
	}
	return nil, fmt.Errorf("%w: %v", types.ErrAIResponseUnparseable, err)
}

// Normalize maps a generated document onto the response shape. On refinement
// the buffer fund is always recomputed and no markdown is rendered.
func Normalize(g *GeneratedItinerary, interests []string, refinement bool) *types.ItineraryResponse {
	out := &types.ItineraryResponse{
		ItineraryID:           g.ItineraryID,
		CreatedAt:             g.CreatedAt,
		PaymentStatus:         g.PaymentStatus,
		TripSummary:           g.TripSummary,
		SeasonInfo:            g.SeasonInfo,
		ItineraryMarkdown:     g.ItineraryMarkdown,
		RouteCoordinates:      g.RouteCoordinates,
		IsRoundTrip:           g.IsRoundTrip,
		Markers:               g.Markers,
		VehicleRecommendation: g.VehicleRecommendation,
		InterestHighlights:    g.InterestHighlights,
		Activities:            g.Activities,
		SciencePoints:         g.SciencePoints,
		RiskWarnings:          g.RiskWarnings,
		PackingList:           g.PackingList,
	}

	if len(out.InterestHighlights) == 0 {
		category := "general"
		if len(interests) > 0 {
			category = interests[0]
		}
		out.InterestHighlights = []types.InterestHighlight{{Category: category, Advice: fallbackHighlightAdvice}}
	}

	out.ItineraryDaily = g.ItineraryDaily
	if g.Days != nil {
		out.ItineraryDaily = g.Days
	}
	if !refinement && out.ItineraryDaily != nil {
		out.ItineraryMarkdown = RenderMarkdown(out.ItineraryDaily)
	}

	if g.Logistics != nil {
		out.Logistics = *g.Logistics
	}

	switch {
	case g.BudgetTable != nil:
		out.Budget = *g.BudgetTable
		enforceBufferFund(&out.Budget, refinement)
	case g.Budget != nil:
		out.Budget = *g.Budget
	}

	if g.Markers != nil {
		out.SciencePoints = SciencePointsFromMarkers(g.Markers)
	}

	out.EnsureCollections()
	return out
}

// enforceBufferFund keeps buffer_fund at 10% of the subtotal. Outside of
// refinement a value within one cent of the expected reserve is accepted.
func enforceBufferFund(b *types.BudgetBreakdown, always bool) {
	expected := roundCents(b.Subtotal * 0.1)
	if always || math.Abs(expected-b.BufferFund) > 0.01 {
		b.BufferFund = expected
		b.Total = b.Subtotal + expected
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// SciencePointsFromMarkers keeps the scenic spots and viewpoints, which double
// as observation points.
func SciencePointsFromMarkers(markers []types.Marker) []types.SciencePoint {
	points := make([]types.SciencePoint, 0, len(markers))
	for _, m := range markers {
		if m.Type != "scenic_spot" && m.Type != "viewpoint" {
			continue
		}
		points = append(points, types.SciencePoint{
			Name:        m.Name,
			Category:    m.Type,
			Coordinates: m.Coordinates,
		})
	}
	return points
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// RenderMarkdown builds the human readable day by day plan.
func RenderMarkdown(days []types.DayPlan) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		var b strings.Builder
		fmt.Fprintf(&b, "## Day %d: %s\n\n", day.DayNumber, day.Location)
		fmt.Fprintf(&b, "**Morning (%s)**: %s\n", orDefault(day.Morning.StartTime, "07:00"), day.Morning.Activity)
		fmt.Fprintf(&b, "*Photo Tip: %s*\n\n", day.Morning.PhotoTip)
		fmt.Fprintf(&b, "**Afternoon (%s)**: %s\n", orDefault(day.Afternoon.StartTime, "13:00"), day.Afternoon.Activity)
		fmt.Fprintf(&b, "*Logistics: %s*\n\n", day.Afternoon.Logistics)
		fmt.Fprintf(&b, "**Evening (%s)**: %s\n", orDefault(day.Evening.StartTime, "18:00"), day.Evening.Activity)
		fmt.Fprintf(&b, "*Dining: %s*\n\n", day.Evening.DiningTip)
		fmt.Fprintf(&b, "**Driving**: %s | **Budget/person**: $%.0f\n\n", day.DailyDrivingTime, day.DailyBudgetPerPerson)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}
