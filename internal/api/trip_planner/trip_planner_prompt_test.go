package tripPlanner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

func sampleRequest() types.ItineraryRequest {
	req := types.ItineraryRequest{
		StartLocation:   "Seattle, WA",
		EndLocation:     "Yellowstone National Park",
		TripDuration:    5,
		NumberOfPersons: types.DefaultNumberOfPersons,
		StartDate:       types.Date{Time: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		IsRoundTrip:     true,
		Interests:       []types.InterestCategory{types.InterestPhotography, types.InterestGeology},
	}
	req.ApplyDefaults()
	return req
}

func TestBuildPrompt(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		p := BuildPrompt(sampleRequest())
		assert.Contains(t, p, "- From: Seattle, WA\n")
		assert.Contains(t, p, "- Duration: 5 days, departing 2025-06-15\n")
		assert.Contains(t, p, "- Number of Travelers: 2\n")
		assert.Contains(t, p, "- Round Trip: Yes (loop route back to start, include return fuel/tolls)\n")
		assert.Contains(t, p, "- Vehicle Class: suv\n")
		assert.Contains(t, p, "- Interests: photography, geology\n")
		assert.Contains(t, p, "- Activity Level: Moderate\n")
		assert.Contains(t, p, "- Off-road: No\n")
		assert.Contains(t, p, "multiply by 2")
		assert.Contains(t, p, "Generate advice for: [photography, geology]")
		assert.Contains(t, p, "polyline\n7. ROUND TRIP: Last coordinate MUST equal first coordinate.")
		assert.True(t, strings.HasSuffix(p, "Generate the complete JSON itinerary:"))
	})

	t.Run("one way without interests", func(t *testing.T) {
		req := sampleRequest()
		req.IsRoundTrip = false
		req.Interests = nil
		req.ActivityLevel = types.ActivityExpert
		req.IncludeOffroad = true
		p := BuildPrompt(req)

		assert.Contains(t, p, "- Round Trip: No (one-way)\n")
		assert.Contains(t, p, "- Interests: general sightseeing\n")
		assert.Contains(t, p, "- Activity Level: Expert\n")
		assert.Contains(t, p, "- Off-road: Yes\n")
		assert.NotContains(t, p, "7. ROUND TRIP")
		assert.Contains(t, p, "polyline\n\n\n8. ALL fields")
	})
}

func TestBuildRefinePrompt(t *testing.T) {
	current := map[string]any{
		"itinerary_id":  "itin_abc",
		"trip_summary":  "Café & canyons <3",
		"weather_notes": strings.Repeat("x", 5000),
	}
	p, err := BuildRefinePrompt(current, "Add a hot spring stop")
	require.NoError(t, err)

	assert.Contains(t, p, "**User's Request**: Add a hot spring stop")
	assert.Contains(t, p, "\"itinerary_id\": \"itin_abc\"")
	assert.Contains(t, p, "Café & canyons <3")
	assert.Contains(t, p, "6. Maintain morning/afternoon/evening structure")

	start := strings.Index(p, "```json\n") + len("```json\n")
	end := strings.LastIndex(p, "\n```")
	assert.Equal(t, refineContextLimit, len([]rune(p[start:end])))
}

func TestSystemPrompt(t *testing.T) {
	s := SystemPrompt()
	assert.Contains(t, s, "4. budget_table.buffer_fund = subtotal * 0.1")
	assert.Contains(t, s, "20. If snow gear or high clearance required")
}

func TestBuildResponseSchema(t *testing.T) {
	s := BuildResponseSchema()
	assert.ElementsMatch(t, []string{
		"trip_summary", "season_info", "vehicle_recommendation", "days",
		"interest_highlights", "logistics", "budget_table", "markers",
		"route_coordinates", "is_round_trip", "risk_warnings", "packing_list",
	}, s.Required)
	require.NotNil(t, s.Properties["interest_highlights"].MinItems)
	assert.Equal(t, int64(1), *s.Properties["interest_highlights"].MinItems)
	assert.Contains(t, s.Properties["markers"].Items.Properties["type"].Enum, "viewpoint")
	assert.Contains(t, s.Properties["days"].Items.Properties["evening"].Required, "dining_tip")
}
