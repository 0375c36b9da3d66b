package tripPlanner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

// refineContextLimit caps how much of the current itinerary is echoed back to
// the model.
const refineContextLimit = 3000

// SystemPrompt is attached as the system instruction to every request.
func SystemPrompt() string {
	return `You are a world-class road trip expedition expert. Generate professional itineraries with precision.

CRITICAL RULES:
1. ALL output in English
2. Each text field MAX 120 words to prevent JSON truncation
3. Total JSON MUST NOT exceed 8000 characters
4. budget_table.buffer_fund = subtotal * 0.1 (MANDATORY 10% risk reserve)
5. If round trip, route_coordinates MUST loop back to start (last point = first point)
6. Photography: use UNIVERSAL parameters (f/X, 1/Xs shutter, ISO XXX, focal length mm). NEVER mention camera brands (Sony, Fuji, Canon, Nikon)
7. Vehicle: recommend drivetrain (AWD/4WD), clearance (e.g. "8+ inches"), safety gear (Snow Socks, Recovery Kit)
8. interest_highlights: MUST be non-empty array. Generate at least 1 object for "general" if no interests selected.
9. ALL fields must have non-empty values to avoid 400 schema errors.

MORNING/AFTERNOON/EVENING STRUCTURE:
10. Each day has 3 time blocks: morning, afternoon, evening
11. Each block has: start_time (24h), duration_minutes, activity description
12. Morning: Include photo_tip with camera settings for morning light
13. Afternoon: Include logistics (driving, fuel, road info)
14. Evening: Include dining_tip with restaurant/food recommendation

SCALED BUDGETING:
15. Fixed costs (fuel_cost, toll_fees) stay the same regardless of persons
16. Variable costs (accommodation, meals, activities) scale with number_of_persons
17. daily_budget_per_person = per-person daily spend (variable costs only)
18. Total budget = fixed_costs + (variable_per_person * persons)

GOLDEN HOUR SCHEDULING:
19. Photography activities at sunrise (06:00-07:30) or sunset (18:00-20:00)
20. If snow gear or high clearance required, schedule later start times (08:00+)

OUTPUT STRUCTURE:
- days: Array with morning{}, afternoon{}, evening{} per day
- vehicle_recommendation: drivetrain, clearance, safety_gear[], notes
- interest_highlights: ARRAY of {category, advice} - MUST have ≥1 entry
- markers: Max 6 waypoints with coordinates
- route_coordinates: Max 12 points for polyline
- budget_table: number_of_persons, fixed costs, scaled costs, subtotal, buffer_fund (10%), total
- risk_warnings: Max 3
- packing_list: Max 5 items`
}

var activityLevelLabels = map[types.ActivityLevel]string{
	types.ActivityEasy:        "Easy",
	types.ActivityModerate:    "Moderate",
	types.ActivityChallenging: "Challenging",
	types.ActivityExpert:      "Expert",
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// BuildPrompt renders the trip form into the generation prompt.
func BuildPrompt(req types.ItineraryRequest) string {
	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.InterestNames(), ", ")
	}
	level, ok := activityLevelLabels[req.ActivityLevel]
	if !ok {
		level = "Moderate"
	}
	roundTrip := "No (one-way)"
	roundTripRule := ""
	if req.IsRoundTrip {
		roundTrip = "Yes (loop route back to start, include return fuel/tolls)"
		roundTripRule = "7. ROUND TRIP: Last coordinate MUST equal first coordinate. Budget includes return fuel/tolls."
	}
	persons := req.NumberOfPersons

	var b strings.Builder
	b.WriteString("Generate a professional road trip itinerary. Total JSON under 8000 chars.\n\n")
	b.WriteString("TRIP DETAILS:\n")
	fmt.Fprintf(&b, "- From: %s\n", req.StartLocation)
	fmt.Fprintf(&b, "- To: %s\n", req.EndLocation)
	fmt.Fprintf(&b, "- Duration: %d days, departing %s\n", req.TripDuration, req.StartDate)
	fmt.Fprintf(&b, "- Number of Travelers: %d\n", persons)
	fmt.Fprintf(&b, "- Round Trip: %s\n", roundTrip)
	fmt.Fprintf(&b, "- Vehicle Class: %s\n", req.VehicleType)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Activity Level: %s\n", level)
	fmt.Fprintf(&b, "- Off-road: %s\n\n", yesNo(req.IncludeOffroad))

	b.WriteString(`REQUIREMENTS:

1. DAILY STRUCTURE (each day):
   - morning: {start_time, duration_minutes, activity (max 120 words), photo_tip (f-stop/ISO/shutter for morning light)}
   - afternoon: {start_time, duration_minutes, activity (max 120 words), logistics (driving/fuel info)}
   - evening: {start_time, duration_minutes, activity (max 120 words), dining_tip (restaurant recommendation)}
   - daily_driving_time, vehicle_safety, daily_budget_per_person
   - accommodation_search_query, viator_activity_query
   - image_keyword: single keyword for Unsplash (e.g. "yosemite", "yellowstone", "grand canyon")

`)
	fmt.Fprintf(&b, "2. SCALED BUDGET (for %d persons):\n", persons)
	b.WriteString("   - Fixed costs: fuel_cost, toll_fees (same regardless of person count)\n")
	fmt.Fprintf(&b, "   - Variable costs: accommodation, meals, activities (multiply by %d)\n", persons)
	b.WriteString(`   - subtotal = fuel_cost + toll_fees + accommodation + meals + activities
   - buffer_fund = subtotal * 0.1 (10% Risk Reserve)
   - total = subtotal + buffer_fund

3. UNIVERSAL EXPERTISE:
   - Photography: f/8-f/16 for landscapes, 1/125s+ for handheld, ISO 100-400. NO brand names.
   - Vehicle: Recommend AWD/4WD, clearance (e.g. "High Clearance 8+"), safety gear (Snow Socks, Chains)

`)
	fmt.Fprintf(&b, "4. interest_highlights: Generate advice for: [%s]. MUST be non-empty array.\n\n", interests)
	b.WriteString("5. markers: Max 6 key locations with lat/lon coordinates\n\n")
	b.WriteString("6. route_coordinates: Max 12 points for map polyline\n")
	b.WriteString(roundTripRule)
	b.WriteString("\n\n8. ALL fields must be non-empty to avoid schema errors.\n\n")
	b.WriteString("Generate the complete JSON itinerary:")
	return b.String()
}

// BuildRefinePrompt embeds the current itinerary and the user's change
// request. Only the first refineContextLimit characters of the document are
// sent.
func BuildRefinePrompt(current map[string]any, request string) (string, error) {
	doc, err := marshalIndentNoEscape(current)
	if err != nil {
		return "", fmt.Errorf("failed to encode current itinerary: %w", err)
	}
	doc = truncateRunes(doc, refineContextLimit)

	var b strings.Builder
	b.WriteString("You are an expert road trip planner. The user wants to modify their itinerary.\n\n")
	fmt.Fprintf(&b, "**User's Request**: %s\n\n", request)
	b.WriteString("**Current Itinerary (JSON)**:\n```json\n")
	b.WriteString(doc)
	b.WriteString("\n```\n\n")
	b.WriteString(`**Rules**:
1. Keep 10% buffer_fund = subtotal * 0.1
2. Keep interest_highlights as non-empty array
3. Each field max 120 words
4. Total JSON under 8000 chars
5. Photography tips: use universal params (f-stop, ISO, shutter) - NO camera brands
6. Maintain morning/afternoon/evening structure

Generate the modified complete itinerary JSON:`)
	return b.String(), nil
}

func marshalIndentNoEscape(v any) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
