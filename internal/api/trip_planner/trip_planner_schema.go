package tripPlanner

import "google.golang.org/genai"

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func integer() *genai.Schema { return &genai.Schema{Type: genai.TypeInteger} }

func number(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: desc}
}

func stringList(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: desc}
}

func coordinates() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"lat": {Type: genai.TypeNumber},
			"lon": {Type: genai.TypeNumber},
		},
		Required: []string{"lat", "lon"},
	}
}

func timeBlock(defaultStart, tipField, tipDesc string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"start_time":       str("24h format e.g. " + defaultStart),
			"duration_minutes": integer(),
			"activity":         str("What to do (max 120 words)"),
			tipField:           str(tipDesc),
		},
		Required: []string{"start_time", "duration_minutes", "activity", tipField},
	}
}

// BuildResponseSchema returns the structured output contract the model must
// follow. Every top level key is required.
func BuildResponseSchema() *genai.Schema {
	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day_number":                 integer(),
			"location":                   str("Location name (max 25 chars)"),
			"image_keyword":              str("Unsplash keyword e.g. 'yosemite valley'"),
			"morning":                    timeBlock("06:30", "photo_tip", "f-stop, ISO, shutter for this light (max 60 chars)"),
			"afternoon":                  timeBlock("13:00", "logistics", "Driving, fuel, road conditions (max 80 chars)"),
			"evening":                    timeBlock("18:00", "dining_tip", "Restaurant or food recommendation (max 60 chars)"),
			"daily_driving_time":         str("e.g. 3.5 hrs"),
			"vehicle_safety":             str("Road surface, clearance, hazards (max 80 chars)"),
			"daily_budget_per_person":    number("Daily spend per person in USD"),
			"accommodation_search_query": str("Hotel search e.g. 'Mountain lodge parking, Jackson WY'"),
			"viator_activity_query":      str("Tour search e.g. 'Sunrise photo tour Yellowstone'"),
		},
		Required: []string{
			"day_number", "location", "image_keyword", "morning", "afternoon", "evening",
			"daily_driving_time", "vehicle_safety", "daily_budget_per_person",
			"accommodation_search_query", "viator_activity_query",
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"trip_summary": str("1-2 sentence trip overview (max 100 chars)"),
			"season_info":  str("Season-specific safety advisory (max 80 chars)"),
			"vehicle_recommendation": {
				Type:        genai.TypeObject,
				Description: "Vehicle specs and safety gear for this route",
				Properties: map[string]*genai.Schema{
					"drivetrain":  str("e.g. AWD, 4WD, FWD"),
					"clearance":   str(`e.g. High Clearance 8"+, Standard 6"`),
					"safety_gear": stringList("e.g. Snow Socks, Recovery Kit"),
					"notes":       str("Additional vehicle notes (max 100 chars)"),
				},
				Required: []string{"drivetrain", "clearance", "safety_gear", "notes"},
			},
			"days": {
				Type:        genai.TypeArray,
				Description: "Day-by-day plan with morning/afternoon/evening structure",
				Items:       day,
			},
			"interest_highlights": {
				Type:        genai.TypeArray,
				Description: "Expert tips for selected interests. Must have at least 1 entry. If no interests selected, generate one for 'general'.",
				MinItems:    genai.Ptr[int64](1),
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category": str("Interest name"),
						"advice":   str("Expert advice (max 120 chars)"),
					},
					Required: []string{"category", "advice"},
				},
			},
			"logistics": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"total_distance_km":       {Type: genai.TypeNumber},
					"estimated_driving_hours": {Type: genai.TypeNumber},
					"fuel_stops": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"day":         integer(),
								"location":    {Type: genai.TypeString},
								"coordinates": coordinates(),
							},
							Required: []string{"day", "location", "coordinates"},
						},
					},
					"accommodation_points": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"night": integer(),
								"name":  {Type: genai.TypeString},
								"type":  {Type: genai.TypeString},
							},
							Required: []string{"night", "name", "type"},
						},
					},
					"safety_warnings": stringList(""),
				},
				Required: []string{"total_distance_km", "estimated_driving_hours", "fuel_stops", "accommodation_points", "safety_warnings"},
			},
			"budget_table": {
				Type:        genai.TypeObject,
				Description: "Budget calculated for given number of persons",
				Properties: map[string]*genai.Schema{
					"number_of_persons": integer(),
					"fuel_cost":         number("Fixed cost - same regardless of persons"),
					"toll_fees":         number("Fixed cost"),
					"accommodation":     number("Scaled by persons"),
					"meals":             number("Scaled by persons"),
					"activities":        number("Scaled by persons"),
					"subtotal":          number(""),
					"buffer_fund":       number("10% risk reserve = subtotal * 0.1"),
					"total":             number("subtotal + buffer_fund"),
				},
				Required: []string{"number_of_persons", "fuel_cost", "toll_fees", "accommodation", "meals", "activities", "subtotal", "buffer_fund", "total"},
			},
			"markers": {
				Type:        genai.TypeArray,
				Description: "Key map markers (max 6)",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"sequence": integer(),
						"name":     {Type: genai.TypeString},
						"type": {
							Type: genai.TypeString,
							Enum: []string{"fuel", "accommodation", "scenic_spot", "trailhead", "viewpoint", "restaurant"},
						},
						"coordinates": coordinates(),
					},
					Required: []string{"sequence", "name", "type", "coordinates"},
				},
			},
			"route_coordinates": {
				Type:        genai.TypeArray,
				Description: "Route polyline (max 12 points). If round trip, last point = first point.",
				Items:       coordinates(),
			},
			"is_round_trip": {Type: genai.TypeBoolean},
			"risk_warnings": stringList("Max 3 warnings"),
			"packing_list":  stringList("Max 5 items"),
		},
		Required: []string{
			"trip_summary", "season_info", "vehicle_recommendation", "days",
			"interest_highlights", "logistics", "budget_table", "markers",
			"route_coordinates", "is_round_trip", "risk_warnings", "packing_list",
		},
	}
}
