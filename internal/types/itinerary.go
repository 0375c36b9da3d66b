package types

import (
	"encoding/json"
	"time"
)

type VehicleType string

const (
	VehicleSedan     VehicleType = "sedan"
	VehicleSUV       VehicleType = "suv"
	VehicleCrossover VehicleType = "crossover"
	VehicleTruck     VehicleType = "truck"
	VehicleVan       VehicleType = "van"
)

type ActivityLevel string

const (
	ActivityEasy        ActivityLevel = "easy"
	ActivityModerate    ActivityLevel = "moderate"
	ActivityChallenging ActivityLevel = "challenging"
	ActivityExpert      ActivityLevel = "expert"
)

// InterestCategory is one of the eight fixed interest buckets the form offers.
type InterestCategory string

const (
	InterestPhotography     InterestCategory = "photography"
	InterestGeology         InterestCategory = "geology"
	InterestHiking          InterestCategory = "hiking"
	InterestLocalFood       InterestCategory = "local_food"
	InterestHistory         InterestCategory = "history"
	InterestArchitecture    InterestCategory = "architecture"
	InterestAdventureSports InterestCategory = "adventure_sports"
	InterestWellness        InterestCategory = "wellness"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusUnpaid    = "unpaid"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Date is a calendar day encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// ItineraryRequest is the trip planning form.
type ItineraryRequest struct {
	StartLocation   string             `json:"start_location" validate:"required"`
	EndLocation     string             `json:"end_location" validate:"required"`
	TripDuration    int                `json:"trip_duration" validate:"required,min=1,max=30"`
	StartDate       Date               `json:"start_date" validate:"required"`
	NumberOfPersons int                `json:"number_of_persons" validate:"min=1,max=12"`
	IsRoundTrip     bool               `json:"is_round_trip"`
	VehicleType     VehicleType        `json:"vehicle_type" validate:"oneof=sedan suv crossover truck van"`
	Interests       []InterestCategory `json:"interests" validate:"dive,oneof=photography geology hiking local_food history architecture adventure_sports wellness"`
	ActivityLevel   ActivityLevel      `json:"activity_level" validate:"oneof=easy moderate challenging expert"`
	IncludeOffroad  bool               `json:"include_offroad"`
}

const DefaultNumberOfPersons = 2

// UnmarshalJSON defaults number_of_persons only when the key is absent, so an
// explicit 0 still fails validation.
func (r *ItineraryRequest) UnmarshalJSON(b []byte) error {
	type plain ItineraryRequest
	req := plain{NumberOfPersons: DefaultNumberOfPersons}
	if err := json.Unmarshal(b, &req); err != nil {
		return err
	}
	*r = ItineraryRequest(req)
	return nil
}

// ApplyDefaults fills the optional enum and list fields the way the form
// expects when they are omitted.
func (r *ItineraryRequest) ApplyDefaults() {
	if r.VehicleType == "" {
		r.VehicleType = VehicleSUV
	}
	if r.ActivityLevel == "" {
		r.ActivityLevel = ActivityModerate
	}
	if r.Interests == nil {
		r.Interests = []InterestCategory{}
	}
}

func (r *ItineraryRequest) InterestNames() []string {
	names := make([]string, 0, len(r.Interests))
	for _, i := range r.Interests {
		names = append(names, string(i))
	}
	return names
}

// ItineraryRefinementRequest asks the model to modify an itinerary it
// produced earlier.
type ItineraryRefinementRequest struct {
	CurrentItinerary  map[string]any `json:"current_itinerary" validate:"required"`
	RefinementRequest string         `json:"refinement_request" validate:"required"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type TimeBlock struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Activity        string `json:"activity"`
	PhotoTip        string `json:"photo_tip,omitempty"`
	Logistics       string `json:"logistics,omitempty"`
	DiningTip       string `json:"dining_tip,omitempty"`
}

type DayPlan struct {
	DayNumber                int       `json:"day_number"`
	Location                 string    `json:"location"`
	ImageKeyword             string    `json:"image_keyword"`
	Morning                  TimeBlock `json:"morning"`
	Afternoon                TimeBlock `json:"afternoon"`
	Evening                  TimeBlock `json:"evening"`
	DailyDrivingTime         string    `json:"daily_driving_time"`
	VehicleSafety            string    `json:"vehicle_safety"`
	DailyBudgetPerPerson     float64   `json:"daily_budget_per_person"`
	AccommodationSearchQuery string    `json:"accommodation_search_query"`
	ViatorActivityQuery      string    `json:"viator_activity_query"`
}

type VehicleRecommendation struct {
	Drivetrain string   `json:"drivetrain"`
	Clearance  string   `json:"clearance"`
	SafetyGear []string `json:"safety_gear"`
	Notes      string   `json:"notes"`
}

type InterestHighlight struct {
	Category string `json:"category"`
	Advice   string `json:"advice"`
}

type Marker struct {
	Sequence    int         `json:"sequence"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

type FuelStop struct {
	Day         int         `json:"day"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
}

type AccommodationPoint struct {
	Night int    `json:"night"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

type LogisticsInfo struct {
	TotalDistanceKm       float64              `json:"total_distance_km"`
	EstimatedDrivingHours float64              `json:"estimated_driving_hours"`
	FuelStops             []FuelStop           `json:"fuel_stops"`
	AccommodationPoints   []AccommodationPoint `json:"accommodation_points"`
	SafetyWarnings        []string             `json:"safety_warnings"`
}

// BudgetBreakdown always carries a buffer fund (risk reserve) of 10% of the
// subtotal.
type BudgetBreakdown struct {
	NumberOfPersons int     `json:"number_of_persons,omitempty"`
	FuelCost        float64 `json:"fuel_cost"`
	TollFees        float64 `json:"toll_fees"`
	Accommodation   float64 `json:"accommodation"`
	Meals           float64 `json:"meals"`
	Activities      float64 `json:"activities"`
	Subtotal        float64 `json:"subtotal"`
	BufferFund      float64 `json:"buffer_fund"`
	Total           float64 `json:"total"`
}

type ActivityPoint struct {
	Name                   string   `json:"name"`
	Type                   string   `json:"type"`
	DifficultyClass        int      `json:"difficulty_class"`
	ElevationGainM         *float64 `json:"elevation_gain_m"`
	EstimatedDurationHours *float64 `json:"estimated_duration_hours"`
	TerrainDescription     string   `json:"terrain_description"`
	GearChecklist          []string `json:"gear_checklist"`
}

type SciencePoint struct {
	Name                  string      `json:"name"`
	Category              string      `json:"category"`
	Coordinates           Coordinates `json:"coordinates"`
	ScientificExplanation string      `json:"scientific_explanation"`
	ObservationTips       string      `json:"observation_tips"`
}

// ItineraryResponse is the document returned to the frontend and persisted.
type ItineraryResponse struct {
	ItineraryID string `json:"itinerary_id"`
	CreatedAt   string `json:"created_at"`

	TripSummary       string `json:"trip_summary"`
	SeasonInfo        string `json:"season_info"`
	ItineraryMarkdown string `json:"itinerary_markdown"`

	ItineraryDaily []DayPlan `json:"itinerary_daily"`

	RouteCoordinates []Coordinates `json:"route_coordinates"`
	IsRoundTrip      *bool         `json:"is_round_trip"`
	Markers          []Marker      `json:"markers"`

	VehicleRecommendation *VehicleRecommendation `json:"vehicle_recommendation"`
	InterestHighlights    []InterestHighlight    `json:"interest_highlights"`

	Logistics     LogisticsInfo   `json:"logistics"`
	Budget        BudgetBreakdown `json:"budget"`
	Activities    []ActivityPoint `json:"activities"`
	SciencePoints []SciencePoint  `json:"science_points"`

	RiskWarnings []string `json:"risk_warnings"`
	PackingList  []string `json:"packing_list"`

	PaymentStatus string `json:"payment_status"`
}

// EnsureCollections replaces nil slices with empty ones so the JSON document
// always carries arrays where the frontend iterates.
func (r *ItineraryResponse) EnsureCollections() {
	if r.Activities == nil {
		r.Activities = []ActivityPoint{}
	}
	if r.SciencePoints == nil {
		r.SciencePoints = []SciencePoint{}
	}
	if r.RiskWarnings == nil {
		r.RiskWarnings = []string{}
	}
	if r.PackingList == nil {
		r.PackingList = []string{}
	}
	if r.Logistics.FuelStops == nil {
		r.Logistics.FuelStops = []FuelStop{}
	}
	if r.Logistics.AccommodationPoints == nil {
		r.Logistics.AccommodationPoints = []AccommodationPoint{}
	}
	if r.Logistics.SafetyWarnings == nil {
		r.Logistics.SafetyWarnings = []string{}
	}
}
