package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/roadtrip-genie/app/observability/metrics"
	tripPlanner "github.com/FACorreiaa/roadtrip-genie/internal/api/trip_planner"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

var _ ItineraryService = (*ItineraryServiceImpl)(nil)

type ItineraryService interface {
	Generate(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
	Refine(ctx context.Context, req types.ItineraryRefinementRequest) (*types.ItineraryResponse, error)
	GetByID(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error)
	UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error
}

type ItineraryServiceImpl struct {
	logger  *slog.Logger
	repo    ItineraryRepository
	planner tripPlanner.Service
	now     func() time.Time
	newID   func() string
}

func NewItineraryService(repo ItineraryRepository, planner tripPlanner.Service, logger *slog.Logger) *ItineraryServiceImpl {
	return &ItineraryServiceImpl{
		logger:  logger,
		repo:    repo,
		planner: planner,
		now:     time.Now,
		newID:   NewItineraryID,
	}
}

// NewItineraryID returns "itin_" followed by 12 random hex characters.
func NewItineraryID() string {
	return "itin_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func formatCreatedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SeasonInfo gives a generic advisory for the month the trip starts in.
func SeasonInfo(start time.Time) string {
	switch start.Month() {
	case time.December, time.January, time.February:
		return "Winter - Check snow conditions, carry chains"
	case time.March, time.April, time.May:
		return "Spring - Variable weather, road conditions may vary"
	case time.June, time.July, time.August:
		return "Summer - Peak season, high temperatures possible"
	default:
		return "Fall - Beautiful foliage, prepare for cooler weather"
	}
}

func (s *ItineraryServiceImpl) Generate(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	itineraryID := s.newID()
	l := s.logger.With(slog.String("method", "Generate"), slog.String("itinerary_id", itineraryID))

	generated, err := s.planner.GenerateItinerary(ctx, itineraryID, req)
	if err != nil {
		recordOutcome(ctx, metrics.Get().ItineraryGenerationsTotal, "error")
		return nil, err
	}

	out := *generated
	out.ItineraryID = itineraryID
	out.CreatedAt = formatCreatedAt(s.now())
	if out.TripSummary == "" {
		out.TripSummary = "AI-generated itinerary"
	}
	if out.SeasonInfo == "" {
		out.SeasonInfo = SeasonInfo(req.StartDate.Time)
	}
	if out.IsRoundTrip == nil {
		roundTrip := req.IsRoundTrip
		out.IsRoundTrip = &roundTrip
	}
	out.PaymentStatus = types.PaymentStatusPending
	out.EnsureCollections()

	if err = s.repo.SaveItinerary(ctx, &out); err != nil {
		recordOutcome(ctx, metrics.Get().ItineraryGenerationsTotal, "error")
		l.ErrorContext(ctx, "Failed to persist itinerary", slog.Any("error", err))
		return nil, err
	}

	recordOutcome(ctx, metrics.Get().ItineraryGenerationsTotal, "success")
	l.InfoContext(ctx, "Itinerary generated successfully")
	return &out, nil
}

func (s *ItineraryServiceImpl) Refine(ctx context.Context, req types.ItineraryRefinementRequest) (*types.ItineraryResponse, error) {
	refined, err := s.planner.RefineItinerary(ctx, req.CurrentItinerary, req.RefinementRequest)
	if err != nil {
		recordOutcome(ctx, metrics.Get().ItineraryRefinementsTotal, "error")
		return nil, err
	}

	out := *refined
	stored, err := s.storedForRefinement(ctx, req.CurrentItinerary, out.ItineraryID)
	if err != nil {
		recordOutcome(ctx, metrics.Get().ItineraryRefinementsTotal, "error")
		return nil, err
	}
	if stored != nil {
		// Identity and payment state belong to the stored document, never to the
		// client payload or the model output.
		out.ItineraryID = stored.ItineraryID
		out.CreatedAt = stored.CreatedAt
		out.PaymentStatus = stored.PaymentStatus
		if out.IsRoundTrip == nil {
			out.IsRoundTrip = stored.IsRoundTrip
		}
	} else {
		out.ItineraryID = uuid.NewString()
		out.CreatedAt = formatCreatedAt(s.now())
		out.PaymentStatus = types.PaymentStatusUnpaid
	}
	out.EnsureCollections()

	l := s.logger.With(slog.String("method", "Refine"), slog.String("itinerary_id", out.ItineraryID))
	if err = s.repo.SaveItinerary(ctx, &out); err != nil {
		recordOutcome(ctx, metrics.Get().ItineraryRefinementsTotal, "error")
		l.ErrorContext(ctx, "Failed to persist refined itinerary", slog.Any("error", err))
		return nil, err
	}

	recordOutcome(ctx, metrics.Get().ItineraryRefinementsTotal, "success")
	l.InfoContext(ctx, "Itinerary refined successfully", slog.Bool("existing", stored != nil))
	return &out, nil
}

// storedForRefinement loads the itinerary being refined. The id submitted with
// current_itinerary wins over the one echoed by the model. A nil result means
// the refinement starts a new document.
func (s *ItineraryServiceImpl) storedForRefinement(ctx context.Context, current map[string]any, echoedID string) (*types.ItineraryResponse, error) {
	itineraryID, _ := current["itinerary_id"].(string)
	if itineraryID == "" {
		itineraryID = echoedID
	}
	if itineraryID == "" {
		return nil, nil
	}
	stored, err := s.repo.GetItinerary(ctx, itineraryID)
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load itinerary %s for refinement: %w", itineraryID, err)
	}
	return stored, nil
}

func (s *ItineraryServiceImpl) GetByID(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error) {
	it, err := s.repo.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("get itinerary %s: %w", itineraryID, err)
	}
	return it, nil
}

func (s *ItineraryServiceImpl) UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error {
	if err := s.repo.UpdatePaymentStatus(ctx, itineraryID, status); err != nil {
		return fmt.Errorf("update payment status of %s: %w", itineraryID, err)
	}
	return nil
}

func recordOutcome(ctx context.Context, counter metric.Int64Counter, outcome string) {
	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
