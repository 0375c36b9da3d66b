package itinerary

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

type MockTripPlanner struct {
	mock.Mock
}

func (m *MockTripPlanner) GenerateItinerary(ctx context.Context, itineraryID string, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, itineraryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

func (m *MockTripPlanner) RefineItinerary(ctx context.Context, current map[string]any, request string) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, current, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

var fixedNow = time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)

func setupItineraryServiceTest() (*ItineraryServiceImpl, *MockTripPlanner, *MemoryItineraryRepo) {
	planner := new(MockTripPlanner)
	repo := NewMemoryItineraryRepo()
	svc := NewItineraryService(repo, planner, discardLogger())
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "itin_0123456789ab" }
	return svc, planner, repo
}

func tripRequest(month time.Month) types.ItineraryRequest {
	req := types.ItineraryRequest{
		StartLocation:   "Denver, CO",
		EndLocation:     "Moab, UT",
		TripDuration:    3,
		NumberOfPersons: types.DefaultNumberOfPersons,
		StartDate:       types.Date{Time: time.Date(2025, month, 10, 0, 0, 0, 0, time.UTC)},
		IsRoundTrip:     true,
	}
	req.ApplyDefaults()
	return req
}

func TestNewItineraryID(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^itin_[0-9a-f]{12}$`), NewItineraryID())
	assert.NotEqual(t, NewItineraryID(), NewItineraryID())
}

func TestSeasonInfo(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "Winter - Check snow conditions, carry chains"},
		{time.December, "Winter - Check snow conditions, carry chains"},
		{time.April, "Spring - Variable weather, road conditions may vary"},
		{time.July, "Summer - Peak season, high temperatures possible"},
		{time.October, "Fall - Beautiful foliage, prepare for cooler weather"},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonInfo(time.Date(2025, tt.month, 1, 0, 0, 0, 0, time.UTC)))
		})
	}
}

func TestItineraryServiceImpl_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("fills fallbacks and persists", func(t *testing.T) {
		svc, planner, repo := setupItineraryServiceTest()
		req := tripRequest(time.January)
		planner.On("GenerateItinerary", mock.Anything, "itin_0123456789ab", req).
			Return(&types.ItineraryResponse{ItineraryMarkdown: "## Day 1: Moab"}, nil).Once()

		out, err := svc.Generate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "itin_0123456789ab", out.ItineraryID)
		assert.Equal(t, "2025-05-20T08:30:00Z", out.CreatedAt)
		assert.Equal(t, "AI-generated itinerary", out.TripSummary)
		assert.Equal(t, "Winter - Check snow conditions, carry chains", out.SeasonInfo)
		require.NotNil(t, out.IsRoundTrip)
		assert.True(t, *out.IsRoundTrip)
		assert.Equal(t, types.PaymentStatusPending, out.PaymentStatus)

		stored, err := repo.GetItinerary(ctx, "itin_0123456789ab")
		require.NoError(t, err)
		assert.Equal(t, out, stored)
		planner.AssertExpectations(t)
	})

	t.Run("keeps model values", func(t *testing.T) {
		svc, planner, _ := setupItineraryServiceTest()
		req := tripRequest(time.July)
		oneWay := false
		planner.On("GenerateItinerary", mock.Anything, mock.Anything, req).
			Return(&types.ItineraryResponse{TripSummary: "Desert arches", SeasonInfo: "Hot", IsRoundTrip: &oneWay}, nil).Once()

		out, err := svc.Generate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Desert arches", out.TripSummary)
		assert.Equal(t, "Hot", out.SeasonInfo)
		assert.False(t, *out.IsRoundTrip)
	})

	t.Run("planner error", func(t *testing.T) {
		svc, planner, repo := setupItineraryServiceTest()
		req := tripRequest(time.July)
		planner.On("GenerateItinerary", mock.Anything, mock.Anything, req).Return(nil, errors.New("model unavailable")).Once()

		out, err := svc.Generate(ctx, req)
		require.Error(t, err)
		assert.Nil(t, out)
		_, err = repo.GetItinerary(ctx, "itin_0123456789ab")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestItineraryServiceImpl_Refine(t *testing.T) {
	ctx := context.Background()

	t.Run("fills missing identity fields", func(t *testing.T) {
		svc, planner, repo := setupItineraryServiceTest()
		req := types.ItineraryRefinementRequest{
			CurrentItinerary:  map[string]any{"trip_summary": "old"},
			RefinementRequest: "More hiking",
		}
		planner.On("RefineItinerary", mock.Anything, req.CurrentItinerary, req.RefinementRequest).
			Return(&types.ItineraryResponse{TripSummary: "new"}, nil).Once()

		out, err := svc.Refine(ctx, req)
		require.NoError(t, err)
		_, parseErr := uuid.Parse(out.ItineraryID)
		assert.NoError(t, parseErr)
		assert.Equal(t, "2025-05-20T08:30:00Z", out.CreatedAt)
		assert.Equal(t, types.PaymentStatusUnpaid, out.PaymentStatus)

		_, err = repo.GetItinerary(ctx, out.ItineraryID)
		assert.NoError(t, err)
	})

	t.Run("client cannot mark a stored itinerary as paid", func(t *testing.T) {
		svc, planner, repo := setupItineraryServiceTest()
		stored := sampleItinerary("itin_victim")
		stored.CreatedAt = "2025-01-01T00:00:00Z"
		stored.PaymentStatus = types.PaymentStatusPending
		require.NoError(t, repo.SaveItinerary(ctx, stored))

		req := types.ItineraryRefinementRequest{
			CurrentItinerary:  map[string]any{"itinerary_id": "itin_victim", "payment_status": "completed"},
			RefinementRequest: "Cheaper hotels",
		}
		planner.On("RefineItinerary", mock.Anything, req.CurrentItinerary, req.RefinementRequest).
			Return(&types.ItineraryResponse{
				ItineraryID:   "itin_victim",
				CreatedAt:     "2030-01-01T00:00:00Z",
				PaymentStatus: types.PaymentStatusCompleted,
			}, nil).Once()

		out, err := svc.Refine(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "itin_victim", out.ItineraryID)
		assert.Equal(t, "2025-01-01T00:00:00Z", out.CreatedAt)
		assert.Equal(t, types.PaymentStatusPending, out.PaymentStatus)

		got, err := repo.GetItinerary(ctx, "itin_victim")
		require.NoError(t, err)
		assert.Equal(t, types.PaymentStatusPending, got.PaymentStatus)
	})

	t.Run("paid itinerary stays paid when the model drops the status", func(t *testing.T) {
		svc, planner, repo := setupItineraryServiceTest()
		roundTrip := true
		stored := sampleItinerary("itin_paid")
		stored.PaymentStatus = types.PaymentStatusCompleted
		stored.IsRoundTrip = &roundTrip
		require.NoError(t, repo.SaveItinerary(ctx, stored))

		req := types.ItineraryRefinementRequest{
			CurrentItinerary:  map[string]any{"itinerary_id": "itin_paid"},
			RefinementRequest: "Add a spa day",
		}
		planner.On("RefineItinerary", mock.Anything, req.CurrentItinerary, req.RefinementRequest).
			Return(&types.ItineraryResponse{TripSummary: "spa"}, nil).Once()

		out, err := svc.Refine(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "itin_paid", out.ItineraryID)
		assert.Equal(t, types.PaymentStatusCompleted, out.PaymentStatus)
		require.NotNil(t, out.IsRoundTrip)
		assert.True(t, *out.IsRoundTrip)

		got, err := repo.GetItinerary(ctx, "itin_paid")
		require.NoError(t, err)
		assert.Equal(t, types.PaymentStatusCompleted, got.PaymentStatus)
		assert.Equal(t, "spa", got.TripSummary)
	})

	t.Run("unknown id starts a new unpaid itinerary", func(t *testing.T) {
		svc, planner, repo := setupItineraryServiceTest()
		req := types.ItineraryRefinementRequest{
			CurrentItinerary:  map[string]any{"itinerary_id": "itin_unknown"},
			RefinementRequest: "Longer hikes",
		}
		planner.On("RefineItinerary", mock.Anything, req.CurrentItinerary, req.RefinementRequest).
			Return(&types.ItineraryResponse{
				ItineraryID:   "itin_unknown",
				PaymentStatus: types.PaymentStatusCompleted,
			}, nil).Once()

		out, err := svc.Refine(ctx, req)
		require.NoError(t, err)
		assert.NotEqual(t, "itin_unknown", out.ItineraryID)
		assert.Equal(t, types.PaymentStatusUnpaid, out.PaymentStatus)
		assert.Equal(t, "2025-05-20T08:30:00Z", out.CreatedAt)

		_, err = repo.GetItinerary(ctx, "itin_unknown")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestItineraryServiceImpl_GetByIDAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := setupItineraryServiceTest()

	_, err := svc.GetByID(ctx, "itin_none")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, svc.UpdatePaymentStatus(ctx, "itin_none", types.PaymentStatusCompleted), types.ErrNotFound)

	require.NoError(t, repo.SaveItinerary(ctx, sampleItinerary("itin_some")))
	require.NoError(t, svc.UpdatePaymentStatus(ctx, "itin_some", types.PaymentStatusFailed))
	got, err := svc.GetByID(ctx, "itin_some")
	require.NoError(t, err)
	assert.Equal(t, types.PaymentStatusFailed, got.PaymentStatus)
}
