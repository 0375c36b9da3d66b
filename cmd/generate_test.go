package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) Generate(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

func (m *MockItineraryService) Refine(ctx context.Context, req types.ItineraryRefinementRequest) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

func (m *MockItineraryService) GetByID(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error) {
	args := m.Called(ctx, itineraryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ItineraryResponse), args.Error(1)
}

func (m *MockItineraryService) UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error {
	return m.Called(ctx, itineraryID, status).Error(0)
}

// newGenerateCmd returns a fresh command carrying the generate flags.
func newGenerateCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "generate"}
	addGenerateFlags(cmd)
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestRequestFromFlags(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		cmd := newGenerateCmd(t, "--from", "Denver, CO", "--to", "Moab, UT", "--days", "4",
			"--start-date", "2025-06-01", "--interests", "photography,geology", "--vehicle", "truck", "--round-trip")

		req, err := requestFromFlags(cmd)
		require.NoError(t, err)
		assert.Equal(t, "Denver, CO", req.StartLocation)
		assert.Equal(t, 4, req.TripDuration)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), req.StartDate.Time)
		assert.Equal(t, []types.InterestCategory{types.InterestPhotography, types.InterestGeology}, req.Interests)
		assert.Equal(t, types.VehicleTruck, req.VehicleType)
		assert.Equal(t, 2, req.NumberOfPersons)
		assert.True(t, req.IsRoundTrip)
	})

	t.Run("bad date", func(t *testing.T) {
		cmd := newGenerateCmd(t, "--from", "A", "--to", "B", "--start-date", "06/01/2025")
		_, err := requestFromFlags(cmd)
		assert.ErrorContains(t, err, "--start-date")
	})

	t.Run("duration out of range", func(t *testing.T) {
		cmd := newGenerateCmd(t, "--from", "A", "--to", "B", "--days", "31", "--start-date", "2025-06-01")
		_, err := requestFromFlags(cmd)
		assert.ErrorContains(t, err, "trip_duration")
	})

	t.Run("unknown interest", func(t *testing.T) {
		cmd := newGenerateCmd(t, "--from", "A", "--to", "B", "--interests", "skydiving", "--start-date", "2025-06-01")
		_, err := requestFromFlags(cmd)
		assert.Error(t, err)
	})
}

func TestGenerateRunE(t *testing.T) {
	t.Run("prints itinerary json", func(t *testing.T) {
		svc := new(MockItineraryService)
		svc.On("Generate", mock.Anything, mock.AnythingOfType("types.ItineraryRequest")).
			Return(&types.ItineraryResponse{ItineraryID: "itin_0123456789ab", TripSummary: "Canyon <loop> & back"}, nil)

		var out bytes.Buffer
		cmd := newGenerateCmd(t, "--from", "Denver, CO", "--to", "Moab, UT", "--start-date", "2025-06-01")
		require.NoError(t, generateRunE(svc, &out, cmd))

		var doc map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, "itin_0123456789ab", doc["itinerary_id"])
		assert.Contains(t, out.String(), "Canyon <loop> & back")
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(MockItineraryService)
		svc.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

		cmd := newGenerateCmd(t, "--from", "Denver, CO", "--to", "Moab, UT", "--start-date", "2025-06-01")
		err := generateRunE(svc, &bytes.Buffer{}, cmd)
		assert.ErrorContains(t, err, "quota exceeded")
	})
}
