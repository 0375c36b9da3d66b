package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

func sampleItinerary(id string) *types.ItineraryResponse {
	it := &types.ItineraryResponse{
		ItineraryID:   id,
		CreatedAt:     "2025-06-01T10:00:00Z",
		TripSummary:   "Coastal loop",
		SeasonInfo:    "Summer - Peak season, high temperatures possible",
		PaymentStatus: types.PaymentStatusPending,
		Budget:        types.BudgetBreakdown{Subtotal: 100, BufferFund: 10, Total: 110},
	}
	it.EnsureCollections()
	return it
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPostgresItineraryRepo(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewPostgresItineraryRepo(mock, discardLogger())

	it := sampleItinerary("itin_aaaaaaaaaaaa")
	document, err := json.Marshal(it)
	require.NoError(t, err)

	t.Run("SaveItinerary upserts the document", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO itineraries").
			WithArgs(it.ItineraryID, it.PaymentStatus, document).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.SaveItinerary(ctx, it))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetItinerary decodes the document", func(t *testing.T) {
		mock.ExpectQuery("SELECT document FROM itineraries").
			WithArgs(it.ItineraryID).
			WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(document))

		got, err := repo.GetItinerary(ctx, it.ItineraryID)
		require.NoError(t, err)
		assert.Equal(t, it, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetItinerary maps no rows to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT document FROM itineraries").
			WithArgs("itin_missing").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetItinerary(ctx, "itin_missing")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdatePaymentStatus", func(t *testing.T) {
		mock.ExpectExec("UPDATE itineraries").
			WithArgs(it.ItineraryID, types.PaymentStatusCompleted).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.UpdatePaymentStatus(ctx, it.ItineraryID, types.PaymentStatusCompleted))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdatePaymentStatus unknown itinerary", func(t *testing.T) {
		mock.ExpectExec("UPDATE itineraries").
			WithArgs("itin_missing", types.PaymentStatusCompleted).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdatePaymentStatus(ctx, "itin_missing", types.PaymentStatusCompleted)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryItineraryRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItineraryRepo()

	_, err := repo.GetItinerary(ctx, "itin_x")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePaymentStatus(ctx, "itin_x", types.PaymentStatusCompleted), types.ErrNotFound)

	it := sampleItinerary("itin_x")
	require.NoError(t, repo.SaveItinerary(ctx, it))

	it.TripSummary = "mutated after save"
	got, err := repo.GetItinerary(ctx, "itin_x")
	require.NoError(t, err)
	assert.Equal(t, "Coastal loop", got.TripSummary)

	require.NoError(t, repo.UpdatePaymentStatus(ctx, "itin_x", types.PaymentStatusCompleted))
	got, err = repo.GetItinerary(ctx, "itin_x")
	require.NoError(t, err)
	assert.Equal(t, types.PaymentStatusCompleted, got.PaymentStatus)
}

type countingRepo struct {
	ItineraryRepository
	gets int
}

func (c *countingRepo) GetItinerary(ctx context.Context, id string) (*types.ItineraryResponse, error) {
	c.gets++
	return c.ItineraryRepository.GetItinerary(ctx, id)
}

func TestMemoryItineraryRepo_ConcurrentSaveAndStatusUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryItineraryRepo()
	require.NoError(t, repo.SaveItinerary(ctx, sampleItinerary("itin_busy")))

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			it := sampleItinerary("itin_busy")
			it.TripSummary = fmt.Sprintf("v%d", i)
			_ = repo.SaveItinerary(ctx, it)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_ = repo.UpdatePaymentStatus(ctx, "itin_busy", types.PaymentStatusCompleted)
		}
	}()
	wg.Wait()

	got, err := repo.GetItinerary(ctx, "itin_busy")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("v%d", rounds-1), got.TripSummary)
}

func TestCachedItineraryRepo(t *testing.T) {
	ctx := context.Background()
	inner := &countingRepo{ItineraryRepository: NewMemoryItineraryRepo()}
	require.NoError(t, inner.SaveItinerary(ctx, sampleItinerary("itin_c")))

	repo := NewCachedItineraryRepo(inner, time.Minute)

	_, err := repo.GetItinerary(ctx, "itin_c")
	require.NoError(t, err)
	_, err = repo.GetItinerary(ctx, "itin_c")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read is served from cache")

	require.NoError(t, repo.UpdatePaymentStatus(ctx, "itin_c", types.PaymentStatusCompleted))
	got, err := repo.GetItinerary(ctx, "itin_c")
	require.NoError(t, err)
	assert.Equal(t, types.PaymentStatusCompleted, got.PaymentStatus)
	assert.Equal(t, 2, inner.gets, "update invalidates the cached copy")

	_, err = repo.GetItinerary(ctx, "itin_missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
