package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

var (
	_ ItineraryRepository = (*PostgresItineraryRepo)(nil)
	_ ItineraryRepository = (*MemoryItineraryRepo)(nil)
	_ ItineraryRepository = (*CachedItineraryRepo)(nil)
)

type ItineraryRepository interface {
	SaveItinerary(ctx context.Context, itinerary *types.ItineraryResponse) error
	GetItinerary(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error)
	UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error
}

// DB is the slice of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresItineraryRepo stores each itinerary as a JSONB document.
type PostgresItineraryRepo struct {
	logger *slog.Logger
	pgpool DB
}

func NewPostgresItineraryRepo(pgpool DB, logger *slog.Logger) *PostgresItineraryRepo {
	return &PostgresItineraryRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresItineraryRepo) SaveItinerary(ctx context.Context, itinerary *types.ItineraryResponse) error {
	document, err := json.Marshal(itinerary)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary %s: %w", itinerary.ItineraryID, err)
	}
	query := `
        INSERT INTO itineraries (id, payment_status, document)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE
        SET payment_status = EXCLUDED.payment_status,
            document       = EXCLUDED.document,
            updated_at     = now()
    `
	if _, err = r.pgpool.Exec(ctx, query, itinerary.ItineraryID, itinerary.PaymentStatus, document); err != nil {
		return fmt.Errorf("failed to save itinerary %s: %w", itinerary.ItineraryID, err)
	}
	return nil
}

func (r *PostgresItineraryRepo) GetItinerary(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error) {
	var document []byte
	err := r.pgpool.QueryRow(ctx, `SELECT document FROM itineraries WHERE id = $1`, itineraryID).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load itinerary %s: %w", itineraryID, err)
	}
	var it types.ItineraryResponse
	if err = json.Unmarshal(document, &it); err != nil {
		return nil, fmt.Errorf("failed to decode itinerary %s: %w", itineraryID, err)
	}
	return &it, nil
}

func (r *PostgresItineraryRepo) UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error {
	query := `
        UPDATE itineraries
        SET payment_status = $2,
            document       = jsonb_set(document, '{payment_status}', to_jsonb($2::text)),
            updated_at     = now()
        WHERE id = $1
    `
	tag, err := r.pgpool.Exec(ctx, query, itineraryID, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status for %s: %w", itineraryID, err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	r.logger.InfoContext(ctx, "Payment status updated",
		slog.String("itinerary_id", itineraryID),
		slog.String("status", status))
	return nil
}

// MemoryItineraryRepo keeps itineraries for the lifetime of the process. It is
// used when no database is configured.
type MemoryItineraryRepo struct {
	mu    sync.Mutex
	store *cache.Cache
}

func NewMemoryItineraryRepo() *MemoryItineraryRepo {
	return &MemoryItineraryRepo{store: cache.New(cache.NoExpiration, 0)}
}

func (r *MemoryItineraryRepo) SaveItinerary(_ context.Context, itinerary *types.ItineraryResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *itinerary
	r.store.Set(itinerary.ItineraryID, &cp, cache.NoExpiration)
	return nil
}

func (r *MemoryItineraryRepo) GetItinerary(_ context.Context, itineraryID string) (*types.ItineraryResponse, error) {
	v, ok := r.store.Get(itineraryID)
	if !ok {
		return nil, types.ErrNotFound
	}
	cp := *v.(*types.ItineraryResponse)
	return &cp, nil
}

func (r *MemoryItineraryRepo) UpdatePaymentStatus(_ context.Context, itineraryID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.store.Get(itineraryID)
	if !ok {
		return types.ErrNotFound
	}
	cp := *v.(*types.ItineraryResponse)
	cp.PaymentStatus = status
	r.store.Set(itineraryID, &cp, cache.NoExpiration)
	return nil
}

// CachedItineraryRepo is a read-through cache in front of another repository.
type CachedItineraryRepo struct {
	next  ItineraryRepository
	cache *cache.Cache
}

func NewCachedItineraryRepo(next ItineraryRepository, ttl time.Duration) *CachedItineraryRepo {
	return &CachedItineraryRepo{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *CachedItineraryRepo) SaveItinerary(ctx context.Context, itinerary *types.ItineraryResponse) error {
	if err := r.next.SaveItinerary(ctx, itinerary); err != nil {
		return err
	}
	cp := *itinerary
	r.cache.SetDefault(itinerary.ItineraryID, &cp)
	return nil
}

func (r *CachedItineraryRepo) GetItinerary(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error) {
	if v, ok := r.cache.Get(itineraryID); ok {
		cp := *v.(*types.ItineraryResponse)
		return &cp, nil
	}
	it, err := r.next.GetItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	cp := *it
	r.cache.SetDefault(itineraryID, &cp)
	return it, nil
}

func (r *CachedItineraryRepo) UpdatePaymentStatus(ctx context.Context, itineraryID, status string) error {
	err := r.next.UpdatePaymentStatus(ctx, itineraryID, status)
	r.cache.Delete(itineraryID)
	return err
}
