package llmInteraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

var _ LLmInteractionRepository = (*PostgresLlmInteractionRepo)(nil)
var _ LLmInteractionRepository = NopLlmInteractionRepo{}

type LLmInteractionRepository interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error)
}

// DB is the slice of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresLlmInteractionRepo struct {
	logger *slog.Logger
	pgpool DB
}

func NewPostgresLlmInteractionRepo(pgpool DB, logger *slog.Logger) *PostgresLlmInteractionRepo {
	return &PostgresLlmInteractionRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresLlmInteractionRepo) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error) {
	query := `
        INSERT INTO llm_interactions (
            itinerary_id, operation, prompt, response_text, model_used, latency_ms
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx, query,
		interaction.ItineraryID, interaction.Operation, interaction.Prompt,
		interaction.ResponseText, interaction.ModelUsed, interaction.LatencyMs,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save llm interaction: %w", err)
	}
	r.logger.DebugContext(ctx, "LLM interaction saved",
		slog.String("id", id.String()),
		slog.String("operation", interaction.Operation))
	return id, nil
}

// NopLlmInteractionRepo discards interactions when no database is configured.
type NopLlmInteractionRepo struct{}

func (NopLlmInteractionRepo) SaveInteraction(context.Context, types.LlmInteraction) (uuid.UUID, error) {
	return uuid.Nil, nil
}
