package container

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/roadtrip-genie/app/db"
	"github.com/FACorreiaa/roadtrip-genie/config"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/export"
	generativeAI "github.com/FACorreiaa/roadtrip-genie/internal/api/generative_ai"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/health"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/itinerary"
	llmInteraction "github.com/FACorreiaa/roadtrip-genie/internal/api/llm_interaction"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/payment"
	tripPlanner "github.com/FACorreiaa/roadtrip-genie/internal/api/trip_planner"
)

const itineraryCacheTTL = 10 * time.Minute

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	ItineraryService itinerary.ItineraryService
	ItineraryHandler *itinerary.ItineraryHandler
	PaymentHandler   *payment.PaymentHandler
	ExportHandler    *export.ExportHandler
	HealthHandler    *health.HealthHandler
}

// NewContainer connects to Postgres when configured, creates the Gemini
// client and wires every service and handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	var pool *pgxpool.Pool
	if cfg.PostgresEnabled() {
		dbConfig, err := database.NewDatabaseConfig(cfg, logger)
		if err != nil {
			logger.Error("Failed to generate database config", slog.Any("error", err))
			return nil, err
		}
		pool, err = database.Init(dbConfig.ConnectionURL, logger)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.Any("error", err))
			return nil, err
		}
	} else {
		logger.Warn("Postgres not configured, itineraries are kept in memory")
	}

	generator, err := generativeAI.NewAIClient(ctx, cfg.Gemini, logger)
	if err != nil {
		logger.Error("Failed to initialize Gemini client", slog.Any("error", err))
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	return Assemble(cfg, logger, pool, generator), nil
}

// Assemble wires services and handlers around an existing pool (nil for
// in-memory storage) and generator.
func Assemble(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, generator generativeAI.Generator) *Container {
	var (
		itineraryRepo itinerary.ItineraryRepository
		llmRepo       llmInteraction.LLmInteractionRepository
		pinger        health.Pinger
	)
	if pool != nil {
		itineraryRepo = itinerary.NewPostgresItineraryRepo(pool, logger)
		llmRepo = llmInteraction.NewPostgresLlmInteractionRepo(pool, logger)
		pinger = pool
	} else {
		itineraryRepo = itinerary.NewMemoryItineraryRepo()
		llmRepo = llmInteraction.NopLlmInteractionRepo{}
	}
	itineraryRepo = itinerary.NewCachedItineraryRepo(itineraryRepo, itineraryCacheTTL)

	plannerService := tripPlanner.NewService(generator, llmRepo, cfg.Gemini, logger)
	itineraryService := itinerary.NewItineraryService(itineraryRepo, plannerService, logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, logger)

	var gateway payment.Gateway
	if cfg.PaymentsEnabled() {
		gateway = payment.NewStripeGateway(cfg.Stripe)
	} else {
		logger.Warn("Stripe not configured, payment endpoints will return 503")
	}
	paymentService := payment.NewPaymentService(gateway, itineraryService, cfg.App.PricePerItinerary, logger)
	paymentHandler := payment.NewPaymentHandler(paymentService, logger)

	exportService := export.NewExportService(itineraryService, cfg.Export, cfg.Security, logger)
	exportHandler := export.NewExportHandler(exportService, logger)

	healthHandler := health.NewHealthHandler(pinger, health.Info{
		Name:        cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.Mode,
	}, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		ItineraryService: itineraryService,
		ItineraryHandler: itineraryHandler,
		PaymentHandler:   paymentHandler,
		ExportHandler:    exportHandler,
		HealthHandler:    healthHandler,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready. Without Postgres it returns
// true immediately.
func (c *Container) WaitForDB(ctx context.Context) bool {
	if c.Pool == nil {
		return true
	}
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
