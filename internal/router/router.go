package router

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appLogger "github.com/FACorreiaa/roadtrip-genie/app/logger"
	appMiddleware "github.com/FACorreiaa/roadtrip-genie/app/middleware"
	_ "github.com/FACorreiaa/roadtrip-genie/docs"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/export"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/health"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/itinerary"
	"github.com/FACorreiaa/roadtrip-genie/internal/api/payment"
)

const defaultTimeout = 120 * time.Second

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.ItineraryHandler
	PaymentHandler   *payment.PaymentHandler
	ExportHandler    *export.ExportHandler
	HealthHandler    *health.HealthHandler

	Logger      *slog.Logger
	CORSOrigins []string
	Timeout     time.Duration
	// GeneratePerMinute caps AI calls per client IP. Zero disables the limit.
	GeneratePerMinute int
	// DownloadSecret signs export tokens. RequireDownloadToken gates the PDF
	// route behind them.
	DownloadSecret       []byte
	RequireDownloadToken bool
}

// SetupRouter initializes and configures the main application router.
func SetupRouter(cfg *Config) chi.Router {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5, "application/json"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", cfg.HealthHandler.Root)
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", cfg.HealthHandler.Index)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", cfg.HealthHandler.Health)
			r.Get("/db", cfg.HealthHandler.DatabaseHealth)
		})

		r.Route("/itinerary", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.GeneratePerMinute > 0 {
					r.Use(httprate.LimitByIP(cfg.GeneratePerMinute, time.Minute))
				}
				r.Post("/generate", cfg.ItineraryHandler.GenerateItinerary)
				r.Post("/refine", cfg.ItineraryHandler.RefineItinerary)
			})
			r.Get("/{itinerary_id}", cfg.ItineraryHandler.GetItinerary)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-checkout-session", cfg.PaymentHandler.CreateCheckoutSession)
			r.Post("/webhook", cfg.PaymentHandler.StripeWebhook)
		})

		r.Route("/export", func(r chi.Router) {
			r.With(appMiddleware.RequireDownloadToken(cfg.DownloadSecret, cfg.RequireDownloadToken, cfg.Logger)).
				Get("/pdf/{itinerary_id}", cfg.ExportHandler.ExportPDF)
			r.Post("/token/{itinerary_id}", cfg.ExportHandler.IssueDownloadToken)
		})
	})

	return r
}
