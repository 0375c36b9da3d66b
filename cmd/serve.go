package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	database "github.com/FACorreiaa/roadtrip-genie/app/db"
	"github.com/FACorreiaa/roadtrip-genie/app/tracer"
	"github.com/FACorreiaa/roadtrip-genie/internal/container"
	"github.com/FACorreiaa/roadtrip-genie/internal/router"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	providers, err := tracer.InitTracingAndMetrics(cfg.App.Name, cfg.App.Version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down telemetry", slog.Any("error", err))
		}
	}()

	if cfg.PostgresEnabled() {
		if err = runMigrations(); err != nil {
			return err
		}
	}

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if !c.WaitForDB(ctx) {
		return errors.New("database not ready after waiting")
	}

	handler := router.SetupRouter(&router.Config{
		ItineraryHandler:     c.ItineraryHandler,
		PaymentHandler:       c.PaymentHandler,
		ExportHandler:        c.ExportHandler,
		HealthHandler:        c.HealthHandler,
		Logger:               logger,
		CORSOrigins:          cfg.CORSOrigins(),
		Timeout:              cfg.Server.Timeout,
		GeneratePerMinute:    cfg.RateLimit.GeneratePerMinute,
		DownloadSecret:       []byte(cfg.Security.SecretKey),
		RequireDownloadToken: cfg.Export.RequirePayment,
	})

	servers := []*http.Server{newServer(fmt.Sprintf(":%s", cfg.Server.HTTPPort), handler)}
	if cfg.Handlers.Prometheus.Enabled {
		servers = append(servers, newServer(fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port), tracer.MetricsHandler()))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err = g.Wait(); err != nil {
		return err
	}
	logger.Info("Application shut down complete.")
	return nil
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func runMigrations() error {
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		return err
	}
	return database.RunMigrations(dbConfig.ConnectionURL, logger)
}
