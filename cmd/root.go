package cmd

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/roadtrip-genie/app/logger"
	"github.com/FACorreiaa/roadtrip-genie/config"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

// loadEnvironment reads .env, the config file and sets up the default logger.
func loadEnvironment(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	logger = appLogger.New(cfg.Mode)
	slog.SetDefault(logger)
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "roadtrip",
	Short: "AI Roadtrip Genie backend",
	Long: `AI Roadtrip Genie plans multi-day roadtrips with Gemini, sells them
through Stripe checkout and exports them as PDF roadbooks.`,
	PersistentPreRunE: loadEnvironment,
	SilenceUsage:      true,
}

// Execute runs the root command. It is called from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("Command execution failed", slog.Any("error", err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(generateCmd)
}
