// Package main is the entry point for the movie storefront terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"movie-storefront/internal/app/service"
	"movie-storefront/internal/config"
	"movie-storefront/internal/domain"
	"movie-storefront/internal/infra/cache"
	"movie-storefront/internal/infra/catalog"
	"movie-storefront/internal/logger"
	"movie-storefront/internal/transport/tui"
	"movie-storefront/internal/validator"
)

var (
	cfgFile string
	start   string
	baseURL string
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal client for the movie storefront",
	Long: `storefront browses, searches and buys movies from a catalog API.

Locations use the web client's page names, for example
"movies?genre=Drama&sort1=title&order1=asc" or "movie?id=tt0113277".`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./config/config.yaml)")
	rootCmd.Flags().StringVar(&start, "start", "", "first location to open (overrides storefront.start_location)")
	rootCmd.Flags().StringVar(&baseURL, "catalog", "", "catalog API base URL (overrides catalog.base_url)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if baseURL != "" {
		cfg.Catalog.BaseURL = baseURL
	}
	if start != "" {
		cfg.Storefront.StartLocation = start
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Close() }()

	log.Info("starting movie storefront",
		zap.String("env", cfg.App.Env),
		zap.String("catalog", cfg.Catalog.BaseURL),
		zap.String("start", cfg.Storefront.StartLocation),
	)

	// Create catalog client
	client := catalog.New(
		catalog.ClientConfig{
			BaseURL: cfg.Catalog.BaseURL,
			Timeout: cfg.Catalog.Timeout,
			Retry: catalog.RetryConfig{
				MaxAttempts: cfg.Catalog.Retry.MaxAttempts,
				WaitTime:    cfg.Catalog.Retry.WaitTime,
				MaxWaitTime: cfg.Catalog.Retry.MaxWaitTime,
			},
			CB: catalog.CBConfig{
				MaxRequests:  cfg.Catalog.CB.MaxRequests,
				Interval:     cfg.Catalog.CB.Interval,
				Timeout:      cfg.Catalog.CB.Timeout,
				FailureRatio: cfg.Catalog.CB.FailureRatio,
			},
		},
		log.Named("catalog").Logger,
	)

	// Create validator
	v := validator.New()

	// Create services
	deps := tui.Deps{
		Catalog:   client,
		Cache:     cache.NewSuggestions(cfg.Storefront.SuggestionCacheSize, log.Logger),
		Cart:      service.NewCartService(client, log.Logger),
		Checkout:  service.NewCheckoutService(client, v, log.Logger),
		Detail:    service.NewDetailService(client, log.Logger),
		Auth:      service.NewAuthService(client, v, log.Logger),
		Dashboard: service.NewDashboardService(client, v, log.Logger),
		Validator: v,
		Logger:    log.Named("tui").Logger,
	}

	ctx := cmd.Context()
	model := tui.New(deps, tui.Options{
		Start:   domain.ParseLocation(cfg.Storefront.StartLocation),
		Context: ctx,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error("storefront exited with error", zap.Error(err))
		return err
	}

	log.Info("storefront stopped")
	return nil
}
