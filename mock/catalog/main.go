// Package main runs the development catalog server: an in-memory movie API
// with sample data for running the storefront locally.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"movie-storefront/internal/config"
	"movie-storefront/internal/infra/memstore"
	redisstore "movie-storefront/internal/infra/redis"
	"movie-storefront/internal/logger"
	"movie-storefront/internal/transport/httpserver"
	"movie-storefront/internal/validator"
)

var (
	cfgFile  string
	addr     string
	fixtures string
)

var rootCmd = &cobra.Command{
	Use:   "catalog-mock",
	Short: "In-memory catalog API for local storefront development",
	Long: `catalog-mock serves the movie API with sample data.

Customer login: ada@example.com / secret
Employee login: classta@email.edu / classta`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./config/config.yaml)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides mock.addr)")
	rootCmd.Flags().StringVar(&fixtures, "fixtures", "", "JSON fixture file replacing the built-in sample data")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Mock.Addr = addr
	}

	// The server's log goes to the terminal
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: "console",
			Output: "stdout",
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
	defer func() { _ = log.Sync() }()

	store, err := loadStore()
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	storage, err := sessionStorage(cfg.Mock.Redis, log.Logger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	if storage != nil {
		defer func() { _ = storage.Close() }()
	}

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			BodyLimit:         cfg.Mock.BodyLimit,
			SessionExpiration: cfg.Mock.SessionExpiration,
			Debug:             cfg.App.Debug,
			SessionStorage:    storage,
		},
		store,
		validator.New(),
		log.Logger,
	)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	return server.Start(cfg.Mock.Addr)
}

func loadStore() (*memstore.Store, error) {
	if fixtures == "" {
		return memstore.New()
	}
	data, err := os.ReadFile(fixtures)
	if err != nil {
		return nil, err
	}
	return memstore.NewFromJSON(data)
}

// sessionStorage connects to Redis when a host is configured.
// It returns nil for in-memory sessions.
func sessionStorage(cfg config.RedisConfig, log *zap.Logger) (fiber.Storage, error) {
	if cfg.Host == "" {
		log.Info("sessions kept in memory")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping Redis to verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info("sessions stored in Redis",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("key_prefix", cfg.KeyPrefix),
	)

	return redisstore.NewSessionStorage(client, log, cfg.KeyPrefix), nil
}
