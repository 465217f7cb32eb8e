package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rx3lixir/fonoteka/internal/bot"
	"github.com/rx3lixir/fonoteka/internal/catalog"
	"github.com/rx3lixir/fonoteka/internal/config"
	"github.com/rx3lixir/fonoteka/internal/db"
	"github.com/rx3lixir/fonoteka/internal/httpserver"
	"github.com/rx3lixir/fonoteka/internal/ratelimit"
	"github.com/rx3lixir/fonoteka/pkg/jwt"
	"github.com/rx3lixir/fonoteka/pkg/s3storage"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	flag.Parse()

	// Setting up logger
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           log.DebugLevel,
	})

	// Initializing global context instance
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initializing config manager
	cm, err := config.NewConfigManager(*configPath)
	if err != nil {
		logger.Error("Error getting config file", "error", err)
		os.Exit(1)
	}

	c := cm.GetConfig()

	// Validating configuration
	if err := c.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info(
		"Configuration loaded",
		"env", c.GeneralParams.Env,
		"http_addr", c.GeneralParams.HTTPaddress,
		"database", c.MainDBParams.Name,
		"valkey", c.ValkeyParams.Host,
		"archive", c.S3Params.Enabled,
	)

	// Creating database connection pool
	pool, err := db.CreatePostgresPool(ctx, c.MainDBParams.GetDSN())
	if err != nil {
		logger.Error(
			"Failed to create postgres pool",
			"error", err,
			"db", c.MainDBParams.Name,
		)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("Database connection established", "db", c.MainDBParams.Name)

	// Creates database store
	store := db.NewPostgresStore(pool)

	// The catalog core: ingestion, search, stats
	catalogService := catalog.NewService(
		store,
		logger,
		c.SearchParams.PageSize,
		c.SearchParams.ExactMatchScore,
	)

	// Initializing per-sender rate limiter
	limiter, err := ratelimit.NewLimiter(
		c.ValkeyParams.Host,
		c.ValkeyParams.Password,
		time.Duration(c.ValkeyParams.WindowSeconds)*time.Second,
		int64(c.ValkeyParams.MaxPerWindow),
		logger,
	)
	if err != nil {
		logger.Error("Failed to create rate limiter", "error", err)
		os.Exit(1)
	}
	defer limiter.Close()

	logger.Info("Rate limiter initialized")

	// Optional S3 archive for accepted tracks
	var archive *s3storage.MinIOClient
	if c.S3Params.Enabled {
		archive, err = s3storage.NewMinIOClient(
			c.S3Params.Endpoint,
			c.S3Params.AccessKeyID,
			c.S3Params.SecretAccessKey,
			c.S3Params.BucketName,
			c.S3Params.UseSSL,
		)
		if err != nil {
			logger.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		logger.Info("S3 archive initialized", "bucket", c.S3Params.BucketName)
	}

	// Initializing JWT service for the ops API
	jwtService := jwt.NewService(c.GeneralParams.SecretKey, 24*time.Hour)

	// Creates the Telegram bot
	tgBot, err := bot.New(
		c.TelegramParams.Token,
		time.Duration(c.TelegramParams.PollTimeout)*time.Second,
		catalogService,
		store,
		limiter,
		archive,
		logger,
	)
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// Creates HTTP server
	HTTPserver := httpserver.New(
		c.GeneralParams.HTTPaddress,
		catalogService,
		jwtService,
		logger,
	)

	// Channel to listen for errors coming from the servers
	serverErrors := make(chan error, 2)

	// Start the HTTP server in a goroutine
	go func() {
		serverErrors <- HTTPserver.Start()
	}()

	// Start the bot in a goroutine
	go func() {
		serverErrors <- tgBot.Start()
	}()

	logger.Info("All servers started successfully")

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-serverErrors:
		logger.Error("Server error", "error", err)
		os.Exit(1)

	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig)

		// Give outstanding requests 10s to complete
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("Shutting down HTTP server...")
		if err := HTTPserver.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
		logger.Info("Shutting down bot...")
		if err := tgBot.Shutdown(ctx); err != nil {
			logger.Error("Bot graceful shutdown failed", "error", err)
		}

		logger.Info("All servers stopped gracefully")
	}
}
