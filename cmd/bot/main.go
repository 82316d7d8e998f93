package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weathercat/internal/config"
	"weathercat/internal/domain"
	"weathercat/internal/engine"
	"weathercat/internal/handler"
	"weathercat/internal/middleware"
	"weathercat/internal/provider"
	"weathercat/internal/repository"
	"weathercat/internal/repository/file"
	"weathercat/internal/repository/postgres"
	"weathercat/internal/repository/redis"
	"weathercat/internal/scheduler"
	"weathercat/internal/server"
	"weathercat/internal/service"
	"weathercat/internal/worker"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting WeatherCat Bot", zap.String("storage", cfg.Backend()))

	backend, closeBackend, err := openBackend(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage backend", zap.Error(err))
	}
	defer closeBackend()

	// Restore user states
	store := repository.NewUserStateStore(backend, logger)
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = store.Load(loadCtx)
	loadCancel()
	if err != nil {
		if errors.Is(err, domain.ErrCorruptState) {
			logger.Fatal("Saved user states are corrupt, refusing to start", zap.Error(err))
		}
		logger.Fatal("Failed to load user states", zap.Error(err))
	}

	logger.Info("User states loaded", zap.Int("users", store.Len()))

	// Initialize forecast provider and services
	cache := provider.NewCache(cfg.CacheTTL)
	owm := provider.NewOpenWeatherMap(provider.Options{
		BaseURL: cfg.OWMBaseURL,
		APIKey:  cfg.OWMAPIKey,
		Timeout: cfg.OWMTimeout,
		RPS:     cfg.OWMRPS,
		Burst:   cfg.OWMBurst,
	}, cache, logger)

	weatherService := service.NewWeatherService(owm)
	statsService := service.NewStatsService(store, cache, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Poller:      &tele.LongPoller{Timeout: cfg.PollTimeout},
		Synchronous: true,
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	gateway := handler.NewGateway(bot, logger)
	dialogue := engine.New(store, weatherService, gateway, logger)

	pool := worker.NewSerial(cfg.Workers, cfg.QueueSize, logger)
	bot.Use(middleware.Serialize(pool, logger), middleware.Logging(logger))

	h := handler.NewHandler(bot, dialogue, cfg.UpdateTimeout, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start maintenance jobs in background
	jobs := scheduler.New(statsService, cfg.CachePurgeInterval, cfg.StatsInterval, logger)
	if err := jobs.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	var srv *server.Server
	if cfg.HTTPAddr != "" {
		srv = server.New(statsService, logger)
		srv.Start(cfg.HTTPAddr)
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown: stop polling, then drain queued updates
	bot.Stop()
	pool.Stop()
	jobs.Stop()
	if srv != nil {
		if err := srv.Shutdown(); err != nil {
			logger.Warn("Failed to stop HTTP server", zap.Error(err))
		}
	}

	logger.Info("Bot stopped gracefully")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

// openBackend picks the storage backend from the config. The returned func
// releases its resources.
func openBackend(cfg *config.Config, logger *zap.Logger) (repository.Backend, func(), error) {
	switch cfg.Backend() {
	case config.BackendRedis:
		backend, err := redis.NewBackend(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := backend.Ping(ctx); err != nil {
			backend.Close()
			return nil, nil, fmt.Errorf("failed to reach redis: %w", err)
		}

		logger.Info("Redis connection established")
		return backend, func() { backend.Close() }, nil

	case config.BackendPostgres:
		db, err := connectDatabase(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}

		return postgres.NewStateRepo(db), func() { db.Close() }, nil

	default:
		logger.Info("Using local state file", zap.String("path", cfg.LocalDBPath))
		return file.NewBackend(cfg.LocalDBPath), func() {}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates the snapshot table
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
