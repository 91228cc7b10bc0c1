// Package app wires configuration, storage, and the scheduling services
// into a single dependency container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/slotwise/slotwise/internal/directory"
	meetingsDomain "github.com/slotwise/slotwise/internal/meetings/domain"
	meetingPersistence "github.com/slotwise/slotwise/internal/meetings/infrastructure/persistence"
	"github.com/slotwise/slotwise/internal/scheduling/application/services"
	schedulingDomain "github.com/slotwise/slotwise/internal/scheduling/domain"
	"github.com/slotwise/slotwise/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database; exactly one of these is set.
	Pool     *pgxpool.Pool
	SQLiteDB *sql.DB

	// Redis, nil when caching is disabled.
	RedisClient *redis.Client

	MeetingRepo          meetingsDomain.Repository
	AvailabilityProvider schedulingDomain.AvailabilityProvider
	StaticDirectory      *directory.StaticProvider

	Orchestrator        *services.Orchestrator
	RescheduleValidator *services.RescheduleValidator
}

// NewContainer initializes all dependencies from configuration.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	if err := c.connectDatabase(ctx, cfg, logger); err != nil {
		return nil, err
	}

	c.connectRedis(ctx, cfg, logger)

	// Local mode resolves availability from the in-memory directory;
	// a remote backend would replace the static provider here.
	c.StaticDirectory = directory.NewStaticProvider()
	var provider schedulingDomain.AvailabilityProvider = directory.NewBreakerProvider(
		c.StaticDirectory, directory.DefaultBreakerConfig(), logger,
	)
	if c.RedisClient != nil {
		provider = directory.NewCachedProvider(provider, c.RedisClient, cfg.AvailabilityTTL, logger)
	}
	c.AvailabilityProvider = provider

	c.Orchestrator = services.NewOrchestrator(
		c.MeetingRepo,
		c.AvailabilityProvider,
		services.OrchestratorConfig{
			MaxConcurrent: cfg.SearchWorkers,
			LookupTimeout: cfg.AvailabilityTimeout,
		},
		logger,
	)
	c.RescheduleValidator = services.NewRescheduleValidator(c.MeetingRepo)

	return c, nil
}

func (c *Container) connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		c.Pool = pool
		c.MeetingRepo = meetingPersistence.NewPostgresMeetingRepository(pool)
		logger.Info("connected to database", "driver", "postgres")
		return nil
	}

	path := strings.TrimPrefix(cfg.DatabaseURL, "sqlite:")
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	repo := meetingPersistence.NewSQLiteMeetingRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ensure sqlite schema: %w", err)
	}

	c.SQLiteDB = db
	c.MeetingRepo = repo
	logger.Info("connected to database", "driver", "sqlite", "path", path)
	return nil
}

// connectRedis is best effort: caching is an optimization and a missing
// Redis never blocks startup.
func (c *Container) connectRedis(ctx context.Context, cfg *config.Config, logger *slog.Logger) {
	if cfg.RedisURL == "" {
		return
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid Redis URL, availability caching disabled", "error", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not available, availability caching disabled", "error", err)
		return
	}

	c.RedisClient = client
	logger.Info("connected to Redis")
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.SQLiteDB != nil {
		_ = c.SQLiteDB.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
}
