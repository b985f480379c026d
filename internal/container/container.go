package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"menuboard/api/internal/cache"
	"menuboard/api/internal/config"
	"menuboard/api/internal/repository"
	"menuboard/api/internal/server"
	"menuboard/api/internal/service"
	"menuboard/api/internal/sheet"
	"menuboard/api/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config    *config.Config
	Client    sheet.Client
	Cache     *cache.Menu
	Snapshots state.SnapshotStore
	Refreshes repository.RefreshRepository
	Menu      *service.Menu
	Server    *server.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized. Redis and
// Postgres are optional; when disabled the service runs with the in-memory
// cache only.
func New(cfg *config.Config) (*Container, error) {
	configureLogging(cfg.Log)

	container := &Container{
		Config: cfg,
	}

	if cfg.Sheet.ID == "" {
		log.Warn("No sheet ID configured; menu fetches will fail until sheet.id is set")
	}

	container.Client = sheet.NewClient(cfg.Sheet)

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	container.Cache = cache.NewMenu(ttl, nil)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis successfully")

		container.redis = rdb
		snapshotTTL := time.Duration(cfg.Redis.SnapshotTTLMinutes) * time.Minute
		container.Snapshots = state.NewRedisSnapshotStore(rdb, snapshotTTL)
	}

	if cfg.Database.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}

		refreshRepo, err := repository.NewRefreshRepository(context.Background(), db)
		if err != nil {
			return nil, err
		}

		container.db = db
		container.Refreshes = refreshRepo
		log.Info("Connected to Postgres successfully")
	}

	container.Menu = service.NewMenu(
		container.Client,
		container.Cache,
		container.Snapshots,
		container.Refreshes,
	)
	container.Server = server.New(cfg.Server, container.Menu, ttl)

	return container, nil
}

// Run starts the HTTP server and, when enabled, the background refresher.
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Start(ctx)
	})

	if c.Config.Cache.BackgroundRefresh {
		g.Go(func() error {
			c.runBackgroundRefresher(ctx)
			return nil
		})
	}

	return g.Wait()
}

// runBackgroundRefresher proactively refetches at the revalidation interval
// so readers rarely pay the fetch latency. Failures are logged and the next
// tick tries again.
func (c *Container) runBackgroundRefresher(ctx context.Context) {
	interval := time.Duration(c.Config.Cache.TTLMinutes) * time.Minute
	if interval <= 0 {
		log.Warn("Background refresh enabled but cache TTL is 0; refresher disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("Background refresher running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("Background refresher stopping")
			return
		case <-ticker.C:
			if _, err := c.Menu.Refresh(ctx, service.TriggerBackground); err != nil {
				log.Errorf("Background refresh failed: %v", err)
			}
		}
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("Error closing Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}

func configureLogging(cfg config.LogConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
