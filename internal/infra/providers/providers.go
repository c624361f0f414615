package providers

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/totegamma/todolist/internal/config"
	"github.com/totegamma/todolist/internal/infra/cache"
	"github.com/totegamma/todolist/internal/infra/database"
	"github.com/totegamma/todolist/internal/present/rest"
	"github.com/totegamma/todolist/internal/service"
	"github.com/totegamma/todolist/internal/usecase"
)

// NewLogger builds the JSON slog logger used across the service.
func NewLogger(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lv}))
}

// NewDatabase opens a Postgres connection using the configured DSN.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	return database.NewPostgres(conf.PostgresDsn)
}

// MigrateDatabase applies migrations for the application models.
func MigrateDatabase(db *gorm.DB) error {
	return database.MigratePostgres(db)
}

// NewCategoryCache shares options through memcached when one is configured
// and reachable, and keeps them in process otherwise.
func NewCategoryCache(conf config.Server) cache.CategoryOptions {
	if conf.MemcachedAddr != "" {
		client, err := database.NewMemcached(conf.MemcachedAddr)
		if err == nil {
			return cache.NewMemcache(client, conf.CategoryCacheTTL)
		}
		slog.Warn(
			"memcached unavailable, using local category cache",
			slog.String("error", err.Error()),
			slog.String("module", "providers"),
		)
	}
	return cache.NewLocal(conf.CategoryCacheTTL)
}

// Signal publishes item events and feeds the realtime socket.
type Signal interface {
	usecase.EventPublisher
	rest.EventStream
}

// NewSignal connects to redis when an address is configured. Without one
// events go nowhere.
func NewSignal(ctx context.Context, conf config.Server) (Signal, error) {
	if conf.RedisAddr == "" {
		return service.NopSignal{}, nil
	}
	rdb, err := database.NewRedis(ctx, conf.RedisAddr, conf.RedisDB)
	if err != nil {
		return nil, err
	}
	return service.NewSignalService(rdb), nil
}
