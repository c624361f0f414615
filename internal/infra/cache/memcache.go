package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"

	"github.com/totegamma/todolist/internal/domain"
)

type memcacheClient interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
	Delete(key string) error
}

// Memcache shares category options between server instances.
// Cache failures are logged and treated as misses.
type Memcache struct {
	client memcacheClient
	ttl    time.Duration
}

func NewMemcache(client *memcache.Client, ttl time.Duration) *Memcache {
	return &Memcache{client: client, ttl: ttl}
}

func (m *Memcache) Get(ctx context.Context) ([]domain.CategoryOption, bool) {
	item, err := m.client.Get(categoryOptionsKey)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			logCacheError(ctx, "get", err)
		}
		return nil, false
	}

	var options []domain.CategoryOption
	if err := json.Unmarshal(item.Value, &options); err != nil {
		logCacheError(ctx, "decode", err)
		return nil, false
	}
	return options, true
}

func (m *Memcache) Set(ctx context.Context, options []domain.CategoryOption) {
	value, err := json.Marshal(options)
	if err != nil {
		logCacheError(ctx, "encode", err)
		return
	}

	err = m.client.Set(&memcache.Item{
		Key:        categoryOptionsKey,
		Value:      value,
		Expiration: expiration(m.ttl),
	})
	if err != nil {
		logCacheError(ctx, "set", err)
	}
}

// memcached reads 0 as "never expire" and anything over 30 days as a unix
// timestamp, so the relative ttl is kept within [1s, 30d].
const maxRelativeExpiration = 30 * 24 * time.Hour

func expiration(ttl time.Duration) int32 {
	if ttl < time.Second {
		return 1
	}
	if ttl > maxRelativeExpiration {
		ttl = maxRelativeExpiration
	}
	return int32(ttl / time.Second)
}

func (m *Memcache) Invalidate(ctx context.Context) {
	err := m.client.Delete(categoryOptionsKey)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		logCacheError(ctx, "delete", err)
	}
}

func logCacheError(ctx context.Context, op string, err error) {
	slog.WarnContext(
		ctx, "category option cache "+op+" failed",
		slog.String("error", err.Error()),
		slog.String("module", "cache"),
	)
}
