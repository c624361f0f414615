package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/totegamma/todolist/internal/domain"
)

// Local keeps category options in process memory.
type Local struct {
	store *gocache.Cache
}

func NewLocal(ttl time.Duration) *Local {
	return &Local{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (l *Local) Get(ctx context.Context) ([]domain.CategoryOption, bool) {
	cached, found := l.store.Get(categoryOptionsKey)
	if !found {
		return nil, false
	}
	options, ok := cached.([]domain.CategoryOption)
	if !ok {
		return nil, false
	}
	return append([]domain.CategoryOption(nil), options...), true
}

func (l *Local) Set(ctx context.Context, options []domain.CategoryOption) {
	l.store.Set(categoryOptionsKey, append([]domain.CategoryOption(nil), options...), gocache.DefaultExpiration)
}

func (l *Local) Invalidate(ctx context.Context) {
	l.store.Delete(categoryOptionsKey)
}
