package providers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/todolist/internal/config"
	"github.com/totegamma/todolist/internal/infra/cache"
	"github.com/totegamma/todolist/internal/service"
)

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()

	debug := NewLogger("DEBUG")
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))

	info := NewLogger("")
	assert.False(t, info.Enabled(ctx, slog.LevelDebug))
	assert.True(t, info.Enabled(ctx, slog.LevelInfo))

	errOnly := NewLogger("error")
	assert.False(t, errOnly.Enabled(ctx, slog.LevelWarn))
}

func TestNewCategoryCacheFallsBackToLocal(t *testing.T) {
	options := NewCategoryCache(config.Server{CategoryCacheTTL: time.Minute})
	_, ok := options.(*cache.Local)
	assert.True(t, ok)
}

func TestNewSignalWithoutRedis(t *testing.T) {
	signal, err := NewSignal(context.Background(), config.Server{})
	require.NoError(t, err)
	_, ok := signal.(service.NopSignal)
	assert.True(t, ok)
}
