package cache

import (
	"context"

	"github.com/totegamma/todolist/internal/domain"
)

const categoryOptionsKey = "todolist:category-options"

// CategoryOptions caches the category dropdown list.
type CategoryOptions interface {
	Get(ctx context.Context) ([]domain.CategoryOption, bool)
	Set(ctx context.Context, options []domain.CategoryOption)
	Invalidate(ctx context.Context)
}
