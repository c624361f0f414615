package usecase

import (
	"context"

	"github.com/totegamma/todolist/internal/domain"
)

// ItemRepository defines storage operations for items.
type ItemRepository interface {
	List(ctx context.Context, search string) ([]domain.Item, error)
	Get(ctx context.Context, id int64) (domain.Item, error)
	GetWithCategories(ctx context.Context, id int64) (domain.ItemDetails, error)
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines storage operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Options(ctx context.Context) ([]domain.CategoryOption, error)
	Create(ctx context.Context, name string) (domain.Category, error)
}

// CategoryItemRepository defines storage operations for item/category links.
type CategoryItemRepository interface {
	Link(ctx context.Context, categoryID, itemID int64) (domain.CategoryItem, error)
	Exists(ctx context.Context, categoryID, itemID int64) (bool, error)
	Delete(ctx context.Context, joinID int64) (domain.CategoryItem, error)
}

// EventPublisher broadcasts item events to realtime listeners.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ItemEvent) error
}
