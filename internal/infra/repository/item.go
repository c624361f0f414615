package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/todolist/internal/domain"
	"github.com/totegamma/todolist/internal/infra/database/models"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context, search string) ([]domain.Item, error) {
	query := r.db.WithContext(ctx).Model(&models.Item{})
	if search != "" {
		// strpos matches the literal substring; LIKE would treat % and _ as wildcards
		query = query.Where("strpos(description, ?) > 0", search)
	}

	var rows []models.Item
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list items")
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomainItem(row))
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (domain.Item, error) {
	var row models.Item
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if err != nil {
		return domain.Item{}, translateNotFound(err, "item")
	}
	return toDomainItem(row), nil
}

func (r *ItemRepository) GetWithCategories(ctx context.Context, id int64) (domain.ItemDetails, error) {
	var row models.Item
	err := r.db.WithContext(ctx).
		Preload("CategoryItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("category_items.id ASC")
		}).
		Preload("CategoryItems.Category").
		Take(&row, "id = ?", id).Error
	if err != nil {
		return domain.ItemDetails{}, translateNotFound(err, "item")
	}

	details := domain.ItemDetails{
		Item:       toDomainItem(row),
		Categories: make([]domain.CategoryLink, 0, len(row.CategoryItems)),
	}
	for _, link := range row.CategoryItems {
		details.Categories = append(details.Categories, domain.CategoryLink{
			JoinID:   link.ID,
			Category: domain.Category{
				ID:   link.Category.ID,
				Name: link.Category.Name,
			},
		})
	}
	return details, nil
}

func (r *ItemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	row := models.Item{
		Description: item.Description,
		Done:        item.Done,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Item{}, errors.Wrap(err, "create item")
	}
	return toDomainItem(row), nil
}

// Update overwrites every editable column, including zero values.
func (r *ItemRepository) Update(ctx context.Context, item domain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&models.Item{ID: item.ID}).
		Select("description", "done").
		Updates(models.Item{
			Description: item.Description,
			Done:        item.Done,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update item")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "item"}
	}
	return nil
}

// Delete removes the item; category_items rows cascade in the database.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete item")
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "item"}
	}
	return nil
}

func toDomainItem(row models.Item) domain.Item {
	return domain.Item{
		ID:          row.ID,
		Description: row.Description,
		Done:        row.Done,
	}
}

func translateNotFound(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return errors.Wrapf(err, "get %s", resource)
}
