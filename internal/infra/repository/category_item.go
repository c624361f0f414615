package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/todolist/internal/domain"
	"github.com/totegamma/todolist/internal/infra/database/models"
)

type CategoryItemRepository struct {
	db *gorm.DB
}

func NewCategoryItemRepository(db *gorm.DB) *CategoryItemRepository {
	return &CategoryItemRepository{db: db}
}

func (r *CategoryItemRepository) Link(ctx context.Context, categoryID, itemID int64) (domain.CategoryItem, error) {
	row := models.CategoryItem{
		CategoryID: categoryID,
		ItemID:     itemID,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.CategoryItem{}, domain.NotFoundError{Resource: "category"}
		}
		return domain.CategoryItem{}, errors.Wrap(err, "link category")
	}
	return toDomainCategoryItem(row), nil
}

func (r *CategoryItemRepository) Exists(ctx context.Context, categoryID, itemID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CategoryItem{}).
		Where("category_id = ? AND item_id = ?", categoryID, itemID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check category link")
	}
	return count > 0, nil
}

// Delete removes one link and returns it as it was stored.
func (r *CategoryItemRepository) Delete(ctx context.Context, joinID int64) (domain.CategoryItem, error) {
	var row models.CategoryItem
	err := r.db.WithContext(ctx).Take(&row, "id = ?", joinID).Error
	if err != nil {
		return domain.CategoryItem{}, translateNotFound(err, "category item")
	}

	result := r.db.WithContext(ctx).Delete(&models.CategoryItem{}, "id = ?", joinID)
	if result.Error != nil {
		return domain.CategoryItem{}, errors.Wrap(result.Error, "delete category link")
	}
	if result.RowsAffected == 0 {
		return domain.CategoryItem{}, domain.NotFoundError{Resource: "category item"}
	}
	return toDomainCategoryItem(row), nil
}

func toDomainCategoryItem(row models.CategoryItem) domain.CategoryItem {
	return domain.CategoryItem{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		ItemID:     row.ItemID,
	}
}
