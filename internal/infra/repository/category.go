package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/totegamma/todolist/internal/domain"
	"github.com/totegamma/todolist/internal/infra/cache"
	"github.com/totegamma/todolist/internal/infra/database/models"
)

type CategoryRepository struct {
	db    *gorm.DB
	cache cache.CategoryOptions
}

func NewCategoryRepository(db *gorm.DB, options cache.CategoryOptions) *CategoryRepository {
	return &CategoryRepository{db: db, cache: options}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

func (r *CategoryRepository) Options(ctx context.Context) ([]domain.CategoryOption, error) {
	if r.cache != nil {
		if options, ok := r.cache.Get(ctx); ok {
			return options, nil
		}
	}

	categories, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]domain.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, domain.CategoryOption{ID: c.ID, Name: c.Name})
	}

	if r.cache != nil {
		r.cache.Set(ctx, options)
	}
	return options, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (domain.Category, error) {
	row := models.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Category{}, errors.Wrap(err, "create category")
	}

	if r.cache != nil {
		r.cache.Invalidate(ctx)
	}
	return domain.Category{ID: row.ID, Name: row.Name}, nil
}
