package usecase

import (
	"context"
	"strings"

	"github.com/totegamma/todolist/internal/domain"
)

type CategoryUsecase struct {
	repo CategoryRepository
}

func NewCategoryUsecase(repo CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{repo: repo}
}

func (uc *CategoryUsecase) List(ctx context.Context) ([]domain.Category, error) {
	return uc.repo.List(ctx)
}

// Options returns the {id, name} pairs used to fill category dropdowns.
func (uc *CategoryUsecase) Options(ctx context.Context) ([]domain.CategoryOption, error) {
	return uc.repo.Options(ctx)
}

func (uc *CategoryUsecase) Create(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.ValidationError{Field: "name", Reason: "is required"}
	}
	return uc.repo.Create(ctx, name)
}
