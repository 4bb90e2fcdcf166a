package usecase

import (
	"context"
	"net/http"
	"strings"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

type CategoryOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (u *CategoryUsecase) List(ctx context.Context) ([]CategoryOutput, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return []CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]CategoryOutput, 0, len(list))
	for _, c := range list {
		outs = append(outs, CategoryOutput{ID: c.ID, Name: c.Name})
	}
	return outs, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (CategoryOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	c, err := u.categories.Create(ctx, model.Category{Name: name})
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CategoryOutput{ID: c.ID, Name: c.Name}, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, categoryID int64, name string) (CategoryOutput, error) {
	if categoryID <= 0 {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	err := u.categories.Update(ctx, model.Category{ID: categoryID, Name: name})
	if err == repo.ErrNotFound {
		return CategoryOutput{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CategoryOutput{ID: categoryID, Name: name}, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.categories.Delete(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
