package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return categories, nil
}

func (u *CategoryUsecase) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	c, err := u.categories.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	c, err := u.categories.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id int64, name string) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	c, err := u.categories.Update(ctx, id, name)
	if err == repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.categories.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
