package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoryUsecase_Create_TrimsName(t *testing.T) {
	categories := &MockCategoryRepo{}
	categories.On("Create", mock.Anything, model.Category{Name: "tools"}).
		Return(model.Category{ID: 1, Name: "tools"}, nil)

	u := usecase.NewCategoryUsecase(categories)

	c, err := u.Create(context.Background(), "  tools  ")

	assert.NoError(t, err)
	assert.Equal(t, "tools", c.Name)
	categories.AssertExpectations(t)
}

func TestCategoryUsecase_Create_EmptyName(t *testing.T) {
	u := usecase.NewCategoryUsecase(&MockCategoryRepo{})

	_, err := u.Create(context.Background(), "   ")
	assertErrContains(t, err, "name required")
}

func TestCategoryUsecase_Delete_NotFound(t *testing.T) {
	categories := &MockCategoryRepo{}
	categories.On("Delete", mock.Anything, int64(404)).Return(repo.ErrNotFound)

	u := usecase.NewCategoryUsecase(categories)

	err := u.Delete(context.Background(), 404)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
