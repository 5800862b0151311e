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

func TestProductUsecase_Create_Validation(t *testing.T) {
	u := usecase.NewProductUsecase(&stubTxManager{repos: &stubTxRepos{}}, &MockProductRepo{}, usecase.NewPolicy())

	_, err := u.Create(context.Background(), usecase.CreateProductInput{Name: " ", SKU: "A-1"})
	assertErrContains(t, err, "name required")

	_, err = u.Create(context.Background(), usecase.CreateProductInput{Name: "widget", SKU: ""})
	assertErrContains(t, err, "sku required")

	_, err = u.Create(context.Background(), usecase.CreateProductInput{Name: "widget", SKU: "A-1", Price: -1})
	assertErrContains(t, err, "price must be >= 0")
}

func TestProductUsecase_Create_WithInitialStock(t *testing.T) {
	products := &MockProductRepo{}
	stocks := &MockStockRepo{}
	tx := &stubTxManager{repos: &stubTxRepos{products: products, stocks: stocks}}

	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "widget" && p.SKU == "A-1" && p.Price == 1500
	})).Return(model.Product{ID: 10, Name: "widget", SKU: "A-1", Price: 1500}, nil)
	stocks.On("Create", mock.Anything, mock.MatchedBy(func(s model.Stock) bool {
		return s.ProductID == 10 && s.Quantity == 50
	})).Return(model.Stock{ID: 1, ProductID: 10, Quantity: 50}, nil)

	u := usecase.NewProductUsecase(tx, products, usecase.NewPolicy())

	p, err := u.Create(context.Background(), usecase.CreateProductInput{
		Name:            " widget ",
		SKU:             "A-1",
		Price:           1500,
		InitialQuantity: 50,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	stocks.AssertExpectations(t)
}

func TestProductUsecase_Create_DuplicateSKU(t *testing.T) {
	products := &MockProductRepo{}
	tx := &stubTxManager{repos: &stubTxRepos{products: products, stocks: &MockStockRepo{}}}

	products.On("Create", mock.Anything, mock.Anything).
		Return(model.Product{}, repo.ErrDuplicate)

	u := usecase.NewProductUsecase(tx, products, usecase.NewPolicy())

	_, err := u.Create(context.Background(), usecase.CreateProductInput{Name: "widget", SKU: "A-1"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	assert.Equal(t, "sku already exists", he.Message)
}

func TestProductUsecase_Update_NormalizesEmptyCategory(t *testing.T) {
	products := &MockProductRepo{}

	zero := int64(0)
	products.On("Update", mock.Anything, int64(10), mock.MatchedBy(func(u repo.ProductUpdate) bool {
		return u.SetCategoryID && u.CategoryID == nil
	})).Return(model.Product{ID: 10}, nil)

	u := usecase.NewProductUsecase(&stubTxManager{repos: &stubTxRepos{}}, products, usecase.NewPolicy())

	_, err := u.Update(context.Background(), 10, usecase.UpdateProductInput{
		CategoryID:    &zero,
		SetCategoryID: true,
	})

	assert.NoError(t, err)
	products.AssertExpectations(t)
}

func TestProductUsecase_Archive_IsIdempotent(t *testing.T) {
	products := &MockProductRepo{}
	products.On("Archive", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, Archived: true}, nil)

	u := usecase.NewProductUsecase(&stubTxManager{repos: &stubTxRepos{}}, products, usecase.NewPolicy())

	first, err := u.Archive(context.Background(), 10)
	assert.NoError(t, err)
	assert.True(t, first.Archived)

	second, err := u.Archive(context.Background(), 10)
	assert.NoError(t, err)
	assert.True(t, second.Archived)
}

func TestProductUsecase_Delete_ReferencedByOrderItems(t *testing.T) {
	products := &MockProductRepo{}
	orderItems := &MockOrderItemRepo{}
	movements := &MockMovementRepo{}
	stocks := &MockStockRepo{}
	tx := &stubTxManager{repos: &stubTxRepos{
		products: products, stocks: stocks, movements: movements, orderItems: orderItems,
	}}

	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10}, nil)
	orderItems.On("ExistsByProductID", mock.Anything, int64(10)).Return(true, nil)

	u := usecase.NewProductUsecase(tx, products, usecase.NewPolicy())

	_, err := u.Delete(context.Background(), model.RoleAdmin, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	assertErrContains(t, err, "archive it instead")
	stocks.AssertNotCalled(t, "DeleteByProductID")
}

func TestProductUsecase_Delete_ReferencedByMovements(t *testing.T) {
	products := &MockProductRepo{}
	orderItems := &MockOrderItemRepo{}
	movements := &MockMovementRepo{}
	tx := &stubTxManager{repos: &stubTxRepos{
		products: products, stocks: &MockStockRepo{}, movements: movements, orderItems: orderItems,
	}}

	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10}, nil)
	orderItems.On("ExistsByProductID", mock.Anything, int64(10)).Return(false, nil)
	movements.On("ExistsByProductID", mock.Anything, int64(10)).Return(true, nil)

	u := usecase.NewProductUsecase(tx, products, usecase.NewPolicy())

	_, err := u.Delete(context.Background(), model.RoleAdmin, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestProductUsecase_Delete_Unreferenced(t *testing.T) {
	products := &MockProductRepo{}
	orderItems := &MockOrderItemRepo{}
	movements := &MockMovementRepo{}
	stocks := &MockStockRepo{}
	tx := &stubTxManager{repos: &stubTxRepos{
		products: products, stocks: stocks, movements: movements, orderItems: orderItems,
	}}

	products.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, Name: "widget"}, nil)
	orderItems.On("ExistsByProductID", mock.Anything, int64(10)).Return(false, nil)
	movements.On("ExistsByProductID", mock.Anything, int64(10)).Return(false, nil)
	stocks.On("DeleteByProductID", mock.Anything, int64(10)).Return(nil)
	products.On("Delete", mock.Anything, int64(10)).Return(nil)

	u := usecase.NewProductUsecase(tx, products, usecase.NewPolicy())

	p, err := u.Delete(context.Background(), model.RoleAdmin, 10)

	assert.NoError(t, err)
	assert.Equal(t, "widget", p.Name)
	stocks.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestProductUsecase_Delete_AdminOnly(t *testing.T) {
	products := &MockProductRepo{}
	u := usecase.NewProductUsecase(&stubTxManager{repos: &stubTxRepos{}}, products, usecase.NewPolicy())

	_, err := u.Delete(context.Background(), model.RoleUser, 10)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	products.AssertNotCalled(t, "Delete")
}

func TestProductUsecase_GetByID_NotFound(t *testing.T) {
	products := &MockProductRepo{}
	products.On("FindByID", mock.Anything, int64(404)).
		Return(model.Product{}, repo.ErrNotFound)

	u := usecase.NewProductUsecase(&stubTxManager{repos: &stubTxRepos{}}, products, usecase.NewPolicy())

	_, err := u.GetByID(context.Background(), 404)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
