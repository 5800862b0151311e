package usecase_test

import (
	"context"
	"testing"
	"time"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportUsecase_LowStock_DefaultThreshold(t *testing.T) {
	reports := &MockReportRepo{}
	reports.On("LowStock", mock.Anything, int64(5), (*time.Time)(nil), (*time.Time)(nil)).
		Return([]repo.LowStockRow{{ID: 1, ProductName: "widget", Quantity: 2}}, nil)

	u := usecase.NewReportUsecase(reports)

	rows, err := u.LowStock(context.Background(), usecase.LowStockInput{Threshold: 0})

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	reports.AssertExpectations(t)
}

func TestReportUsecase_LowStock_InvalidDateRange(t *testing.T) {
	u := usecase.NewReportUsecase(&MockReportRepo{})

	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := u.LowStock(context.Background(), usecase.LowStockInput{Threshold: 5, From: &from, To: &to})
	assertErrContains(t, err, "start date must be before end date")
}

func TestReportUsecase_FilteredStock_Validation(t *testing.T) {
	u := usecase.NewReportUsecase(&MockReportRepo{})

	badID := int64(0)
	_, err := u.FilteredStock(context.Background(), repo.StockFilter{ProductID: &badID})
	assertErrContains(t, err, "invalid product_id")

	badMin := int64(-1)
	_, err = u.FilteredStock(context.Background(), repo.StockFilter{MinQuantity: &badMin})
	assertErrContains(t, err, "min_quantity must be >= 0")
}

func TestReportUsecase_FilteredStock(t *testing.T) {
	reports := &MockReportRepo{}
	pid := int64(10)
	reports.On("FilteredStock", mock.Anything, repo.StockFilter{ProductID: &pid}).
		Return([]repo.StockListRow{{ID: 1, ProductID: 10, Quantity: 7}}, nil)

	u := usecase.NewReportUsecase(reports)

	rows, err := u.FilteredStock(context.Background(), repo.StockFilter{ProductID: &pid})

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].Quantity)
}
