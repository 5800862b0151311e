package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"
)

// 既定のしきい値（low-stockレポート）
const defaultLowStockThreshold = 5

type ReportUsecase struct {
	reports repo.ReportRepository
}

func NewReportUsecase(reports repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reports: reports}
}

func (u *ReportUsecase) StockSummary(ctx context.Context) ([]repo.StockSummaryRow, error) {
	rows, err := u.reports.StockSummary(ctx)
	if err != nil {
		return []repo.StockSummaryRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

type LowStockInput struct {
	// 0以下なら既定値を使う
	Threshold int64
	From      *time.Time
	To        *time.Time
}

func (u *ReportUsecase) LowStock(ctx context.Context, in LowStockInput) ([]repo.LowStockRow, error) {
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	if in.From != nil && in.To != nil && in.From.After(*in.To) {
		return []repo.LowStockRow{}, NewHTTPError(http.StatusBadRequest, "start date must be before end date")
	}

	rows, err := u.reports.LowStock(ctx, threshold, in.From, in.To)
	if err != nil {
		return []repo.LowStockRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *ReportUsecase) FilteredStock(ctx context.Context, f repo.StockFilter) ([]repo.StockListRow, error) {
	if f.ProductID != nil && *f.ProductID <= 0 {
		return []repo.StockListRow{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if f.MinQuantity != nil && *f.MinQuantity < 0 {
		return []repo.StockListRow{}, NewHTTPError(http.StatusBadRequest, "min_quantity must be >= 0")
	}

	rows, err := u.reports.FilteredStock(ctx, f)
	if err != nil {
		return []repo.StockListRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}
