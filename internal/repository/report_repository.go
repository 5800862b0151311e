package repository

import (
	"context"
	"time"
)

type StockSummaryRow struct {
	ProductName   string `json:"product_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

type LowStockRow struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// 絞り込み条件。nilは条件なし。
type StockFilter struct {
	ProductID   *int64
	MinQuantity *int64
}

// 集計の読み出し専用クエリ。書き込みはしない。
type ReportRepository interface {
	StockSummary(ctx context.Context) ([]StockSummaryRow, error)
	LowStock(ctx context.Context, threshold int64, from, to *time.Time) ([]LowStockRow, error)
	FilteredStock(ctx context.Context, f StockFilter) ([]StockListRow, error)
}
