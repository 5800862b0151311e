package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// 商品ごとの合計数量
func (r *ReportGormRepository) StockSummary(ctx context.Context) ([]repo.StockSummaryRow, error) {
	var rows []repo.StockSummaryRow

	err := r.db.WithContext(ctx).Model(&model.Stock{}).
		Select("products.name AS product_name, SUM(stocks.quantity) AS total_quantity").
		Joins("JOIN products ON products.id = stocks.product_id").
		Group("products.name").
		Order("total_quantity desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.StockSummaryRow{}, err
	}
	return rows, nil
}

// しきい値未満の在庫。updated_atの期間で絞り込める。
func (r *ReportGormRepository) LowStock(ctx context.Context, threshold int64, from, to *time.Time) ([]repo.LowStockRow, error) {
	var rows []repo.LowStockRow

	tx := r.db.WithContext(ctx).Model(&model.Stock{}).
		Select("stocks.id, products.name AS product_name, stocks.quantity, stocks.updated_at").
		Joins("JOIN products ON products.id = stocks.product_id").
		Where("stocks.quantity < ?", threshold)

	if from != nil {
		tx = tx.Where("stocks.updated_at >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("stocks.updated_at <= ?", *to)
	}

	if err := tx.Order("stocks.updated_at desc").Scan(&rows).Error; err != nil {
		return []repo.LowStockRow{}, err
	}
	return rows, nil
}

// 商品・最小数量で絞り込んだ在庫一覧
func (r *ReportGormRepository) FilteredStock(ctx context.Context, f repo.StockFilter) ([]repo.StockListRow, error) {
	var rows []repo.StockListRow

	tx := r.db.WithContext(ctx).Model(&model.Stock{}).
		Select("stocks.id, stocks.product_id, stocks.quantity, stocks.updated_at, products.name AS product_name, products.sku, products.archived").
		Joins("JOIN products ON products.id = stocks.product_id")

	if f.ProductID != nil {
		tx = tx.Where("stocks.product_id = ?", *f.ProductID)
	}
	if f.MinQuantity != nil {
		tx = tx.Where("stocks.quantity >= ?", *f.MinQuantity)
	}

	if err := tx.Order("stocks.id asc").Scan(&rows).Error; err != nil {
		return []repo.StockListRow{}, err
	}
	return rows, nil
}
