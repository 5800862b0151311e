package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type StockMovementGormRepository struct {
	db *gorm.DB
}

func NewStockMovementGormRepository(db *gorm.DB) *StockMovementGormRepository {
	return &StockMovementGormRepository{db: db}
}

// 履歴の追記。存在しない商品への追記はErrConflict。
func (r *StockMovementGormRepository) Create(ctx context.Context, m model.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translatePgError(err)
	}
	return nil
}

// 全履歴。新しい順で商品名をjoinする。
func (r *StockMovementGormRepository) ListAll(ctx context.Context) ([]repo.MovementListRow, error) {
	var rows []repo.MovementListRow

	err := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Select("stock_movements.id, stock_movements.product_id, stock_movements.action_type, stock_movements.quantity, stock_movements.note, stock_movements.created_at, products.name AS product_name").
		Joins("JOIN products ON products.id = stock_movements.product_id").
		Order("stock_movements.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.MovementListRow{}, err
	}
	return rows, nil
}

func (r *StockMovementGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&movements).Error
	if err != nil {
		return []model.StockMovement{}, err
	}
	return movements, nil
}

func (r *StockMovementGormRepository) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
