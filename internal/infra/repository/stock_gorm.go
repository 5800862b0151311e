package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type StockGormRepository struct {
	db *gorm.DB
}

func NewStockGormRepository(db *gorm.DB) *StockGormRepository {
	return &StockGormRepository{db: db}
}

func (r *StockGormRepository) Create(ctx context.Context, s model.Stock) (model.Stock, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Stock{}, translatePgError(err)
	}
	return s, nil
}

func (r *StockGormRepository) FindByID(ctx context.Context, id int64) (model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Stock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Stock{}, err
	}
	return s, nil
}

func (r *StockGormRepository) FindByProductID(ctx context.Context, productID int64) (model.Stock, error) {
	var s model.Stock
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Stock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Stock{}, err
	}
	return s, nil
}

// 在庫一覧。表示用に商品名とSKUをjoinする。
func (r *StockGormRepository) List(ctx context.Context, includeArchived bool) ([]repo.StockListRow, error) {
	var rows []repo.StockListRow

	tx := r.db.WithContext(ctx).Model(&model.Stock{}).
		Select("stocks.id, stocks.product_id, stocks.quantity, stocks.updated_at, products.name AS product_name, products.sku, products.archived").
		Joins("JOIN products ON products.id = stocks.product_id")

	if !includeArchived {
		tx = tx.Where("products.archived = ?", false)
	}

	if err := tx.Order("stocks.id asc").Scan(&rows).Error; err != nil {
		return []repo.StockListRow{}, err
	}
	return rows, nil
}

// 相対更新。read-modify-writeを避けて行ロック下で加算する。
func (r *StockGormRepository) AddQuantity(ctx context.Context, id int64, delta int64) (model.Stock, error) {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return model.Stock{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Stock{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 絶対値set
func (r *StockGormRepository) SetQuantity(ctx context.Context, id int64, quantity int64) (model.Stock, error) {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return model.Stock{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Stock{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 在庫が足りるときだけ減らす
func (r *StockGormRepository) DecreaseByProductIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("product_id = ? AND quantity >= ?", productID, qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *StockGormRepository) AddQuantityByProduct(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).Model(&model.Stock{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *StockGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Stock{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除時に在庫行も消す。行がなくてもエラーにしない。
func (r *StockGormRepository) DeleteByProductID(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.Stock{}).Error
}
