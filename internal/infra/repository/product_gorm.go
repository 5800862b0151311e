package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品一覧。archivedは指定があるときだけ含める。
func (r *ProductGormRepository) List(ctx context.Context, includeArchived bool) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{})
	if !includeArchived {
		tx = tx.Where("archived = ?", false)
	}

	if err := tx.Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成。skuの重複はErrDuplicate。
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, translatePgError(err)
	}
	return p, nil
}

// 商品の部分更新。nilのフィールドは変更しない。
func (r *ProductGormRepository) Update(ctx context.Context, id int64, u repo.ProductUpdate) (model.Product, error) {
	updates := map[string]interface{}{}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.SKU != nil {
		updates["sku"] = *u.SKU
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Price != nil {
		updates["price"] = *u.Price
	}
	if u.SetCategoryID {
		// Value=nilは「カテゴリなし」
		updates["category_id"] = u.CategoryID
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return model.Product{}, translatePgError(res.Error)
		}
		if res.RowsAffected == 0 {
			return model.Product{}, repo.ErrNotFound
		}
	}

	return r.FindByID(ctx, id)
}

// archived=trueにする。既にtrueでも成功（冪等）。
func (r *ProductGormRepository) Archive(ctx context.Context, id int64) (model.Product, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("archived", true)
	if res.Error != nil {
		return model.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Product{}, repo.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// 物理削除。参照が残っているときはErrConflict。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return translatePgError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
