package repository

import (
	"app/internal/domain/model"
	"context"
)

// 部分更新で使う。nilのフィールドは変更しない。
type ProductUpdate struct {
	Name        *string
	SKU         *string
	Description *string
	Price       *int64
	// CategoryIDはsetのときだけ反映。set=true かつ Value=nil で「カテゴリなし」。
	CategoryID    *int64
	SetCategoryID bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, includeArchived bool) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, u ProductUpdate) (model.Product, error)
	Archive(ctx context.Context, id int64) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}
