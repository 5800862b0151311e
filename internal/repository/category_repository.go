package repository

import (
	"app/internal/domain/model"
	"context"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, id int64, name string) (model.Category, error)
	// 参照している商品のcategory_idはNULLにしてから消す
	Delete(ctx context.Context, id int64) error
}
