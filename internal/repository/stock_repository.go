package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

// 一覧表示用。商品名とSKUをjoinして返す。
type StockListRow struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	ProductName string    `json:"product_name"`
	SKU         string    `gorm:"column:sku" json:"sku"`
	Archived    bool      `json:"archived"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// 在庫行の永続化を約束。数量の変更は相対更新（quantity = quantity ± ?）で行い、
// アプリ側のread-modify-writeはしない。
type StockRepository interface {
	Create(ctx context.Context, s model.Stock) (model.Stock, error)
	FindByID(ctx context.Context, id int64) (model.Stock, error)
	FindByProductID(ctx context.Context, productID int64) (model.Stock, error)
	List(ctx context.Context, includeArchived bool) ([]StockListRow, error)

	// 相対更新。deltaは負も可。更新後の行を返す。
	AddQuantity(ctx context.Context, id int64, delta int64) (model.Stock, error)
	// 絶対値set。更新後の行を返す。
	SetQuantity(ctx context.Context, id int64, quantity int64) (model.Stock, error)
	// 在庫が足りるときだけ減算（注文経路用）
	DecreaseByProductIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	// 在庫戻し（注文キャンセル用）
	AddQuantityByProduct(ctx context.Context, productID int64, qty int64) error

	Delete(ctx context.Context, id int64) error
	DeleteByProductID(ctx context.Context, productID int64) error
}
