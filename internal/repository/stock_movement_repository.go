package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

// 一覧表示用。商品名をjoinして返す。
type MovementListRow struct {
	ID          int64                `json:"id"`
	ProductID   int64                `json:"product_id"`
	ActionType  model.MovementAction `json:"action_type"`
	Quantity    int64                `json:"quantity"`
	Note        string               `json:"note"`
	ProductName string               `json:"product_name"`
	CreatedAt   time.Time            `json:"created_at"`
}

// 在庫変動履歴の永続化。追記と読み出しのみ。
type StockMovementRepository interface {
	Create(ctx context.Context, m model.StockMovement) error
	ListAll(ctx context.Context) ([]MovementListRow, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.StockMovement, error)
	ExistsByProductID(ctx context.Context, productID int64) (bool, error)
}
