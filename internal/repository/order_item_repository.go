package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
	ExistsByProductID(ctx context.Context, productID int64) (bool, error)
}
