package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}
