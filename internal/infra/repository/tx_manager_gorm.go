package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products   repo.ProductRepository
	stocks     repo.StockRepository
	movements  repo.StockMovementRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposGorm) Products() repo.ProductRepository             { return r.products }
func (r *txReposGorm) Stocks() repo.StockRepository                 { return r.stocks }
func (r *txReposGorm) StockMovements() repo.StockMovementRepository { return r.movements }
func (r *txReposGorm) Orders() repo.OrderRepository                 { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository         { return r.orderItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがerrorを返すと全体をロールバックする。
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:   NewProductGormRepository(tx),
			stocks:     NewStockGormRepository(tx),
			movements:  NewStockMovementGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
		}
		return fn(r)
	})
}
