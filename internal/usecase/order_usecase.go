package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	policy *Policy
}

func NewOrderUsecase(tx repo.TransactionManager, policy *Policy) *OrderUsecase {
	return &OrderUsecase{tx: tx, policy: policy}
}

type OrderLineInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type OrderItemOutput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	Reference string            `json:"reference"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemOutput `json:"items"`
}

// 注文の作成。明細の検証・価格スナップショット・在庫減算・履歴追記を
// ひとつのTxで行い、途中で失敗したら注文ごとロールバックする。
func (u *OrderUsecase) Create(ctx context.Context, userID int64, lines []OrderLineInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(lines) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order items")
	}
	for _, l := range lines {
		if l.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if l.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()
		ref := uuid.NewString()

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:    userID,
			Reference: ref,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems := make([]model.OrderItem, 0, len(lines))

		for _, l := range lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if p.Archived {
				return NewHTTPError(http.StatusBadRequest, "cannot order an archived product")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Stocks().DecreaseByProductIfEnough(ctx, p.ID, l.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock")
			}

			//減算は必ず履歴とセット
			if err := r.StockMovements().Create(ctx, model.StockMovement{
				ProductID:  p.ID,
				ActionType: model.MovementDecrease,
				Quantity:   l.Quantity,
				Note:       fmt.Sprintf("order #%s", ref),
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//価格は注文時点のスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID: p.ID,
				Quantity:  l.Quantity,
				UnitPrice: p.Price,
				CreatedAt: now,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:        orderID,
			UserID:    userID,
			Reference: ref,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) List(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetByID(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ステータス更新。userロールはcancelledにできない。
// cancelledへの遷移では在庫を戻し、戻しも履歴に残す。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID int64, newStatus string, role model.Role) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	status := model.OrderStatus(strings.TrimSpace(newStatus))
	switch status {
	case model.OrderStatusPending, model.OrderStatusFulfilled,
		model.OrderStatusCancelled, model.OrderStatusCompleted:
		// OK
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if status == model.OrderStatusCancelled && !u.policy.Allows(role, OpCancelOrder) {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "users cannot cancel orders")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない
		if o.Status == status {
			out = toOrderOutput(o, items)
			return nil
		}
		// キャンセル済みは終端
		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "cannot change cancelled order")
		}

		// キャンセルのときは注文で引いた分を戻す
		if status == model.OrderStatusCancelled {
			for _, it := range items {
				if err := r.Stocks().AddQuantityByProduct(ctx, it.ProductID, it.Quantity); err != nil {
					if err == repo.ErrNotFound {
						// 在庫行が消えていて戻し先がない
						return NewHTTPError(http.StatusConflict, "stock row missing; cannot restore quantity")
					}
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.StockMovements().Create(ctx, model.StockMovement{
					ProductID:  it.ProductID,
					ActionType: model.MovementIncrease,
					Quantity:   it.Quantity,
					Note:       fmt.Sprintf("order #%s cancelled", o.Reference),
				}); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = status
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除。明細→ヘッダの順でひとつのTxで消す。adminだけ。
func (u *OrderUsecase) Delete(ctx context.Context, role model.Role, orderID int64) (OrderOutput, error) {
	if !u.policy.Allows(role, OpDeleteOrder) {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Reference: o.Reference,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     outItems,
	}
}
