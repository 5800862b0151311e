package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 在庫数量の唯一の書き込み役。
// quantityの変更とstock_movementsの追記は必ず同じトランザクションで行う。
type StockUsecase struct {
	tx        repo.TransactionManager
	stocks    repo.StockRepository
	movements repo.StockMovementRepository
	policy    *Policy
}

func NewStockUsecase(
	tx repo.TransactionManager,
	stocks repo.StockRepository,
	movements repo.StockMovementRepository,
	policy *Policy,
) *StockUsecase {
	return &StockUsecase{
		tx:        tx,
		stocks:    stocks,
		movements: movements,
		policy:    policy,
	}
}

type CreateStockInput struct {
	ProductID int64
	Quantity  int64
}

// 商品作成時の初期在庫行。ベースラインなのでmovementは書かない。
// 在庫行は商品あたり1行。既にあるならConflict。
func (u *StockUsecase) Create(ctx context.Context, role model.Role, in CreateStockInput) (model.Stock, error) {
	if !u.policy.Allows(role, OpMutateStock) {
		return model.Stock{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if in.ProductID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	s, err := u.stocks.Create(ctx, model.Stock{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err == repo.ErrDuplicate {
		return model.Stock{}, NewHTTPError(http.StatusConflict, "stock row already exists for this product")
	}
	if err == repo.ErrConflict {
		// 存在しない商品へのFK違反
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if err != nil {
		return model.Stock{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// 入荷などの在庫追加。数量更新と履歴追記をひとつのTxで行う。
func (u *StockUsecase) Increase(ctx context.Context, role model.Role, stockID int64, amount int64, note string) (model.Stock, error) {
	if !u.policy.Allows(role, OpMutateStock) {
		return model.Stock{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if stockID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if amount <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}

	var out model.Stock

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stocks().AddQuantity(ctx, stockID, amount)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "stock not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.StockMovements().Create(ctx, model.StockMovement{
			ProductID:  s.ProductID,
			ActionType: model.MovementIncrease,
			Quantity:   amount,
			Note:       strings.TrimSpace(note),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = s
		return nil
	})

	if err != nil {
		return model.Stock{}, err
	}
	return out, nil
}

// 出荷・破損などの在庫減算。
// マイナス在庫は許容する（棚卸し前のずれを表現できるようにするため）。
// 注文経路はOrderUsecase側で在庫不足を拒否する。
func (u *StockUsecase) Decrease(ctx context.Context, role model.Role, stockID int64, amount int64, note string) (model.Stock, error) {
	if !u.policy.Allows(role, OpMutateStock) {
		return model.Stock{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if stockID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if amount <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "amount must be > 0")
	}

	var out model.Stock

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stocks().AddQuantity(ctx, stockID, -amount)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "stock not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.StockMovements().Create(ctx, model.StockMovement{
			ProductID:  s.ProductID,
			ActionType: model.MovementDecrease,
			Quantity:   amount,
			Note:       strings.TrimSpace(note),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = s
		return nil
	})

	if err != nil {
		return model.Stock{}, err
	}
	return out, nil
}

// 棚卸しの絶対値set。増減と競合した場合はlast-writer-wins。
func (u *StockUsecase) SetQuantity(ctx context.Context, role model.Role, stockID int64, quantity int64, note string) (model.Stock, error) {
	if !u.policy.Allows(role, OpMutateStock) {
		return model.Stock{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if stockID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if quantity < 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	var out model.Stock

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stocks().SetQuantity(ctx, stockID, quantity)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "stock not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.StockMovements().Create(ctx, model.StockMovement{
			ProductID:  s.ProductID,
			ActionType: model.MovementSet,
			Quantity:   quantity,
			Note:       strings.TrimSpace(note),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = s
		return nil
	})

	if err != nil {
		return model.Stock{}, err
	}
	return out, nil
}

// 在庫行の削除。履歴はproduct_idで持っているので残る。
func (u *StockUsecase) Delete(ctx context.Context, role model.Role, stockID int64) (model.Stock, error) {
	if !u.policy.Allows(role, OpMutateStock) {
		return model.Stock{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if stockID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Stock

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Stocks().FindByID(ctx, stockID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "stock not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Stocks().Delete(ctx, stockID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = s
		return nil
	})

	if err != nil {
		return model.Stock{}, err
	}
	return out, nil
}

func (u *StockUsecase) GetByID(ctx context.Context, stockID int64) (model.Stock, error) {
	if stockID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s, err := u.stocks.FindByID(ctx, stockID)
	if err == repo.ErrNotFound {
		return model.Stock{}, NewHTTPError(http.StatusNotFound, "stock not found")
	}
	if err != nil {
		return model.Stock{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *StockUsecase) GetByProduct(ctx context.Context, productID int64) (model.Stock, error) {
	if productID <= 0 {
		return model.Stock{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s, err := u.stocks.FindByProductID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Stock{}, NewHTTPError(http.StatusNotFound, "stock not found")
	}
	if err != nil {
		return model.Stock{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *StockUsecase) List(ctx context.Context, includeArchived bool) ([]repo.StockListRow, error) {
	rows, err := u.stocks.List(ctx, includeArchived)
	if err != nil {
		return []repo.StockListRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *StockUsecase) ListMovements(ctx context.Context) ([]repo.MovementListRow, error) {
	rows, err := u.movements.ListAll(ctx)
	if err != nil {
		return []repo.MovementListRow{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *StockUsecase) ListMovementsByProduct(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	if productID <= 0 {
		return []model.StockMovement{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	movements, err := u.movements.ListByProductID(ctx, productID)
	if err != nil {
		return []model.StockMovement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return movements, nil
}
