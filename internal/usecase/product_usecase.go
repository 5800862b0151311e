package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
	policy   *Policy
}

// DI
func NewProductUsecase(tx repo.TransactionManager, products repo.ProductRepository, policy *Policy) *ProductUsecase {
	return &ProductUsecase{tx: tx, products: products, policy: policy}
}

type CreateProductInput struct {
	Name        string
	SKU         string
	Description string
	Price       int64
	CategoryID  *int64
	// 初期在庫。省略時は0。
	InitialQuantity int64
}

// 商品作成。初期在庫行も同じTxで作り、どちらかが失敗したら両方ロールバック。
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "sku required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.InitialQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	categoryID := in.CategoryID
	if categoryID != nil && *categoryID <= 0 {
		// 空のカテゴリ指定は「カテゴリなし」に正規化
		categoryID = nil
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().Create(ctx, model.Product{
			Name:        strings.TrimSpace(in.Name),
			SKU:         strings.TrimSpace(in.SKU),
			Description: in.Description,
			Price:       in.Price,
			CategoryID:  categoryID,
		})
		if err == repo.ErrDuplicate {
			return NewHTTPError(http.StatusConflict, "sku already exists")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//初期在庫。ベースラインなのでmovementは書かない。
		if _, err := r.Stocks().Create(ctx, model.Stock{
			ProductID: p.ID,
			Quantity:  in.InitialQuantity,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

type UpdateProductInput struct {
	Name        *string
	SKU         *string
	Description *string
	Price       *int64
	CategoryID  *int64
	// CategoryIDを反映するかどうか（nil区別のため）
	SetCategoryID bool
}

func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "sku required")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	categoryID := in.CategoryID
	if categoryID != nil && *categoryID <= 0 {
		//空指定は「カテゴリなし」
		categoryID = nil
	}

	p, err := u.products.Update(ctx, productID, repo.ProductUpdate{
		Name:          trimmed(in.Name),
		SKU:           trimmed(in.SKU),
		Description:   in.Description,
		Price:         in.Price,
		CategoryID:    categoryID,
		SetCategoryID: in.SetCategoryID,
	})
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err == repo.ErrDuplicate {
		return model.Product{}, NewHTTPError(http.StatusConflict, "sku already exists")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// archived=trueにする。二回目以降も成功（冪等）。
func (u *ProductUsecase) Archive(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.Archive(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 物理削除。注文明細か在庫履歴から参照されている商品は消せない（archive推奨）。
// adminだけ。
func (u *ProductUsecase) Delete(ctx context.Context, role model.Role, productID int64) (model.Product, error) {
	if !u.policy.Allows(role, OpDeleteProduct) {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "admin only")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var out model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		referenced, err := r.OrderItems().ExistsByProductID(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !referenced {
			referenced, err = r.StockMovements().ExistsByProductID(ctx, productID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		if referenced {
			return NewHTTPError(http.StatusConflict, "product is referenced; archive it instead")
		}

		//在庫の現在値行は商品と一緒に消す
		if err := r.Stocks().DeleteByProductID(ctx, productID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Products().Delete(ctx, productID); err != nil {
			if err == repo.ErrConflict {
				// FK違反はチェック漏れの保険
				return NewHTTPError(http.StatusConflict, "product is referenced; archive it instead")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = p
		return nil
	})

	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

func (u *ProductUsecase) List(ctx context.Context, includeArchived bool) ([]model.Product, error) {
	products, err := u.products.List(ctx, includeArchived)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
