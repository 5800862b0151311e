package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type MockProductRepo struct{ mock.Mock }

func (m *MockProductRepo) List(ctx context.Context, includeArchived bool) ([]model.Product, error) {
	args := m.Called(ctx, includeArchived)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *MockProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, id int64, u repo.ProductUpdate) (model.Product, error) {
	args := m.Called(ctx, id, u)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) Archive(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStockRepo struct{ mock.Mock }

func (m *MockStockRepo) Create(ctx context.Context, s model.Stock) (model.Stock, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Stock)
	return created, args.Error(1)
}

func (m *MockStockRepo) FindByID(ctx context.Context, id int64) (model.Stock, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Stock)
	return s, args.Error(1)
}

func (m *MockStockRepo) FindByProductID(ctx context.Context, productID int64) (model.Stock, error) {
	args := m.Called(ctx, productID)
	s, _ := args.Get(0).(model.Stock)
	return s, args.Error(1)
}

func (m *MockStockRepo) List(ctx context.Context, includeArchived bool) ([]repo.StockListRow, error) {
	args := m.Called(ctx, includeArchived)
	rows, _ := args.Get(0).([]repo.StockListRow)
	return rows, args.Error(1)
}

func (m *MockStockRepo) AddQuantity(ctx context.Context, id int64, delta int64) (model.Stock, error) {
	args := m.Called(ctx, id, delta)
	s, _ := args.Get(0).(model.Stock)
	return s, args.Error(1)
}

func (m *MockStockRepo) SetQuantity(ctx context.Context, id int64, quantity int64) (model.Stock, error) {
	args := m.Called(ctx, id, quantity)
	s, _ := args.Get(0).(model.Stock)
	return s, args.Error(1)
}

func (m *MockStockRepo) DecreaseByProductIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepo) AddQuantityByProduct(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *MockStockRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRepo) DeleteByProductID(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockMovementRepo struct{ mock.Mock }

func (m *MockMovementRepo) Create(ctx context.Context, mv model.StockMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovementRepo) ListAll(ctx context.Context) ([]repo.MovementListRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.MovementListRow)
	return rows, args.Error(1)
}

func (m *MockMovementRepo) ListByProductID(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	args := m.Called(ctx, productID)
	movements, _ := args.Get(0).([]model.StockMovement)
	return movements, args.Error(1)
}

func (m *MockMovementRepo) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepo) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepo) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockOrderItemRepo struct{ mock.Mock }

func (m *MockOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *MockOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderItemRepo) ExistsByProductID(ctx context.Context, productID int64) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, userID int64, role model.Role) (model.User, error) {
	args := m.Called(ctx, userID, role)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockCategoryRepo struct{ mock.Mock }

func (m *MockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepo) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *MockCategoryRepo) Update(ctx context.Context, id int64, name string) (model.Category, error) {
	args := m.Called(ctx, id, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReportRepo struct{ mock.Mock }

func (m *MockReportRepo) StockSummary(ctx context.Context) ([]repo.StockSummaryRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.StockSummaryRow)
	return rows, args.Error(1)
}

func (m *MockReportRepo) LowStock(ctx context.Context, threshold int64, from, to *time.Time) ([]repo.LowStockRow, error) {
	args := m.Called(ctx, threshold, from, to)
	rows, _ := args.Get(0).([]repo.LowStockRow)
	return rows, args.Error(1)
}

func (m *MockReportRepo) FilteredStock(ctx context.Context, f repo.StockFilter) ([]repo.StockListRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repo.StockListRow)
	return rows, args.Error(1)
}

// =====================
// Tx stub
// =====================

// テスト用のTxRepos。渡したrepoをそのまま返す。
type stubTxRepos struct {
	products   repo.ProductRepository
	stocks     repo.StockRepository
	movements  repo.StockMovementRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *stubTxRepos) Products() repo.ProductRepository             { return r.products }
func (r *stubTxRepos) Stocks() repo.StockRepository                 { return r.stocks }
func (r *stubTxRepos) StockMovements() repo.StockMovementRepository { return r.movements }
func (r *stubTxRepos) Orders() repo.OrderRepository                 { return r.orders }
func (r *stubTxRepos) OrderItems() repo.OrderItemRepository         { return r.orderItems }

// fnをそのまま実行するTransactionManager
type stubTxManager struct {
	repos *stubTxRepos
}

func (tm *stubTxManager) WithinTx(_ context.Context, fn func(r repo.TxRepos) error) error {
	return fn(tm.repos)
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error containing %q, got %q", want, err.Error())
	}
}
