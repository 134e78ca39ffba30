package usecase

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks（注文用）
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	if err := args.Error(0); err != nil {
		return model.Order{}, err
	}
	//テストでは採番だけ
	order.ID = uuid.New()
	return order, nil
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID uuid.UUID) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderProductRepoMock struct {
	mock.Mock
	created []model.OrderProduct
}

func (m *OrderProductRepoMock) CreateBulk(ctx context.Context, orderID uuid.UUID, items []model.OrderProduct) error {
	args := m.Called(ctx, orderID, items)
	m.created = items
	return args.Error(0)
}

func (m *OrderProductRepoMock) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderProduct, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderProduct)
	return items, args.Error(1)
}

// OrderUsecaseからはDeleteActiveByUserしか呼ばれない
type OrderCartRepoMock struct{ mock.Mock }

func (m *OrderCartRepoMock) DeleteActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderCartRepoMock) FindByID(ctx context.Context, id uuid.UUID) (model.CartItem, error) {
	panic("not used in OrderUsecase tests")
}
func (m *OrderCartRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, saved bool) ([]model.CartItem, error) {
	panic("not used in OrderUsecase tests")
}
func (m *OrderCartRepoMock) FindLine(ctx context.Context, userID uuid.UUID, productID uuid.UUID, productTypeID int64, saved bool) (model.CartItem, error) {
	panic("not used in OrderUsecase tests")
}
func (m *OrderCartRepoMock) UpsertActiveWithClamp(ctx context.Context, userID uuid.UUID, productID uuid.UUID, productTypeID int64, addQty int64, stock int64) (model.CartItem, error) {
	panic("not used in OrderUsecase tests")
}
func (m *OrderCartRepoMock) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int64) error {
	panic("not used in OrderUsecase tests")
}
func (m *OrderCartRepoMock) SetSaved(ctx context.Context, id uuid.UUID, saved bool) error {
	panic("not used in OrderUsecase tests")
}
func (m *OrderCartRepoMock) DeleteByID(ctx context.Context, id uuid.UUID) error {
	panic("not used in OrderUsecase tests")
}

// =====================
// セットアップ
// =====================

type orderFixture struct {
	uc            *OrderUsecase
	orders        *OrderRepoMock
	orderProducts *OrderProductRepoMock
	cartItems     *OrderCartRepoMock
	types         *ProductTypeRepoMock

	userID uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orders:        new(OrderRepoMock),
		orderProducts: new(OrderProductRepoMock),
		cartItems:     new(OrderCartRepoMock),
		types:         new(ProductTypeRepoMock),
		userID:        uuid.New(),
	}

	tx := &txManagerStub{Repos: &txReposStub{
		cartItems:     f.cartItems,
		productTypes:  f.types,
		orders:        f.orders,
		orderProducts: f.orderProducts,
	}}

	f.uc = NewOrderUsecase(tx, decimal.RequireFromString("0.10"))
	return f
}

func (f *orderFixture) shippingInput(lines []OrderLineInput) PlaceOrderInput {
	return PlaceOrderInput{
		UserID:        f.userID,
		Name:          "Taro Yamada",
		PhoneNumber:   "555-0123",
		StreetAddress: "1 Fish Tank Way",
		City:          "Springfield",
		State:         "IL",
		ZipCode:       "62704",
		Products:      lines,
	}
}

// Test: 小計・税・合計（2明細: 2個@$10 + 1個@$25、税10% → 45.00/4.50/49.50）
func TestPlaceOrderComputesTotals(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	productA := uuid.New()
	productB := uuid.New()

	f.types.On("FindByProductAndID", mock.Anything, productA, int64(1)).
		Return(model.ProductType{ID: 1, ProductID: productA, Type: "S", Price: decimal.RequireFromString("10.00"), Quantity: 10}, nil)
	f.types.On("FindByProductAndID", mock.Anything, productB, int64(2)).
		Return(model.ProductType{ID: 2, ProductID: productB, Type: "L", Price: decimal.RequireFromString("25.00"), Quantity: 10}, nil)

	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.orderProducts.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.cartItems.On("DeleteActiveByUser", mock.Anything, f.userID).Return(int64(2), nil)

	out, err := f.uc.PlaceOrder(ctx, f.shippingInput([]OrderLineInput{
		{ProductID: productA, ProductTypeID: 1, Quantity: 2},
		{ProductID: productB, ProductTypeID: 2, Quantity: 1},
	}))

	assert.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(decimal.RequireFromString("45.00")), "subtotal=%s", out.Subtotal)
	assert.True(t, out.Tax.Equal(decimal.RequireFromString("4.50")), "tax=%s", out.Tax)
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("49.50")), "total=%s", out.TotalPrice)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)

	//スナップショットは2行、確定時の価格とラベルを持つ
	assert.Len(t, f.orderProducts.created, 2)
	assert.True(t, f.orderProducts.created[0].PriceAtTimeOfOrder.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "S", f.orderProducts.created[0].Type)
	assert.True(t, f.orderProducts.created[1].PriceAtTimeOfOrder.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, "L", f.orderProducts.created[1].Type)

	//同じトランザクションでカートも掃除される
	f.cartItems.AssertCalled(t, "DeleteActiveByUser", mock.Anything, f.userID)
}

// Test: 途中でproductTypeが無ければ404、注文も明細も作られない
func TestPlaceOrderMissingTypeCreatesNothing(t *testing.T) {
	f := newOrderFixture(t)

	productA := uuid.New()
	productB := uuid.New()

	f.types.On("FindByProductAndID", mock.Anything, productA, int64(1)).
		Return(model.ProductType{ID: 1, ProductID: productA, Type: "S", Price: decimal.RequireFromString("10.00"), Quantity: 10}, nil)
	f.types.On("FindByProductAndID", mock.Anything, productB, int64(2)).
		Return(model.ProductType{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(context.Background(), f.shippingInput([]OrderLineInput{
		{ProductID: productA, ProductTypeID: 1, Quantity: 2},
		{ProductID: productB, ProductTypeID: 2, Quantity: 1},
	}))

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.orderProducts.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
	f.cartItems.AssertNotCalled(t, "DeleteActiveByUser", mock.Anything, mock.Anything)
}

// Test: スナップショット価格は後からProductTypeが変わっても動かない
func TestOrderDetailKeepsSnapshotPrice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	orderID := uuid.New()
	stored := model.Order{
		ID:         orderID,
		UserID:     f.userID,
		Subtotal:   decimal.RequireFromString("20.00"),
		Tax:        decimal.RequireFromString("2.00"),
		TotalPrice: decimal.RequireFromString("22.00"),
		Status:     model.OrderStatusPending,
	}
	storedItems := []model.OrderProduct{
		{OrderID: orderID, ProductTypeID: 1, Quantity: 2, PriceAtTimeOfOrder: decimal.RequireFromString("10.00"), Type: "S"},
	}

	f.orders.On("FindByID", mock.Anything, orderID).Return(stored, nil)
	f.orderProducts.On("ListByOrderID", mock.Anything, orderID).Return(storedItems, nil)

	//現在価格が$15.00に上がっていても参照しない
	out, err := f.uc.GetOrderDetail(ctx, orderID)
	assert.NoError(t, err)
	assert.True(t, out.Products[0].PriceAtTimeOfOrder.Equal(decimal.RequireFromString("10.00")))

	f.types.AssertNotCalled(t, "FindByProductAndID", mock.Anything, mock.Anything, mock.Anything)
}

// Test: 郵便番号が不正なら400
func TestPlaceOrderInvalidZip(t *testing.T) {
	f := newOrderFixture(t)

	in := f.shippingInput([]OrderLineInput{
		{ProductID: uuid.New(), ProductTypeID: 1, Quantity: 1},
	})
	in.ZipCode = "627x4"

	_, err := f.uc.PlaceOrder(context.Background(), in)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// Test: 明細なしは400
func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), f.shippingInput(nil))
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "cart empty", he.Message)
}

// Test: ステータス遷移はpendingからだけ、値もcompleted/cancelledだけ
func TestUpdateStatusTransitions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	orderID := uuid.New()

	//不正な値
	_, err := f.uc.UpdateStatus(ctx, orderID, "shipped")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//pending → completed
	f.orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, UserID: f.userID, Status: model.OrderStatusPending}, nil).Once()
	f.orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCompleted).Return(nil)
	f.orderProducts.On("ListByOrderID", mock.Anything, orderID).Return([]model.OrderProduct{}, nil)

	out, err := f.uc.UpdateStatus(ctx, orderID, "completed")
	assert.NoError(t, err)
	assert.Equal(t, "completed", out.Status)

	//確定済みはもう動かせない
	f.orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, UserID: f.userID, Status: model.OrderStatusCompleted}, nil).Once()

	_, err = f.uc.UpdateStatus(ctx, orderID, "cancelled")
	he, ok = AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
