package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderTestEnv struct {
	txm      *TxManagerMock
	orders   *OrderRepoMock
	items    *OrderItemRepoMock
	carts    *CartRepoMock
	cartItems *CartItemRepoMock
	queues   *QueueStoreMock
	uc       *usecase.OrderUsecase
}

func newOrderEnv() *orderTestEnv {
	env := &orderTestEnv{
		txm:       new(TxManagerMock),
		orders:    new(OrderRepoMock),
		items:     new(OrderItemRepoMock),
		carts:     new(CartRepoMock),
		cartItems: new(CartItemRepoMock),
		queues:    new(QueueStoreMock),
	}
	env.txm.Repos = &TxReposMock{
		orders:     env.orders,
		orderItems: env.items,
		carts:      env.carts,
		cartItems:  env.cartItems,
	}
	env.uc = usecase.NewOrderUsecase(
		env.txm, env.orders, env.items, env.carts, env.cartItems, env.queues,
		&fixedClock{t: testNow},
	)
	return env
}

// 空カートからは注文できず、何も書かれない
func TestOrderUsecase_CreateOrder_EmptyCart(t *testing.T) {
	env := newOrderEnv()

	env.carts.On("FindByCustomerID", mock.Anything, int64(7)).Return(model.Cart{ID: 3, CustomerID: 7}, nil)
	env.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil)

	_, err := env.uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{})
	assertErrContains(t, err, "cart is empty")

	env.txm.AssertNotCalled(t, "WithinTx", mock.Anything)
	env.queues.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateOrder_NoCartRow(t *testing.T) {
	env := newOrderEnv()

	env.carts.On("FindByCustomerID", mock.Anything, int64(7)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := env.uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{})
	assertErrContains(t, err, "cart is empty")
}

// 合計はスナップショット価格の積和、番号はORD-<UTC時刻>-<顧客ID>、
// コミット後にカート掃除とキュー通知が走る
func TestOrderUsecase_CreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv()

	cartItems := []model.CartItem{
		{ID: 1, CartID: 3, ProductID: "p1", ProductName: "Widget", Price: 10.5, Quantity: 2},
		{ID: 2, CartID: 3, ProductID: "p2", ProductName: "Gadget", Price: 4.25, Quantity: 4},
	}

	env.carts.On("FindByCustomerID", mock.Anything, int64(7)).Return(model.Cart{ID: 3, CustomerID: 7}, nil)
	env.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return(cartItems, nil)

	env.txm.On("WithinTx", mock.Anything).Return(nil)

	wantNumber := "ORD-20240601120000-7"
	wantTotal := 10.5*2 + 4.25*4

	env.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == wantNumber &&
			o.CustomerID == 7 &&
			o.Status == model.OrderStatusPending &&
			o.TotalAmount == wantTotal &&
			o.OrderDate.Equal(testNow)
	})).Return(int64(42), nil)

	env.items.On("CreateBulk", mock.Anything, int64(42), mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		return items[0].Subtotal == 21.0 && items[1].Subtotal == 17.0
	})).Return(nil)

	env.cartItems.On("DeleteByCartID", mock.Anything, int64(3)).Return(nil)

	env.queues.On("Send", mock.Anything, usecase.QueueOrderProcessing, mock.MatchedBy(func(payload []byte) bool {
		var msg model.OrderMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			return false
		}
		return msg.OrderID == "42" && msg.CustomerID == "7" && msg.TotalAmount == wantTotal &&
			len(msg.ProductIDs) == 2 && msg.Status == "PENDING"
	})).Return(nil)

	env.orders.On("FindByIDAndCustomer", mock.Anything, int64(42), int64(7)).Return(model.Order{
		ID: 42, OrderNumber: wantNumber, CustomerID: 7, OrderDate: testNow,
		TotalAmount: wantTotal, Status: model.OrderStatusPending,
	}, nil)
	env.items.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{ID: 100, OrderID: 42, ProductID: "p1", Price: 10.5, Quantity: 2, Subtotal: 21.0},
		{ID: 101, OrderID: 42, ProductID: "p2", Price: 4.25, Quantity: 4, Subtotal: 17.0},
	}, nil)

	out, err := env.uc.CreateOrder(ctx, 7, usecase.CreateOrderInput{ShippingAddress: "somewhere"})
	assert.NoError(t, err)
	assert.Equal(t, wantNumber, out.OrderNumber)
	assert.InDelta(t, wantTotal, out.TotalAmount, 0.0001)
	assert.Equal(t, 2, len(out.Items))

	env.orders.AssertExpectations(t)
	env.items.AssertExpectations(t)
	env.cartItems.AssertExpectations(t)
	env.queues.AssertExpectations(t)
}

// 注文番号が衝突したら409、掃除も通知も走らない
func TestOrderUsecase_CreateOrder_DuplicateNumber(t *testing.T) {
	env := newOrderEnv()

	env.carts.On("FindByCustomerID", mock.Anything, int64(7)).Return(model.Cart{ID: 3, CustomerID: 7}, nil)
	env.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: "p1", Price: 5, Quantity: 1},
	}, nil)
	env.txm.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("Create", mock.Anything, mock.Anything).Return(int64(0), repo.ErrConflict)

	_, err := env.uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{})
	assertErrContains(t, err, "order number conflict")

	env.cartItems.AssertNotCalled(t, "DeleteByCartID", mock.Anything, mock.Anything)
	env.queues.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

// キュー送信が失敗しても注文は返る
func TestOrderUsecase_CreateOrder_QueueFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv()

	env.carts.On("FindByCustomerID", mock.Anything, int64(7)).Return(model.Cart{ID: 3, CustomerID: 7}, nil)
	env.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: "p1", Price: 5, Quantity: 1},
	}, nil)
	env.txm.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	env.items.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	env.cartItems.On("DeleteByCartID", mock.Anything, int64(3)).Return(assert.AnError)
	env.queues.On("Send", mock.Anything, usecase.QueueOrderProcessing, mock.Anything).Return(assert.AnError)
	env.orders.On("FindByIDAndCustomer", mock.Anything, int64(42), int64(7)).Return(model.Order{
		ID: 42, CustomerID: 7, Status: model.OrderStatusPending,
	}, nil)
	env.items.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	out, err := env.uc.CreateOrder(ctx, 7, usecase.CreateOrderInput{})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
}

func TestOrderUsecase_GetOrderByNumber_OtherCustomer(t *testing.T) {
	env := newOrderEnv()

	env.orders.On("FindByNumber", mock.Anything, "ORD-X").Return(model.Order{
		ID: 1, OrderNumber: "ORD-X", CustomerID: 99,
	}, nil)

	_, err := env.uc.GetOrderByNumber(context.Background(), 7, "ORD-X")
	assertErrContains(t, err, "not found")
}

func TestOrderUsecase_CancelOrder_NonPending(t *testing.T) {
	env := newOrderEnv()

	env.orders.On("FindByIDAndCustomer", mock.Anything, int64(42), int64(7)).Return(model.Order{
		ID: 42, CustomerID: 7, Status: model.OrderStatusShipped,
	}, nil)

	_, err := env.uc.CancelOrder(context.Background(), 7, 42)
	assertErrContains(t, err, "only pending orders can be cancelled")

	env.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_CancelOrder_Pending(t *testing.T) {
	ctx := context.Background()
	env := newOrderEnv()

	env.orders.On("FindByIDAndCustomer", mock.Anything, int64(42), int64(7)).Return(model.Order{
		ID: 42, CustomerID: 7, Status: model.OrderStatusPending, OrderDate: testNow,
	}, nil)
	env.orders.On("UpdateStatus", mock.Anything, int64(42), model.OrderStatusCancelled).Return(nil)
	env.items.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	out, err := env.uc.CancelOrder(ctx, 7, 42)
	assert.NoError(t, err)
	assert.Equal(t, "CANCELLED", out.Status)

	env.orders.AssertExpectations(t)
}

func TestOrderUsecase_CancelOrder_OtherCustomersOrder(t *testing.T) {
	env := newOrderEnv()

	env.orders.On("FindByIDAndCustomer", mock.Anything, int64(42), int64(7)).Return(model.Order{}, repo.ErrNotFound)

	_, err := env.uc.CancelOrder(context.Background(), 7, 42)
	assertErrContains(t, err, "not found")
}

// 再取得した注文の日付はUTCのまま返る
func TestOrderUsecase_OrderNumberUsesUTC(t *testing.T) {
	env := newOrderEnv()

	jst := time.FixedZone("JST", 9*60*60)
	localClock := &fixedClock{t: time.Date(2024, 6, 1, 21, 0, 0, 0, jst)} // UTCでは12:00

	uc := usecase.NewOrderUsecase(env.txm, env.orders, env.items, env.carts, env.cartItems, env.queues, localClock)

	env.carts.On("FindByCustomerID", mock.Anything, int64(7)).Return(model.Cart{ID: 3, CustomerID: 7}, nil)
	env.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: "p1", Price: 5, Quantity: 1},
	}, nil)
	env.txm.On("WithinTx", mock.Anything).Return(nil)
	env.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == "ORD-20240601120000-7"
	})).Return(int64(1), nil)
	env.items.On("CreateBulk", mock.Anything, int64(1), mock.Anything).Return(nil)
	env.cartItems.On("DeleteByCartID", mock.Anything, int64(3)).Return(nil)
	env.queues.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	env.orders.On("FindByIDAndCustomer", mock.Anything, int64(1), int64(7)).Return(model.Order{ID: 1, CustomerID: 7}, nil)
	env.items.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	_, err := uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{})
	assert.NoError(t, err)

	env.orders.AssertExpectations(t)
}
