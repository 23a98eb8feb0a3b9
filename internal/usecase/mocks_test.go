package usecase_test

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// 時計（テストでは固定）
// =====================

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Create(ctx context.Context, cart *model.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *CartRepoMock) Touch(ctx context.Context, cartID int64, at time.Time) error {
	args := m.Called(ctx, cartID, at)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID int64, productID string) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Insert(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByNumber(ctx context.Context, orderNumber string) (model.Order, error) {
	args := m.Called(ctx, orderNumber)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDAndCustomer(ctx context.Context, orderID int64, customerID int64) (model.Order, error) {
	args := m.Called(ctx, orderID, customerID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkProcessed(ctx context.Context, orderID int64, at time.Time, adminUserID int64) error {
	args := m.Called(ctx, orderID, at, adminUserID)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	users      repo.UserRepository
	customers  repo.CustomerRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *TxReposMock) Users() repo.UserRepository           { return r.users }
func (r *TxReposMock) Customers() repo.CustomerRepository   { return r.customers }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }

// =====================
// Storage gateway mocks
// =====================

type ProductStoreMock struct{ mock.Mock }

func (m *ProductStoreMock) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductStoreMock) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	args := m.Called(ctx, productID)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductStoreMock) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *ProductStoreMock) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *ProductStoreMock) UpdateProduct(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductStoreMock) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type FileStoreMock struct{ mock.Mock }

func (m *FileStoreMock) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

func (m *FileStoreMock) Download(ctx context.Context, fileName string) ([]byte, error) {
	args := m.Called(ctx, fileName)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *FileStoreMock) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *FileStoreMock) Delete(ctx context.Context, fileName string) error {
	args := m.Called(ctx, fileName)
	return args.Error(0)
}

type QueueStoreMock struct{ mock.Mock }

func (m *QueueStoreMock) Send(ctx context.Context, queueName string, payload []byte) error {
	args := m.Called(ctx, queueName, payload)
	return args.Error(0)
}

func (m *QueueStoreMock) ReceiveOne(ctx context.Context, queueName string) ([]byte, bool, error) {
	args := m.Called(ctx, queueName)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *QueueStoreMock) Peek(ctx context.Context, queueName string, max int) ([][]byte, error) {
	args := m.Called(ctx, queueName, max)
	b, _ := args.Get(0).([][]byte)
	return b, args.Error(1)
}

func (m *QueueStoreMock) Clear(ctx context.Context, queueName string) error {
	args := m.Called(ctx, queueName)
	return args.Error(0)
}
