package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/storage"
)

// 注文系メッセージを流すキュー名
const (
	QueueOrderProcessing     = "order-processing"
	QueueInventoryManagement = "inventory-management"
	QueueImageProcessing     = "image-processing"
)

// OrderUsecase は注文の作成・参照・キャンセルを担当します。
// 注文本体と明細は1トランザクションで保存し、カートの掃除は
// コミット後のベストエフォートです。
type OrderUsecase struct {
	txm           repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	cartRepo      repo.CartRepository
	cartItemRepo  repo.CartItemRepository
	queues        storage.QueueStore
	clock         Clock
}

func NewOrderUsecase(
	txm repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	queues storage.QueueStore,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{
		txm:           txm,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		queues:        queues,
		clock:         clock,
	}
}

type OrderItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      int64               `json:"customer_id"`
	OrderDate       time.Time           `json:"order_date"`
	TotalAmount     float64             `json:"total_amount"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	Notes           string              `json:"notes"`
	Items           []OrderItemResponse `json:"items"`
}

type CreateOrderInput struct {
	ShippingAddress string
	Notes           string
}

// CreateOrder はカート全量から注文を起こす。
// カートが空なら400。明細はカートのスナップショット価格を引き継ぐ。
func (u *OrderUsecase) CreateOrder(ctx context.Context, customerID int64, in CreateOrderInput) (OrderResponse, error) {
	if customerID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cartItems, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(cartItems) == 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	now := u.clock.Now().UTC()
	orderNumber := fmt.Sprintf("ORD-%s-%d", now.Format("20060102150405"), customerID)

	var total float64 = 0
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	productIDs := make([]string, 0, len(cartItems))
	for _, ci := range cartItems {
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   ci.ProductID,
			ProductName: ci.ProductName,
			Price:       ci.Price,
			Quantity:    ci.Quantity,
			Subtotal:    ci.Subtotal(),
		})
		total += ci.Subtotal()
		productIDs = append(productIDs, ci.ProductID)
	}

	order := model.Order{
		OrderNumber:     orderNumber,
		CustomerID:      customerID,
		OrderDate:       now,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
	}

	// 注文本体＋明細は不可分
	var orderID int64
	err = u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		orderID = id
		return r.OrderItems().CreateBulk(ctx, id, orderItems)
	})
	if err == repo.ErrConflict {
		return OrderResponse{}, NewHTTPError(http.StatusConflict, "order number conflict")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ここから先で失敗しても注文は成立済み。掃除と通知はベストエフォート。
	if err := u.cartItemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		log.Printf("order %d: cart clear failed: %v", orderID, err)
	}
	u.enqueueOrderMessage(ctx, orderID, customerID, productIDs, total, now)

	return u.buildOrderResponse(ctx, orderID, customerID)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, customerID int64, orderID int64) (OrderResponse, error) {
	if customerID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orderRepo.FindByIDAndCustomer(ctx, orderID, customerID)
	if err == repo.ErrNotFound {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.attachItems(ctx, o)
}

func (u *OrderUsecase) GetOrderByNumber(ctx context.Context, customerID int64, orderNumber string) (OrderResponse, error) {
	if customerID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderNumber == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid order number")
	}

	o, err := u.orderRepo.FindByNumber(ctx, orderNumber)
	if err == repo.ErrNotFound {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	// 他人の注文は存在しない扱い
	if o.CustomerID != customerID {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.attachItems(ctx, o)
}

func (u *OrderUsecase) ListOrders(ctx context.Context, customerID int64) ([]OrderResponse, error) {
	if customerID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		r, err := u.attachItems(ctx, o)
		if err != nil {
			return nil, err
		}
		resp = append(resp, r)
	}
	return resp, nil
}

// CancelOrder は本人のPENDINGの注文だけをCANCELLEDにする。
func (u *OrderUsecase) CancelOrder(ctx context.Context, customerID int64, orderID int64) (OrderResponse, error) {
	if customerID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orderRepo.FindByIDAndCustomer(ctx, orderID, customerID)
	if err == repo.ErrNotFound {
		return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.Status != model.OrderStatusPending {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "only pending orders can be cancelled")
	}

	if err := u.orderRepo.UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
		if err == repo.ErrNotFound {
			return OrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.Status = model.OrderStatusCancelled
	return u.attachItems(ctx, o)
}

// 注文確定の通知。失敗しても注文は巻き戻さない。
func (u *OrderUsecase) enqueueOrderMessage(ctx context.Context, orderID int64, customerID int64, productIDs []string, total float64, orderDate time.Time) {
	msg := model.OrderMessage{
		OrderID:     strconv.FormatInt(orderID, 10),
		CustomerID:  strconv.FormatInt(customerID, 10),
		ProductIDs:  productIDs,
		TotalAmount: total,
		OrderDate:   orderDate,
		Status:      string(model.OrderStatusPending),
		Message:     fmt.Sprintf("order %d created", orderID),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := u.queues.Send(ctx, QueueOrderProcessing, payload); err != nil {
		log.Printf("order %d: enqueue failed: %v", orderID, err)
	}
}

func (u *OrderUsecase) buildOrderResponse(ctx context.Context, orderID int64, customerID int64) (OrderResponse, error) {
	o, err := u.orderRepo.FindByIDAndCustomer(ctx, orderID, customerID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.attachItems(ctx, o)
}

func (u *OrderUsecase) attachItems(ctx context.Context, o model.Order) (OrderResponse, error) {
	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		respItems = append(respItems, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		Items:           respItems,
	}, nil
}
