package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AdminOrderUsecase は管理者向けの注文操作。
// ステータス遷移は任意→任意を許す（運用での手修正を想定）。
type AdminOrderUsecase struct {
	orderRepo repo.OrderRepository
	clock     Clock
}

func NewAdminOrderUsecase(orderRepo repo.OrderRepository, clock Clock) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		orderRepo: orderRepo,
		clock:     clock,
	}
}

type AdminOrderResponse struct {
	ID              int64      `json:"id"`
	OrderNumber     string     `json:"order_number"`
	CustomerID      int64      `json:"customer_id"`
	OrderDate       time.Time  `json:"order_date"`
	TotalAmount     float64    `json:"total_amount"`
	Status          string     `json:"status"`
	ShippingAddress string     `json:"shipping_address"`
	Notes           string     `json:"notes"`
	ProcessedDate   *time.Time `json:"processed_date"`
	ProcessedBy     *int64     `json:"processed_by"`
}

type UpdateOrderStatusInput struct {
	Status string
}

type OrderStatisticsResponse struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	ProcessedOrders int     `json:"processed_orders"`
	ShippedOrders   int     `json:"shipped_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	CancelledOrders int     `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
}

func (u *AdminOrderUsecase) ListAllOrders(ctx context.Context, adminUserID int64) ([]AdminOrderResponse, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toAdminResponses(orders), nil
}

func (u *AdminOrderUsecase) ListOrdersByStatus(ctx context.Context, adminUserID int64, statusStr string) ([]AdminOrderResponse, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	status, ok := model.ParseOrderStatus(statusStr)
	if !ok {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	orders, err := u.orderRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toAdminResponses(orders), nil
}

// UpdateOrderStatus はステータスを書き換える。
// PROCESSEDへ遷移するたび処理日時と処理者を上書きスタンプする。
func (u *AdminOrderUsecase) UpdateOrderStatus(ctx context.Context, adminUserID int64, orderID int64, in UpdateOrderStatusInput) (AdminOrderResponse, error) {
	if adminUserID <= 0 {
		return AdminOrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return AdminOrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	status, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return AdminOrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if _, err := u.orderRepo.FindByID(ctx, orderID); err != nil {
		if err == repo.ErrNotFound {
			return AdminOrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return AdminOrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// PROCESSEDはステータスとスタンプを1文で書く（中途半端な状態を残さない）
	var err error
	if status == model.OrderStatusProcessed {
		err = u.orderRepo.MarkProcessed(ctx, orderID, u.clock.Now(), adminUserID)
	} else {
		err = u.orderRepo.UpdateStatus(ctx, orderID, status)
	}
	if err != nil {
		if err == repo.ErrNotFound {
			return AdminOrderResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return AdminOrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return AdminOrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toAdminResponse(o), nil
}

// GetOrderStatistics は全注文を舐めて集計する。
// 売上はCANCELLEDを除いた合計。
func (u *AdminOrderUsecase) GetOrderStatistics(ctx context.Context, adminUserID int64) (OrderStatisticsResponse, error) {
	if adminUserID <= 0 {
		return OrderStatisticsResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return OrderStatisticsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var stats OrderStatisticsResponse
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			stats.PendingOrders++
		case model.OrderStatusProcessed:
			stats.ProcessedOrders++
		case model.OrderStatusShipped:
			stats.ShippedOrders++
		case model.OrderStatusDelivered:
			stats.DeliveredOrders++
		case model.OrderStatusCancelled:
			stats.CancelledOrders++
		}
		if o.Status != model.OrderStatusCancelled {
			stats.TotalRevenue += o.TotalAmount
		}
	}
	return stats, nil
}

func toAdminResponse(o model.Order) AdminOrderResponse {
	return AdminOrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
		ProcessedDate:   o.ProcessedDate,
		ProcessedBy:     o.ProcessedBy,
	}
}

func toAdminResponses(orders []model.Order) []AdminOrderResponse {
	resp := make([]AdminOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toAdminResponse(o))
	}
	return resp
}
