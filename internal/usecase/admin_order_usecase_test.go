package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminUsecase(orders *OrderRepoMock) *usecase.AdminOrderUsecase {
	return usecase.NewAdminOrderUsecase(orders, &fixedClock{t: testNow})
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	_, err := uc.UpdateOrderStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "UNKNOWN"})
	assertErrContains(t, err, "invalid status")

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// 小文字・空白混じりでも通り、DBには大文字で入る
func TestAdminOrderUsecase_UpdateStatus_CaseInsensitive(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, Status: model.OrderStatusPending}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusShipped).Return(nil)

	out, err := uc.UpdateOrderStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: " shipped "})
	assert.NoError(t, err)
	_ = out

	orders.AssertExpectations(t)
	orders.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// PENDINGからSHIPPEDへの飛び級も管理者には許される
func TestAdminOrderUsecase_UpdateStatus_PermissiveTransition(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, Status: model.OrderStatusPending}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusShipped).Return(nil)

	_, err := uc.UpdateOrderStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "SHIPPED"})
	assert.NoError(t, err)
}

// PROCESSEDへの遷移はステータスとスタンプを1回の書き込みで済ませ、毎回上書きする
func TestAdminOrderUsecase_UpdateStatus_ProcessedStampsEveryTime(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	already := testNow.Add(-24 * time.Hour)
	prevAdmin := int64(2)

	orders.On("FindByID", mock.Anything, int64(10)).Return(model.Order{
		ID: 10, Status: model.OrderStatusProcessed,
		ProcessedDate: &already, ProcessedBy: &prevAdmin,
	}, nil)
	orders.On("MarkProcessed", mock.Anything, int64(10), testNow, int64(1)).Return(nil)

	_, err := uc.UpdateOrderStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "PROCESSED"})
	assert.NoError(t, err)

	orders.AssertExpectations(t)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	orders.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.UpdateOrderStatus(context.Background(), 1, 99, usecase.UpdateOrderStatusInput{Status: "SHIPPED"})
	assertErrContains(t, err, "not found")
}

func TestAdminOrderUsecase_ListByStatus_InvalidStatus(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	_, err := uc.ListOrdersByStatus(context.Background(), 1, "WAITING")
	assertErrContains(t, err, "invalid status")
}

// 売上はCANCELLEDを除いた合計になる
func TestAdminOrderUsecase_Statistics_RevenueExcludesCancelled(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	orders.On("ListAll", mock.Anything).Return([]model.Order{
		{ID: 1, Status: model.OrderStatusPending, TotalAmount: 100},
		{ID: 2, Status: model.OrderStatusProcessed, TotalAmount: 50},
		{ID: 3, Status: model.OrderStatusCancelled, TotalAmount: 999},
		{ID: 4, Status: model.OrderStatusDelivered, TotalAmount: 25.5},
		{ID: 5, Status: model.OrderStatusShipped, TotalAmount: 10},
	}, nil)

	stats, err := uc.GetOrderStatistics(context.Background(), 1)
	assert.NoError(t, err)

	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.ProcessedOrders)
	assert.Equal(t, 1, stats.ShippedOrders)
	assert.Equal(t, 1, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.CancelledOrders)
	assert.InDelta(t, 185.5, stats.TotalRevenue, 0.0001)
}

func TestAdminOrderUsecase_Statistics_Empty(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newAdminUsecase(orders)

	orders.On("ListAll", mock.Anything).Return([]model.Order{}, nil)

	stats, err := uc.GetOrderStatistics(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0.0, stats.TotalRevenue)
}
