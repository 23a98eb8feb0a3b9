package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (model.Order, error)
	//所有チェック込みの取得（他人の注文はErrNotFound）
	FindByIDAndCustomer(ctx context.Context, orderID int64, customerID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//PROCESSEDへの遷移。ステータスと処理者スタンプを1文で書く（再遷移時は上書き）
	MarkProcessed(ctx context.Context, orderID int64, at time.Time, adminUserID int64) error
}
