package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type CartRepository interface {
	//無ければ空カートを作って返す（冪等）
	GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)
	FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)
	Create(ctx context.Context, cart *model.Cart) error
	//UpdatedDateだけを更新する。明細の書き込みとは別ステートメント。
	Touch(ctx context.Context, cartID int64, at time.Time) error
}
