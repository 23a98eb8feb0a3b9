package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID int64, productID string) (model.CartItem, error)
	Insert(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	//カートの全明細を削除
	DeleteByCartID(ctx context.Context, cartID int64) error
}
