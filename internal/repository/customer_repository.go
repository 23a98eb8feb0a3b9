package repository

import (
	"context"

	"app/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	//User 1:1 なのでuserIDからも引ける
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
}
