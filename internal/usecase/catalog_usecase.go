package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/storage"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// CatalogUsecase は商品カタログ（Table Storage）の業務ロジック。
type CatalogUsecase struct {
	products storage.ProductStore
	clock    Clock
}

// DI
func NewCatalogUsecase(products storage.ProductStore, clock Clock) *CatalogUsecase {
	return &CatalogUsecase{
		products: products,
		clock:    clock,
	}
}

type CreateProductInput struct {
	ProductName   string
	Description   string
	Price         float64
	StockQuantity int
	Category      string
	ImageURL      string
	IsAvailable   bool
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	var (
		items []model.Product
		err   error
	)
	if category == "" {
		items, err = u.products.ListProducts(ctx)
	} else {
		items, err = u.products.ListProductsByCategory(ctx, category)
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return items, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.GetProduct(ctx, productID)
	if err == storage.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return p, nil
}

func (u *CatalogUsecase) AdminCreateProduct(ctx context.Context, adminUserID int64, in CreateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "product_name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}

	p, err := u.products.CreateProduct(ctx, model.Product{
		ProductName:   strings.TrimSpace(in.ProductName),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		IsAvailable:   in.IsAvailable,
		CreatedDate:   u.clock.Now(),
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return p, nil
}

func (u *CatalogUsecase) AdminUpdateProduct(ctx context.Context, adminUserID int64, productID string, in CreateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.ProductName) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "product_name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}

	// CreatedDateは既存値を維持する
	current, err := u.products.GetProduct(ctx, productID)
	if err == storage.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	updated := model.Product{
		ID:            productID,
		ProductName:   strings.TrimSpace(in.ProductName),
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		IsAvailable:   in.IsAvailable,
		CreatedDate:   current.CreatedDate,
	}

	if err := u.products.UpdateProduct(ctx, updated); err != nil {
		if err == storage.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return updated, nil
}

func (u *CatalogUsecase) AdminDeleteProduct(ctx context.Context, adminUserID int64, productID string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.products.DeleteProduct(ctx, productID)
	if err == storage.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}
