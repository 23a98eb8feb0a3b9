package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/storage"
)

// CartUsecase は /cart の業務ロジックです。
// 商品マスタはTable Storage側（storage.ProductStore）から引きます。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	products     storage.ProductStore
	clock        Clock
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	products storage.ProductStore,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		products:     products,
		clock:        clock,
	}
}

// price は追加時点のスナップショット価格を返します。
type CartItemResponse struct {
	ID          int64   `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
	Subtotal    float64 `json:"subtotal"`
}

type CartResponse struct {
	CartID    int64              `json:"cart_id"`
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
}

type AddCartItemInput struct {
	ProductID string
	Quantity  int
}

type UpdateCartItemInput struct {
	Quantity int
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, customerID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddItem はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, customerID int64, in AddCartItemInput) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.GetOrCreateByCustomerID(ctx, customerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック（Table Storage側）
	p, err := u.products.GetProduct(ctx, in.ProductID)
	if err == storage.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if !p.IsAvailable {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	now := u.clock.Now()

	// 同一商品は数量加算、無ければスナップショット付きで新規行
	existing, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	switch err {
	case nil:
		if err := u.cartItemRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+in.Quantity); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case repo.ErrNotFound:
		item := model.CartItem{
			CartID:      cart.ID,
			ProductID:   p.ID,
			ProductName: p.ProductName,
			Price:       p.Price,
			Quantity:    in.Quantity,
			ImageURL:    p.ImageURL,
			AddedDate:   now,
		}
		if err := u.cartItemRepo.Insert(ctx, &item); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	default:
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Touch(ctx, cart.ID, now); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更（所有チェック付き）。1未満は拒否し、行には触れない。
func (u *CartUsecase) UpdateItemQuantity(ctx context.Context, customerID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, item, err := u.findOwnedItem(ctx, customerID, cartItemID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Touch(ctx, cart.ID, u.clock.Now()); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, customerID int64, cartItemID int64) (CartResponse, error) {
	if customerID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, item, err := u.findOwnedItem(ctx, customerID, cartItemID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Touch(ctx, cart.ID, u.clock.Now()); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// カートを空にする。カートが無ければ何もしない。
func (u *CartUsecase) Clear(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.cartRepo.Touch(ctx, cart.ID, u.clock.Now()); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 他人のカートの明細は存在しない扱い
func (u *CartUsecase) findOwnedItem(ctx context.Context, customerID int64, cartItemID int64) (model.Cart, model.CartItem, error) {
	cart, err := u.cartRepo.FindByCustomerID(ctx, customerID)
	if err == repo.ErrNotFound {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.CartID != cart.ID {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return cart, item, nil
}

// cartIDの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total float64 = 0
	count := 0

	for _, it := range items {
		respItems = append(respItems, CartItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
			ImageURL:    it.ImageURL,
			Subtotal:    it.Subtotal(),
		})
		total += it.Subtotal()
		count += it.Quantity
	}

	return CartResponse{CartID: cartID, Items: respItems, Total: total, ItemCount: count}, nil
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
