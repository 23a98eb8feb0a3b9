package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/storage"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newCartUsecase(cartRepo *CartRepoMock, itemRepo *CartItemRepoMock, products *ProductStoreMock) *usecase.CartUsecase {
	return usecase.NewCartUsecase(cartRepo, itemRepo, products, &fixedClock{t: testNow})
}

func TestCartUsecase_AddItem_InvalidQuantity(t *testing.T) {
	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(ProductStoreMock))

	_, err := uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{ProductID: "p1", Quantity: 0})
	assertErrContains(t, err, "invalid quantity")

	_, err = uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{ProductID: "p1", Quantity: -3})
	assertErrContains(t, err, "invalid quantity")
}

func TestCartUsecase_AddItem_UnknownProduct(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	products := new(ProductStoreMock)

	cartRepo.On("GetOrCreateByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, CustomerID: 1}, nil)
	products.On("GetProduct", mock.Anything, "missing").Return(model.Product{}, storage.ErrNotFound)

	uc := newCartUsecase(cartRepo, itemRepo, products)

	_, err := uc.AddItem(context.Background(), 1, usecase.AddCartItemInput{ProductID: "missing", Quantity: 1})
	assertErrContains(t, err, "invalid product")

	itemRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// 同一商品の2回目の追加は行を増やさず数量加算になる
func TestCartUsecase_AddItem_MergesExistingLine(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	products := new(ProductStoreMock)

	cartRepo.On("GetOrCreateByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, CustomerID: 1}, nil)
	products.On("GetProduct", mock.Anything, "p1").Return(model.Product{
		ID: "p1", ProductName: "Widget", Price: 9.99, IsAvailable: true,
	}, nil)

	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), "p1").Return(model.CartItem{
		ID: 77, CartID: 5, ProductID: "p1", Quantity: 2, Price: 9.99,
	}, nil)
	itemRepo.On("UpdateQuantity", mock.Anything, int64(77), 5).Return(nil)
	cartRepo.On("Touch", mock.Anything, int64(5), testNow).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 77, CartID: 5, ProductID: "p1", ProductName: "Widget", Price: 9.99, Quantity: 5},
	}, nil)

	uc := newCartUsecase(cartRepo, itemRepo, products)

	out, err := uc.AddItem(ctx, 1, usecase.AddCartItemInput{ProductID: "p1", Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, 5, out.Items[0].Quantity)
	assert.InDelta(t, 49.95, out.Total, 0.0001)

	itemRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	itemRepo.AssertExpectations(t)
}

// 新規商品はカタログのスナップショットを持った行になる
func TestCartUsecase_AddItem_InsertsSnapshotLine(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	products := new(ProductStoreMock)

	cartRepo.On("GetOrCreateByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, CustomerID: 1}, nil)
	products.On("GetProduct", mock.Anything, "p2").Return(model.Product{
		ID: "p2", ProductName: "Gadget", Price: 42.5, ImageURL: "https://img/p2.png", IsAvailable: true,
	}, nil)

	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(5), "p2").Return(model.CartItem{}, repo.ErrNotFound)
	itemRepo.On("Insert", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
		return it.CartID == 5 &&
			it.ProductID == "p2" &&
			it.ProductName == "Gadget" &&
			it.Price == 42.5 &&
			it.Quantity == 2 &&
			it.ImageURL == "https://img/p2.png" &&
			it.AddedDate.Equal(testNow)
	})).Return(nil)
	cartRepo.On("Touch", mock.Anything, int64(5), testNow).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 1, CartID: 5, ProductID: "p2", ProductName: "Gadget", Price: 42.5, Quantity: 2},
	}, nil)

	uc := newCartUsecase(cartRepo, itemRepo, products)

	out, err := uc.AddItem(ctx, 1, usecase.AddCartItemInput{ProductID: "p2", Quantity: 2})
	assert.NoError(t, err)
	assert.InDelta(t, 85.0, out.Total, 0.0001)
	assert.Equal(t, 2, out.ItemCount)

	itemRepo.AssertExpectations(t)
}

// 数量0や負数は拒否され、行は消えも変わりもしない
func TestCartUsecase_UpdateItemQuantity_RejectsNonPositive(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)

	uc := newCartUsecase(cartRepo, itemRepo, new(ProductStoreMock))

	for _, qty := range []int{0, -2} {
		_, err := uc.UpdateItemQuantity(ctx, 1, 9, usecase.UpdateCartItemInput{Quantity: qty})
		assertErrContains(t, err, "invalid quantity")
	}

	itemRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	cartRepo.AssertNotCalled(t, "Touch", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateItemQuantity_UpdatesOwnedLine(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)

	cartRepo.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, CustomerID: 1}, nil)
	itemRepo.On("FindByID", mock.Anything, int64(9)).Return(model.CartItem{ID: 9, CartID: 5, Price: 9.99, Quantity: 2}, nil)
	itemRepo.On("UpdateQuantity", mock.Anything, int64(9), 4).Return(nil)
	cartRepo.On("Touch", mock.Anything, int64(5), testNow).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{
		{ID: 9, CartID: 5, ProductID: "p1", Price: 9.99, Quantity: 4},
	}, nil)

	uc := newCartUsecase(cartRepo, itemRepo, new(ProductStoreMock))

	out, err := uc.UpdateItemQuantity(ctx, 1, 9, usecase.UpdateCartItemInput{Quantity: 4})
	assert.NoError(t, err)
	assert.Equal(t, 4, out.Items[0].Quantity)

	itemRepo.AssertExpectations(t)
}

// 他人のカートの明細は404扱い
func TestCartUsecase_RemoveItem_OtherCustomersItem(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)

	cartRepo.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 5, CustomerID: 1}, nil)
	itemRepo.On("FindByID", mock.Anything, int64(9)).Return(model.CartItem{ID: 9, CartID: 999}, nil)

	uc := newCartUsecase(cartRepo, itemRepo, new(ProductStoreMock))

	_, err := uc.RemoveItem(context.Background(), 1, 9)
	assertErrContains(t, err, "not found")

	itemRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

// カートが無い顧客のClearは何もしないで成功する
func TestCartUsecase_Clear_NoCartIsNoop(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)

	cartRepo.On("FindByCustomerID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := newCartUsecase(cartRepo, itemRepo, new(ProductStoreMock))

	err := uc.Clear(context.Background(), 1)
	assert.NoError(t, err)

	itemRepo.AssertNotCalled(t, "DeleteByCartID", mock.Anything, mock.Anything)
}
