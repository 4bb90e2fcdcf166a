package usecase

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartTestEnv() (*TxManagerMock, *CartRepoMock, *OrderItemRepoMock, *ProductRepoMock) {
	carts := new(CartRepoMock)
	orderItems := new(OrderItemRepoMock)
	products := new(ProductRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		carts:      carts,
		orderItems: orderItems,
		products:   products,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	return tx, carts, orderItems, products
}

func TestCartUsecase_AddToCart_Success(t *testing.T) {
	tx, carts, orderItems, products := newCartTestEnv()
	uc := NewCartUsecase(tx)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1, TotalPrice: 3000}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "keyboard", Price: 1500}, nil)
	//現在価格がそのまま明細のスナップショットになる
	orderItems.On("UpsertUnassigned", mock.Anything, int64(7), int64(10), int64(2), int64(1500)).Return(nil)
	orderItems.On("SumUnassignedByCartID", mock.Anything, int64(7)).Return(int64(3000), nil)
	carts.On("UpdateTotalPrice", mock.Anything, int64(7), int64(3000)).Return(nil)
	orderItems.On("ListUnassignedByCartID", mock.Anything, int64(7)).Return([]model.OrderItem{
		{ID: 21, CartID: 7, ProductID: 10, Quantity: 2, PriceAtPurchase: 1500},
	}, nil)

	out, err := uc.AddToCart(context.Background(), 1, 10, 2)

	assert.NoError(t, err)
	if assert.Len(t, out.Items, 1) {
		assert.Equal(t, int64(1500), out.Items[0].PriceAtPurchase)
	}
	orderItems.AssertCalled(t, "UpsertUnassigned", mock.Anything, int64(7), int64(10), int64(2), int64(1500))
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	tx, _, _, _ := newCartTestEnv()
	uc := NewCartUsecase(tx)

	_, err := uc.AddToCart(context.Background(), 1, 10, 0)

	assertErrContains(t, err, "quantity must be positive")
}

func TestCartUsecase_AddToCart_ProductNotFound(t *testing.T) {
	tx, carts, orderItems, products := newCartTestEnv()
	uc := NewCartUsecase(tx)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(context.Background(), 1, 10, 2)

	assertErrContains(t, err, "product not found")
	orderItems.AssertNotCalled(t, "UpsertUnassigned", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_AlreadyOrdered(t *testing.T) {
	tx, _, orderItems, _ := newCartTestEnv()
	uc := NewCartUsecase(tx)

	orderID := int64(100)
	orderItems.On("IsOwnedByUser", mock.Anything, int64(21), int64(1)).Return(true, nil)
	orderItems.On("FindByID", mock.Anything, int64(21)).Return(model.OrderItem{ID: 21, CartID: 7, OrderID: &orderID}, nil)

	_, err := uc.UpdateCartItem(context.Background(), 1, 21, 3)

	assertErrContains(t, err, "item already ordered")
	orderItems.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_ForeignItem(t *testing.T) {
	tx, _, orderItems, _ := newCartTestEnv()
	uc := NewCartUsecase(tx)

	orderItems.On("IsOwnedByUser", mock.Anything, int64(21), int64(1)).Return(false, nil)

	_, err := uc.UpdateCartItem(context.Background(), 1, 21, 3)

	assertErrContains(t, err, "cart item not found")
}

func TestCartUsecase_UpdateCartItem_ZeroQuantityDeletes(t *testing.T) {
	tx, carts, orderItems, _ := newCartTestEnv()
	uc := NewCartUsecase(tx)

	orderItems.On("IsOwnedByUser", mock.Anything, int64(21), int64(1)).Return(true, nil)
	orderItems.On("FindByID", mock.Anything, int64(21)).Return(model.OrderItem{ID: 21, CartID: 7, ProductID: 10, Quantity: 2}, nil)
	orderItems.On("DeleteByID", mock.Anything, int64(21)).Return(nil)
	orderItems.On("SumUnassignedByCartID", mock.Anything, int64(7)).Return(int64(0), nil)
	carts.On("UpdateTotalPrice", mock.Anything, int64(7), int64(0)).Return(nil)
	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1, TotalPrice: 0}, nil)
	orderItems.On("ListUnassignedByCartID", mock.Anything, int64(7)).Return([]model.OrderItem{}, nil)

	out, err := uc.UpdateCartItem(context.Background(), 1, 21, 0)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	orderItems.AssertCalled(t, "DeleteByID", mock.Anything, int64(21))
	orderItems.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_ClearCart_ResetsTotal(t *testing.T) {
	tx, carts, orderItems, _ := newCartTestEnv()
	uc := NewCartUsecase(tx)

	carts.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 7, UserID: 1, TotalPrice: 4500}, nil)
	orderItems.On("DeleteUnassignedByCartID", mock.Anything, int64(7)).Return(nil)
	carts.On("UpdateTotalPrice", mock.Anything, int64(7), int64(0)).Return(nil)

	out, err := uc.ClearCart(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.TotalPrice)
	assert.Empty(t, out.Items)
	carts.AssertCalled(t, "UpdateTotalPrice", mock.Anything, int64(7), int64(0))
}
