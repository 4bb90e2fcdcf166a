package repository

import (
	"context"

	"shop/internal/domain/model"
)

// 明細＋商品名。レスポンス組み立て用
type OrderItemDetail struct {
	ID              int64
	ProductID       int64
	ProductName     string
	Quantity        int64
	PriceAtPurchase int64
}

// カート明細（order_idがNULLの行）と注文明細（入った行）の両方を扱う。
type OrderItemRepository interface {
	//未確定（カート）側
	ListUnassignedByCartID(ctx context.Context, cartID int64) ([]model.OrderItem, error)
	SumUnassignedByCartID(ctx context.Context, cartID int64) (int64, error)
	FindByID(ctx context.Context, itemID int64) (model.OrderItem, error)
	IsOwnedByUser(ctx context.Context, itemID int64, userID int64) (bool, error)

	// 同一商品の未確定行があれば数量加算、無ければ新規作成
	UpsertUnassigned(ctx context.Context, cartID int64, productID int64, addQty int64, priceAtPurchase int64) error
	UpdateQuantity(ctx context.Context, itemID int64, qty int64) error
	DeleteByID(ctx context.Context, itemID int64) error
	DeleteUnassignedByCartID(ctx context.Context, cartID int64) error

	//確定側。order_idは一度だけ入る（未確定行にしか効かない）
	AssignToOrder(ctx context.Context, itemID int64, orderID int64) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ListByOrderIDWithProduct(ctx context.Context, orderID int64) ([]OrderItemDetail, error)
}
