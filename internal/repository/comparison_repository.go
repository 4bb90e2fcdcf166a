package repository

import (
	"context"

	"shop/internal/domain/model"
)

type ComparisonRepository interface {
	//既に入っている商品を足しても二重登録にはしない
	Add(ctx context.Context, userID int64, productID int64) error

	//比較リストに入っている商品を登録順で返す
	ListProductsByUserID(ctx context.Context, userID int64) ([]model.Product, error)

	Remove(ctx context.Context, userID int64, productID int64) error
}
