package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CartRepository interface {
	//会員登録時に作る。1ユーザー1カート
	Create(ctx context.Context, userID int64) (model.Cart, error)

	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	//合計キャッシュの更新。未確定明細から再計算した値を渡す
	UpdateTotalPrice(ctx context.Context, cartID int64, total int64) error
}
