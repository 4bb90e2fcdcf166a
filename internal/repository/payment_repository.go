package repository

import (
	"context"

	"shop/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment model.Payment) (model.Payment, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error)
}

// 保存カード。マスク済みの番号でしか照合しない
type CreditCardRepository interface {
	FindByUserAndMasked(ctx context.Context, userID int64, masked string) (model.CreditCard, error)
	Create(ctx context.Context, card model.CreditCard) (model.CreditCard, error)
}
