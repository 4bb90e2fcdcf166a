package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type PaymentUsecase struct {
	tx repo.TransactionManager
}

func NewPaymentUsecase(tx repo.TransactionManager) *PaymentUsecase {
	return &PaymentUsecase{tx: tx}
}

type InitiatePaymentInput struct {
	OrderID     int64
	PaymentType string
	CardNumber  string
	SaveCard    bool
}

type PaymentOutput struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// InitiatePayment は決済の受付。外部PSPへはまだつながない。
// レコードをPENDINGで作るところまで
func (u *PaymentUsecase) InitiatePayment(ctx context.Context, userID int64, in InitiatePaymentInput) (PaymentOutput, error) {
	if userID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.OrderID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_id")
	}
	if model.PaymentType(in.PaymentType) != model.PaymentTypeCreditCard {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "payment type not implemented")
	}

	digits := strings.TrimSpace(in.CardNumber)
	if len(digits) < 12 || len(digits) > 19 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid card number")
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid card number")
		}
	}
	//カード番号は保存しない。末尾4桁だけマスク形式で持つ
	masked := strings.Repeat("*", 12) + digits[len(digits)-4:]

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "order is cancelled")
		}
		if o.Status != model.OrderStatusNew {
			return NewHTTPError(http.StatusBadRequest, "order is already paid")
		}

		var cardID *int64
		if in.SaveCard {
			card, err := r.CreditCards().FindByUserAndMasked(ctx, userID, masked)
			if err == repo.ErrNotFound {
				card, err = r.CreditCards().Create(ctx, model.CreditCard{
					UserID:       userID,
					MaskedNumber: masked,
				})
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			cardID = &card.ID
		}

		payment, err := r.Payments().Create(ctx, model.Payment{
			UserID:       userID,
			OrderID:      in.OrderID,
			CreditCardID: cardID,
			Status:       model.PaymentStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PaymentOutput{
			ID:        payment.ID,
			OrderID:   payment.OrderID,
			Status:    string(payment.Status),
			CreatedAt: payment.CreatedAt,
		}
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

func (u *PaymentUsecase) ListMyPayments(ctx context.Context, userID int64) ([]PaymentOutput, error) {
	if userID <= 0 {
		return []PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		list, err := r.Payments().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]PaymentOutput, 0, len(list))
		for _, p := range list {
			outs = append(outs, PaymentOutput{
				ID:        p.ID,
				OrderID:   p.OrderID,
				Status:    string(p.Status),
				CreatedAt: p.CreatedAt,
			})
		}
		return nil
	})

	if err != nil {
		return []PaymentOutput{}, err
	}
	return outs, nil
}
