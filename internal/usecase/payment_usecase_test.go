package usecase

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentTestEnv() (*PaymentUsecase, *OrderRepoMock, *PaymentRepoMock, *CreditCardRepoMock) {
	orders := new(OrderRepoMock)
	payments := new(PaymentRepoMock)
	cards := new(CreditCardRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:      orders,
		payments:    payments,
		creditCards: cards,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil)

	return NewPaymentUsecase(tx), orders, payments, cards
}

func TestPaymentUsecase_Initiate_Success(t *testing.T) {
	uc, orders, payments, _ := newPaymentTestEnv()

	orders.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, UserID: 1, Status: model.OrderStatusNew}, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		return p.UserID == 1 && p.OrderID == 100 && p.Status == model.PaymentStatusPending && p.CreditCardID == nil
	})).Return(model.Payment{ID: 55, UserID: 1, OrderID: 100, Status: model.PaymentStatusPending}, nil)

	out, err := uc.InitiatePayment(context.Background(), 1, InitiatePaymentInput{
		OrderID:     100,
		PaymentType: "credit_card",
		CardNumber:  "4242424242424242",
	})

	assert.NoError(t, err)
	assert.Equal(t, "PENDING", out.Status)
}

func TestPaymentUsecase_Initiate_SaveCard_MasksNumber(t *testing.T) {
	uc, orders, payments, cards := newPaymentTestEnv()

	orders.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, UserID: 1, Status: model.OrderStatusNew}, nil)
	//初回なので見つからず、新規作成される
	cards.On("FindByUserAndMasked", mock.Anything, int64(1), "************4242").Return(model.CreditCard{}, repo.ErrNotFound)
	cards.On("Create", mock.Anything, mock.MatchedBy(func(c model.CreditCard) bool {
		return c.UserID == 1 && c.MaskedNumber == "************4242"
	})).Return(model.CreditCard{ID: 9, UserID: 1, MaskedNumber: "************4242"}, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		return p.CreditCardID != nil && *p.CreditCardID == 9
	})).Return(model.Payment{ID: 55, OrderID: 100, Status: model.PaymentStatusPending}, nil)

	_, err := uc.InitiatePayment(context.Background(), 1, InitiatePaymentInput{
		OrderID:     100,
		PaymentType: "credit_card",
		CardNumber:  "4242424242424242",
		SaveCard:    true,
	})

	assert.NoError(t, err)
	//生のカード番号はどこにも保存されない
	cards.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Initiate_UnsupportedType(t *testing.T) {
	uc, orders, _, _ := newPaymentTestEnv()

	_, err := uc.InitiatePayment(context.Background(), 1, InitiatePaymentInput{
		OrderID:     100,
		PaymentType: "paypal",
		CardNumber:  "4242424242424242",
	})

	assertErrContains(t, err, "not implemented")
	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Initiate_CancelledOrder(t *testing.T) {
	uc, orders, payments, _ := newPaymentTestEnv()

	orders.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, UserID: 1, Status: model.OrderStatusCancelled}, nil)

	_, err := uc.InitiatePayment(context.Background(), 1, InitiatePaymentInput{
		OrderID:     100,
		PaymentType: "credit_card",
		CardNumber:  "4242424242424242",
	})

	assertErrContains(t, err, "order is cancelled")
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Initiate_ForeignOrder(t *testing.T) {
	uc, orders, payments, _ := newPaymentTestEnv()

	orders.On("FindByID", mock.Anything, int64(100)).Return(model.Order{ID: 100, UserID: 99, Status: model.OrderStatusNew}, nil)

	_, err := uc.InitiatePayment(context.Background(), 1, InitiatePaymentInput{
		OrderID:     100,
		PaymentType: "credit_card",
		CardNumber:  "4242424242424242",
	})

	assertErrContains(t, err, "order not found")
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_Initiate_BadCardNumber(t *testing.T) {
	uc, _, _, _ := newPaymentTestEnv()

	_, err := uc.InitiatePayment(context.Background(), 1, InitiatePaymentInput{
		OrderID:     100,
		PaymentType: "credit_card",
		CardNumber:  "4242-4242",
	})

	assertErrContains(t, err, "invalid card number")
}
