package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, payment model.Payment) (model.Payment, error) {
	if err := r.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return model.Payment{}, err
	}
	return payment, nil
}

func (r *PaymentGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error) {
	var list []model.Payment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&list).Error; err != nil {
		return []model.Payment{}, err
	}
	return list, nil
}

type CreditCardGormRepository struct {
	db *gorm.DB
}

// DI
func NewCreditCardGormRepository(db *gorm.DB) *CreditCardGormRepository {
	return &CreditCardGormRepository{db: db}
}

func (r *CreditCardGormRepository) FindByUserAndMasked(ctx context.Context, userID int64, masked string) (model.CreditCard, error) {
	var c model.CreditCard
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND last_4_numbers = ?", userID, masked).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CreditCard{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CreditCard{}, err
	}
	return c, nil
}

func (r *CreditCardGormRepository) Create(ctx context.Context, card model.CreditCard) (model.CreditCard, error) {
	if err := r.db.WithContext(ctx).Create(&card).Error; err != nil {
		return model.CreditCard{}, err
	}
	return card, nil
}
