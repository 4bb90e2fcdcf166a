package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを作成。すでにあれば既存を返す
func (r *CartGormRepository) Create(ctx context.Context, userID int64) (model.Cart, error) {
	cart := model.Cart{UserID: userID}

	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		//user_id一意制約に当たったら既存カートを拾う
		if isUniqueViolation(err) {
			return r.FindByUserID(ctx, userID)
		}
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 合計キャッシュを更新
func (r *CartGormRepository) UpdateTotalPrice(ctx context.Context, cartID int64, total int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("total_price", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
