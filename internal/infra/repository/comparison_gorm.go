package repository

import (
	"context"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type ComparisonGormRepository struct {
	db *gorm.DB
}

// DI
func NewComparisonGormRepository(db *gorm.DB) *ComparisonGormRepository {
	return &ComparisonGormRepository{db: db}
}

func (r *ComparisonGormRepository) Add(ctx context.Context, userID int64, productID int64) error {
	err := r.db.WithContext(ctx).Create(&model.ComparisonProduct{
		UserID:    userID,
		ProductID: productID,
	}).Error
	//同じ商品の二度目の追加は成功扱い
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func (r *ComparisonGormRepository) ListProductsByUserID(ctx context.Context, userID int64) ([]model.Product, error) {
	var list []model.Product

	err := r.db.WithContext(ctx).
		Table("comparison_products").
		Select("products.*").
		Joins("join products on products.id = comparison_products.product_id").
		Where("comparison_products.user_id = ? and products.deleted_at is null", userID).
		Order("comparison_products.id asc").
		Scan(&list).Error
	if err != nil {
		return []model.Product{}, err
	}
	return list, nil
}

func (r *ComparisonGormRepository) Remove(ctx context.Context, userID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? and product_id = ?", userID, productID).
		Delete(&model.ComparisonProduct{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
