package usecase

import (
	"context"
	"net/http"

	repo "shop/internal/repository"
)

// 商品比較リスト。ユーザーごとに見比べたい商品を貯めておく
type ComparisonUsecase struct {
	comparisons repo.ComparisonRepository
	products    repo.ProductRepository
}

func NewComparisonUsecase(comparisons repo.ComparisonRepository, products repo.ProductRepository) *ComparisonUsecase {
	return &ComparisonUsecase{comparisons: comparisons, products: products}
}

func (u *ComparisonUsecase) AddProduct(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.comparisons.Add(ctx, userID, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ComparisonUsecase) List(ctx context.Context, userID int64) ([]ProductOutput, error) {
	if userID <= 0 {
		return []ProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.comparisons.ListProductsByUserID(ctx, userID)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(list))
	for _, p := range list {
		outs = append(outs, toProductOutput(p))
	}
	return outs, nil
}

func (u *ComparisonUsecase) RemoveProduct(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.comparisons.Remove(ctx, userID, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not in comparison")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
