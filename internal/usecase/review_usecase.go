package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type ReviewUsecase struct {
	reviews  repo.ReviewRepository
	products repo.ProductRepository
}

func NewReviewUsecase(reviews repo.ReviewRepository, products repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, products: products}
}

type ReviewOutput struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *ReviewUsecase) Create(ctx context.Context, userID int64, productID int64, rating int, comment string) (ReviewOutput, error) {
	if userID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if rating < 1 || rating > 5 {
		return ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return ReviewOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	review, err := u.reviews.Create(ctx, model.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
	if err != nil {
		return ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toReviewOutput(review), nil
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]ReviewOutput, error) {
	if productID <= 0 {
		return []ReviewOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return []ReviewOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return []ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	list, err := u.reviews.ListByProductID(ctx, productID)
	if err != nil {
		return []ReviewOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ReviewOutput, 0, len(list))
	for _, rv := range list {
		outs = append(outs, toReviewOutput(rv))
	}
	return outs, nil
}

func toReviewOutput(rv model.Review) ReviewOutput {
	return ReviewOutput{
		ID:        rv.ID,
		UserID:    rv.UserID,
		ProductID: rv.ProductID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}
