package usecase

import (
	"context"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type CartItemOutput struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"product_id"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
}

type CartOutput struct {
	ID         int64            `json:"id"`
	TotalPrice int64            `json:"total_price"`
	Items      []CartItemOutput `json:"items"`
}

// GetCart はカートの中身（未確定明細のみ）を返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lines, err := r.OrderItems().ListUnassignedByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toCartOutput(ctx, r, cart, lines)
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// AddToCart は商品をカートに入れる。同じ商品の未確定行があれば数量加算。
// 価格はカートに入れた時点の値を明細に写す
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, productID int64, quantity int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if quantity <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p, err := r.Products().FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カート投入時点では在庫は予約しない。確定時に初めてチェックする
		if err := r.OrderItems().UpsertUnassigned(ctx, cart.ID, productID, quantity, p.Price); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.refreshTotal(ctx, r, cart.ID); err != nil {
			return err
		}

		return u.reload(ctx, r, userID, &out)
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// UpdateCartItem は未確定明細の数量を変更する。0なら削除。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, itemID int64, quantity int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if quantity < 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must not be negative")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		owned, err := r.OrderItems().IsOwnedByUser(ctx, itemID, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !owned {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}

		item, err := r.OrderItems().FindByID(ctx, itemID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//注文済みの明細は触れない
		if item.OrderID != nil {
			return NewHTTPError(http.StatusBadRequest, "item already ordered")
		}

		if quantity == 0 {
			err = r.OrderItems().DeleteByID(ctx, itemID)
		} else {
			err = r.OrderItems().UpdateQuantity(ctx, itemID, quantity)
		}
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.refreshTotal(ctx, r, item.CartID); err != nil {
			return err
		}

		return u.reload(ctx, r, userID, &out)
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// DeleteCartItem は未確定明細を1行削除する。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, itemID int64) (CartOutput, error) {
	return u.UpdateCartItem(ctx, userID, itemID, 0)
}

// ClearCart は未確定明細を全削除する。カート行自体は消さない
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CartOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().DeleteUnassignedByCartID(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().UpdateTotalPrice(ctx, cart.ID, 0); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = CartOutput{ID: cart.ID, TotalPrice: 0, Items: []CartItemOutput{}}
		return nil
	})

	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) refreshTotal(ctx context.Context, r repo.TxRepos, cartID int64) error {
	total, err := r.OrderItems().SumUnassignedByCartID(ctx, cartID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := r.Carts().UpdateTotalPrice(ctx, cartID, total); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) reload(ctx context.Context, r repo.TxRepos, userID int64, out *CartOutput) error {
	cart, err := r.Carts().FindByUserID(ctx, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	lines, err := r.OrderItems().ListUnassignedByCartID(ctx, cart.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	*out = toCartOutput(ctx, r, cart, lines)
	return nil
}

func toCartOutput(ctx context.Context, r repo.TxRepos, cart model.Cart, lines []model.OrderItem) CartOutput {
	items := make([]CartItemOutput, 0, len(lines))
	for _, ln := range lines {
		name := ""
		if p, err := r.Products().FindByID(ctx, ln.ProductID); err == nil {
			name = p.Name
		}
		items = append(items, CartItemOutput{
			ID:              ln.ID,
			ProductID:       ln.ProductID,
			Name:            name,
			Quantity:        ln.Quantity,
			PriceAtPurchase: ln.PriceAtPurchase,
		})
	}
	return CartOutput{
		ID:         cart.ID,
		TotalPrice: cart.TotalPrice,
		Items:      items,
	}
}
