package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

// AddressIDが0のときはインラインの住所フィールドから新規作成する
type PlaceOrderInput struct {
	AddressID   int64
	CountryCode string
	City        string
	Street      string
	PostalCode  string
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	AddressID  int64             `json:"address_id"`
	Status     string            `json:"status"`
	TotalPrice int64             `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文確定。全工程を1トランザクションで行い、
// 途中で失敗したら住所も注文も在庫減算も一切残さない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID < 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid address_id")
	}
	if in.AddressID == 0 {
		//インライン住所の必須チェック
		if strings.TrimSpace(in.CountryCode) == "" ||
			strings.TrimSpace(in.City) == "" ||
			strings.TrimSpace(in.Street) == "" ||
			strings.TrimSpace(in.PostalCode) == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address_id or full address required")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//未確定明細のみで空チェック。
		//確定済みの行しか残っていないカートも空扱いにする
		lines, err := r.OrderItems().ListUnassignedByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//住所解決。新規作成もトランザクション内なので、
		//後段の在庫チェック失敗で巻き戻る
		addressID := in.AddressID
		if addressID > 0 {
			addr, err := r.Addresses().FindByID(ctx, addressID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "address not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//他人の住所は存在しない扱い
			if addr.UserID != userID {
				return NewHTTPError(http.StatusNotFound, "address not found")
			}
		} else {
			addr, err := r.Addresses().Create(ctx, model.Address{
				UserID:      userID,
				CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
				City:        strings.TrimSpace(in.City),
				Street:      strings.TrimSpace(in.Street),
				PostalCode:  strings.TrimSpace(in.PostalCode),
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			addressID = addr.ID
		}

		//注文作成。在庫処理より先にIDを確定させる
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:      userID,
			CartID:      cart.ID,
			AddressID:   addressID,
			Status:      model.OrderStatusNew,
			TotalPrice:  cart.TotalPrice,
			PaymentType: model.PaymentTypeCreditCard,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//商品はID昇順でロックする。重なり合う商品集合を持つ
		//同時注文同士のデッドロックを避けるため
		productIDs := make([]int64, 0, len(lines))
		seen := make(map[int64]struct{}, len(lines))
		for _, ln := range lines {
			if _, ok := seen[ln.ProductID]; ok {
				continue
			}
			seen[ln.ProductID] = struct{}{}
			productIDs = append(productIDs, ln.ProductID)
		}
		sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

		products := make(map[int64]model.Product, len(productIDs))
		for _, id := range productIDs {
			p, err := r.Products().FindByIDForUpdate(ctx, id)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", id))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			products[id] = p
		}

		//在庫チェック＋減算＋明細の割り当て
		for _, ln := range lines {
			p := products[ln.ProductID]
			if p.Stock < ln.Quantity {
				return &InsufficientStockError{ProductName: p.Name, Available: p.Stock}
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ln.ProductID, ln.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return &InsufficientStockError{ProductName: p.Name, Available: p.Stock}
			}

			//同一商品が複数行あっても残量で判定できるように引いておく
			p.Stock -= ln.Quantity
			products[ln.ProductID] = p

			if err := r.OrderItems().AssignToOrder(ctx, ln.ID, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//未確定明細が減ったので合計キャッシュを引き直す
		total, err := r.OrderItems().SumUnassignedByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().UpdateTotalPrice(ctx, cart.ID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderIDWithProduct(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(model.Order{
			ID:         orderID,
			UserID:     userID,
			AddressID:  addressID,
			Status:     model.OrderStatusNew,
			TotalPrice: cart.TotalPrice,
			CreatedAt:  now,
		}, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder は注文キャンセル。CANCELLEDへの一方通行で、
// 在庫は戻さない（戻すかどうかは未決の業務ルール）。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人の注文は存在しない扱い
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("order %d is already cancelled", orderID))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderIDWithProduct(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderIDWithProduct(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderIDWithProduct(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []repo.OrderItemDetail) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Price:     it.PriceAtPurchase,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		AddressID:  o.AddressID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Items:      outItems,
	}
}
