package repository

import (
	"context"
	"errors"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 未確定（カート側）の明細一覧
func (r *OrderItemGormRepository) ListUnassignedByCartID(ctx context.Context, cartID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND order_id IS NULL", cartID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 未確定明細の合計（quantity × price_at_purchase）
func (r *OrderItemGormRepository) SumUnassignedByCartID(ctx context.Context, cartID int64) (int64, error) {
	var total int64

	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("COALESCE(SUM(quantity * price_at_purchase), 0)").
		Where("cart_id = ? AND order_id IS NULL", cartID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *OrderItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.OrderItem, error) {
	var item model.OrderItem

	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return item, nil
}

//明細が、そのuserのカートに属しているかを判定

func (r *OrderItemGormRepository) IsOwnedByUser(ctx context.Context, itemID int64, userID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("join carts on carts.id = order_items.cart_id").
		Where("order_items.id = ? AND carts.user_id = ?", itemID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// 同一商品の未確定行は数量加算。無ければ追加時点の価格スナップショット付きで新規作成
func (r *OrderItemGormRepository) UpsertUnassigned(ctx context.Context, cartID int64, productID int64, addQty int64, priceAtPurchase int64) error {

	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.OrderItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ? AND order_id IS NULL", cartID, productID).
			First(&item).Error

		if err == nil {
			newQty := item.Quantity + addQty

			res := tx.Model(&model.OrderItem{}).
				Where("id = ?", item.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newItem := model.OrderItem{
			CartID:          cartID,
			ProductID:       productID,
			Quantity:        addQty,
			PriceAtPurchase: priceAtPurchase,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}

		return nil
	})
}

// 数量を更新。確定済みの行（order_idが入った行）は触れない
func (r *OrderItemGormRepository) UpdateQuantity(ctx context.Context, itemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id = ? AND order_id IS NULL", itemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 未確定の明細を削除
func (r *OrderItemGormRepository) DeleteByID(ctx context.Context, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND order_id IS NULL", itemID).
		Delete(&model.OrderItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カートの未確定明細を全削除（クリア）
func (r *OrderItemGormRepository) DeleteUnassignedByCartID(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND order_id IS NULL", cartID).
		Delete(&model.OrderItem{}).Error
}

// order_idは未確定行にしか入らない。条件で一度きりの割り当てを強制する
func (r *OrderItemGormRepository) AssignToOrder(ctx context.Context, itemID int64, orderID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id = ? AND order_id IS NULL", itemID).
		Update("order_id", orderID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 商品名付きの明細一覧。素のjoinなので削除済み商品の名前も引ける
func (r *OrderItemGormRepository) ListByOrderIDWithProduct(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	var rows []repo.OrderItemDetail

	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.product_id, products.name as product_name, order_items.quantity, order_items.price_at_purchase").
		Joins("join products on products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&rows).Error
	if err != nil {
		return []repo.OrderItemDetail{}, err
	}
	return rows, nil
}
