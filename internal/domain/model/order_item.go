package model

import "time"

// カート明細。OrderIDがNULLの間はカートの行で、
// 注文確定時にOrderIDが入る。一度入ったら二度と変わらない。
// PriceAtPurchaseは追加時点の価格スナップショット。
type OrderItem struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID          int64     `gorm:"not null;index" json:"cart_id"`
	OrderID         *int64    `gorm:"index" json:"order_id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	Quantity        int64     `gorm:"not null;default:1" json:"quantity"`
	PriceAtPurchase int64     `gorm:"not null;column:price_at_purchase" json:"price_at_purchase"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
