package model

import "time"

// 商品比較リストの1行。同じ商品は1ユーザーにつき1回まで
type ComparisonProduct struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_comparison_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:uq_comparison_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
