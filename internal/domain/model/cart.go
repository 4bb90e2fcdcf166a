package model

import "time"

// カートは1ユーザーにつき1つ。会員登録時に作成する。
// TotalPriceは未確定明細（order_idがNULLの行）の合計キャッシュ。
type Cart struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalPrice int64     `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
