package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//国コード（ISO 3166-1 alpha-2）
	CountryCode string `gorm:"type:varchar(2);not null" json:"country_code"`

	City       string `gorm:"type:varchar(100);not null" json:"city"`
	Street     string `gorm:"type:varchar(200);not null" json:"street"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`

	//このユーザーのデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
