package model

import "time"

// 保存カード。番号は下4桁以外マスクした形でしか持たない。
type CreditCard struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	MaskedNumber string    `gorm:"type:varchar(50);not null;column:last_4_numbers" json:"masked_number"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
