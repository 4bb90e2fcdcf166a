package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Login        string `gorm:"type:varchar(200);not null" json:"login"`
	FirstName    string `gorm:"type:varchar(50)" json:"first_name"`
	LastName     string `gorm:"type:varchar(50)" json:"last_name"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`

	//最後にログアウトした時刻
	LastLogoutAt *time.Time `gorm:"column:last_logout_at" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
