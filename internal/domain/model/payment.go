package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentType string

const (
	PaymentTypeCreditCard     PaymentType = "credit_card"
	PaymentTypePaypal         PaymentType = "paypal"
	PaymentTypeGooglePay      PaymentType = "google_pay"
	PaymentTypeApplePay       PaymentType = "apple_pay"
	PaymentTypeCashOnDelivery PaymentType = "cash_on_delivery"
	PaymentTypeBankTransfer   PaymentType = "bank_transfer"
)

// 決済レコード。外部ゲートウェイ連携はスタブで、PENDINGのまま作るだけ。
type Payment struct {
	ID           int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64         `gorm:"not null;index" json:"user_id"`
	OrderID      int64         `gorm:"not null;index" json:"order_id"`
	CreditCardID *int64        `json:"credit_card_id"`
	Status       PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt    time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
