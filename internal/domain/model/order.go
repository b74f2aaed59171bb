package model

import "time"

// 注文。
// TotalPaymentは注文作成時点の合計（その時点の商品価格で確定、後から再計算しない）。
type Order struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	AddressID    int64     `gorm:"not null" json:"address_id"`
	TotalPayment float64   `gorm:"not null" json:"total_payment"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
