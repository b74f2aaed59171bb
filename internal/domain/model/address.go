package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//番地など
	AddressLine string `gorm:"type:varchar(255);not null" json:"address_line"`

	//市区町村
	City string `gorm:"type:varchar(255);not null" json:"city"`

	//国
	Country string `gorm:"type:varchar(80);not null" json:"country"`

	//郵便番号
	Postcode string `gorm:"type:varchar(20);not null" json:"postcode"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
