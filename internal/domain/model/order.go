package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 注文。配送先は住所マスタを参照せず、確定時の値をそのまま持つ。
// 作成後は status 以外は変更しない。
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"order_id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	PhoneNumber   string          `gorm:"type:varchar(30);not null" json:"phone_number"`
	StreetAddress string          `gorm:"type:varchar(255);not null" json:"street_address"`
	City          string          `gorm:"type:varchar(255);not null" json:"city"`
	State         string          `gorm:"type:varchar(100);not null" json:"state"`
	ZipCode       string          `gorm:"type:varchar(10);not null" json:"zip_code"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tax"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
