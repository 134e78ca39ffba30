package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 注文明細のスナップショット。
// price_at_time_of_order と type は確定時の値で固定し、
// その後 ProductType が変更・削除されても書き換えない。
type OrderProduct struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductTypeID      int64           `gorm:"not null" json:"product_type_id"`
	Quantity           int64           `gorm:"not null" json:"quantity"`
	PriceAtTimeOfOrder decimal.Decimal `gorm:"type:numeric(10,2);not null;column:price_at_time_of_order" json:"price_at_time_of_order"`
	Type               string          `gorm:"type:varchar(255);not null" json:"type"`
	CreatedAt          time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
