package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 商品バリエーション（サイズ・色など）。価格と在庫はここが正。
// 在庫は外部の在庫管理が更新するので、この層からは読むだけ。
type ProductType struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Type      string          `gorm:"type:varchar(255);not null" json:"type"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
