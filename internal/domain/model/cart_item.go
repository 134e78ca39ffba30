package model

import (
	"time"

	"github.com/google/uuid"
)

// カートの明細。is_saved=false がアクティブ（購入対象）、
// true が「あとで買う」。
// (user_id, product_id, product_type_id, is_saved) で必ず1行。
type CartItem struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_line" json:"user_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_line" json:"product_id"`
	ProductTypeID int64     `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_type_id"`
	Quantity      int64     `gorm:"not null" json:"quantity"`
	IsSaved       bool      `gorm:"not null;default:false;uniqueIndex:idx_cart_line" json:"is_saved"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
