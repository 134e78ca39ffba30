package model

import (
	"time"

	"github.com/google/uuid"
)

// 商品本体。カタログ管理（作成・更新・画像）は外部の管理APIが行う。
// ここでは存在チェックと表示名のためだけに読む。
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
