package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderProductGormRepository struct {
	db *gorm.DB
}

func NewOrderProductGormRepository(db *gorm.DB) *OrderProductGormRepository {
	return &OrderProductGormRepository{db: db}
}

// 注文明細のスナップショットを一括作成
func (r *OrderProductGormRepository) CreateBulk(ctx context.Context, orderID uuid.UUID, items []model.OrderProduct) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}
	return nil
}

func (r *OrderProductGormRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderProduct, error) {
	var items []model.OrderProduct
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderProduct{}, err
	}
	return items, nil
}
