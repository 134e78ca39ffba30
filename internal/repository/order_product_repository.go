package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

type OrderProductRepository interface {
	CreateBulk(ctx context.Context, orderID uuid.UUID, items []model.OrderProduct) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderProduct, error)
}
