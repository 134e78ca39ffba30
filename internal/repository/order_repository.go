package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (model.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	//status以外は不変
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error
}
