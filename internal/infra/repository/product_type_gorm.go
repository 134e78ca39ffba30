package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductTypeGormRepository struct {
	db *gorm.DB
}

func NewProductTypeGormRepository(db *gorm.DB) *ProductTypeGormRepository {
	return &ProductTypeGormRepository{db: db}
}

// productに属するproductTypeを取得。
// 別商品のtype idを指定された場合も ErrNotFound にする。
func (r *ProductTypeGormRepository) FindByProductAndID(ctx context.Context, productID uuid.UUID, productTypeID int64) (model.ProductType, error) {
	var pt model.ProductType

	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", productTypeID, productID).
		First(&pt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductType{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductType{}, err
	}
	return pt, nil
}
