package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// 商品の取得だけを約束。カタログの書き込みは外部。
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.Product, error)
}

// 価格・在庫の正となる ProductType の読み取り窓口。
// キャッシュはしない（在庫は外部で動くので毎回読む）。
type ProductTypeRepository interface {
	//productに属するproductTypeを1件取得。属していなければ ErrNotFound
	FindByProductAndID(ctx context.Context, productID uuid.UUID, productTypeID int64) (model.ProductType, error)
}
