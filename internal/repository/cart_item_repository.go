package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

type CartItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.CartItem, error)

	//ユーザーの明細一覧（saved=falseでアクティブ、trueで「あとで買う」）
	ListByUser(ctx context.Context, userID uuid.UUID, saved bool) ([]model.CartItem, error)

	//同一 (user, product, productType, saved) の明細を1件取得
	FindLine(ctx context.Context, userID uuid.UUID, productID uuid.UUID, productTypeID int64, saved bool) (model.CartItem, error)

	// 同一ラインは加算、上限はstockまで。行ロックで直列化する
	UpsertActiveWithClamp(ctx context.Context, userID uuid.UUID, productID uuid.UUID, productTypeID int64, addQty int64, stock int64) (model.CartItem, error)

	UpdateQuantity(ctx context.Context, id uuid.UUID, qty int64) error

	//アクティブ⇔あとで買う の切り替え（行はそのまま）
	SetSaved(ctx context.Context, id uuid.UUID, saved bool) error

	DeleteByID(ctx context.Context, id uuid.UUID) error

	//アクティブ明細の全削除。削除件数を返す
	DeleteActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
