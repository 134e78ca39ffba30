package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// 明細を取得
func (r *CartItemGormRepository) FindByID(ctx context.Context, id uuid.UUID) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// ユーザーの明細一覧
func (r *CartItemGormRepository) ListByUser(ctx context.Context, userID uuid.UUID, saved bool) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_saved = ?", userID, saved).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一ラインを1件取得
func (r *CartItemGormRepository) FindLine(ctx context.Context, userID uuid.UUID, productID uuid.UUID, productTypeID int64, saved bool) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND product_type_id = ? AND is_saved = ?",
			userID, productID, productTypeID, saved).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 同一ラインは加算、上限はstock。
// 同時タップで加算が消えないよう、行ロックを取ってから書く。
func (r *CartItemGormRepository) UpsertActiveWithClamp(ctx context.Context, userID uuid.UUID, productID uuid.UUID, productTypeID int64, addQty int64, stock int64) (model.CartItem, error) {

	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	var out model.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ? AND product_type_id = ? AND is_saved = ?",
				userID, productID, productTypeID, false).
			First(&item).Error

		if err == nil {
			// 既存ありなら数量を加算して在庫でクランプ
			newQty := item.Quantity + addQty
			if newQty > stock {
				newQty = stock
			}

			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", newQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}

			item.Quantity = newQty
			out = item
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成（初回もクランプ）
		qty := addQty
		if qty > stock {
			qty = stock
		}

		now := time.Now()
		newItem := model.CartItem{
			ID:            uuid.New(),
			UserID:        userID,
			ProductID:     productID,
			ProductTypeID: productTypeID,
			Quantity:      qty,
			IsSaved:       false,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}

		out = newItem
		return nil
	})

	if err != nil {
		return model.CartItem{}, err
	}
	return out, nil
}

// 明細の数量を更新
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// アクティブ⇔あとで買う を切り替え
func (r *CartItemGormRepository) SetSaved(ctx context.Context, id uuid.UUID, saved bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", id).
		Update("is_saved", saved)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// アクティブ明細の全削除（空でも成功）
func (r *CartItemGormRepository) DeleteActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND is_saved = ?", userID, false).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
