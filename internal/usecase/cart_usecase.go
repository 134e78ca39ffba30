package usecase

import (
	"context"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartUsecase は /api/cart の業務ロジックです。
// アクティブ明細と「あとで買う」明細の一意性と在庫上限をここで守る。
type CartUsecase struct {
	tx           repo.TransactionManager
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	typeRepo     repo.ProductTypeRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	typeRepo repo.ProductTypeRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		typeRepo:     typeRepo,
	}
}

// CartItemResponse は明細1行。
// price は今のProductTypeの価格（表示用。注文確定時に再取得する）。
type CartItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductTypeID int64           `json:"product_type_id"`
	ProductName   string          `json:"product_name"`
	Type          string          `json:"type"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int64           `json:"quantity"`
	IsSaved       bool            `json:"is_saved"`
}

type AddCartInput struct {
	UserID        uuid.UUID
	ProductID     uuid.UUID
	ProductTypeID int64
	Quantity      int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// UpdateCartItemOutput は更新後の明細、または削除した事実を返す。
type UpdateCartItemOutput struct {
	Deleted bool              `json:"deleted"`
	Item    *CartItemResponse `json:"item,omitempty"`
}

type ClearCartOutput struct {
	Deleted int64 `json:"deleted"`
}

// AddToCart はカートに追加（同一ラインは加算、在庫でクランプ）。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (CartItemResponse, error) {
	if in.UserID == uuid.Nil {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if in.ProductID == uuid.Nil {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.ProductTypeID <= 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_type_id")
	}

	//数量未指定は1個
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartItemResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//productTypeが商品に属するかチェック
	pt, err := u.typeRepo.FindByProductAndID(ctx, in.ProductID, in.ProductTypeID)
	if err == repo.ErrNotFound {
		return CartItemResponse{}, NewHTTPError(http.StatusNotFound, "product type not found")
	}
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//在庫0なら数量0の行を作らない
	if pt.Quantity <= 0 {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "out of stock")
	}

	//加算とクランプはrepo側で行ロックして行う（連打で加算が消えないように）
	item, err := u.cartItemRepo.UpsertActiveWithClamp(ctx, in.UserID, in.ProductID, in.ProductTypeID, qty, pt.Quantity)
	if err != nil {
		return CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCartItemResponse(item, p.Name, pt), nil
}

// UpdateQuantity は数量変更。0以下は削除扱い。上限は在庫。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cartItemID uuid.UUID, in UpdateCartItemInput) (UpdateCartItemOutput, error) {
	if cartItemID == uuid.Nil {
		return UpdateCartItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return UpdateCartItemOutput{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return UpdateCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//0以下は「消したい」という意図
	if in.Quantity <= 0 {
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && err != repo.ErrNotFound {
			return UpdateCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return UpdateCartItemOutput{Deleted: true}, nil
	}

	p, pt, herr := u.lineDetails(ctx, item)
	if herr != nil {
		return UpdateCartItemOutput{}, herr
	}

	qty := in.Quantity
	if qty > pt.Quantity {
		qty = pt.Quantity
	}

	//在庫0までクランプされたら行ごと消す
	if qty <= 0 {
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && err != repo.ErrNotFound {
			return UpdateCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return UpdateCartItemOutput{Deleted: true}, nil
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, qty); err != nil {
		if err == repo.ErrNotFound {
			return UpdateCartItemOutput{}, NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return UpdateCartItemOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Quantity = qty
	resp := toCartItemResponse(item, p.Name, pt)
	return UpdateCartItemOutput{Item: &resp}, nil
}

// Remove は明細削除。
func (u *CartUsecase) Remove(ctx context.Context, cartItemID uuid.UUID) error {
	if cartItemID == uuid.Nil {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.cartItemRepo.DeleteByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SaveForLater はアクティブ明細を「あとで買う」へ移す。
// 既に同じラインが保存済みならそちらへ加算して元の行を消す。
func (u *CartUsecase) SaveForLater(ctx context.Context, cartItemID uuid.UUID) (CartItemResponse, error) {
	return u.moveLine(ctx, cartItemID, false, true, "cart item not found")
}

// MoveToCart は「あとで買う」をアクティブへ戻す。SaveForLaterと対称。
func (u *CartUsecase) MoveToCart(ctx context.Context, cartItemID uuid.UUID) (CartItemResponse, error) {
	return u.moveLine(ctx, cartItemID, true, false, "cannot find saved item to move back to cart")
}

// moveLine は fromSaved → toSaved の移動。
// 同一ラインが移動先にあればクランプして合算し、元の行を削除する。
// 複数行を触るのでトランザクションで行う。
func (u *CartUsecase) moveLine(ctx context.Context, cartItemID uuid.UUID, fromSaved bool, toSaved bool, notFoundMsg string) (CartItemResponse, error) {
	if cartItemID == uuid.Nil {
		return CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var result model.CartItem

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if err == repo.ErrNotFound || (err == nil && item.IsSaved != fromSaved) {
			return NewHTTPError(http.StatusNotFound, notFoundMsg)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//移動先に同一ラインがあるか
		twin, err := r.CartItems().FindLine(ctx, item.UserID, item.ProductID, item.ProductTypeID, toSaved)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//無ければフラグを反転するだけ（idは変わらない）
		if err == repo.ErrNotFound {
			if err := r.CartItems().SetSaved(ctx, item.ID, toSaved); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			item.IsSaved = toSaved
			result = item
			return nil
		}

		//あれば合算してクランプ（typeが消えていたら在庫0扱い）
		var stock int64 = 0
		pt, err := r.ProductTypes().FindByProductAndID(ctx, item.ProductID, item.ProductTypeID)
		if err == nil {
			stock = pt.Quantity
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		merged := twin.Quantity + item.Quantity
		if merged > stock {
			merged = stock
		}

		//元の行は消す
		if err := r.CartItems().DeleteByID(ctx, item.ID); err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//数量0になったラインは残さない
		if merged <= 0 {
			if err := r.CartItems().DeleteByID(ctx, twin.ID); err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			twin.Quantity = 0
			result = twin
			return nil
		}

		if err := r.CartItems().UpdateQuantity(ctx, twin.ID, merged); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		twin.Quantity = merged
		result = twin
		return nil
	})

	if err != nil {
		return CartItemResponse{}, err
	}

	resp, rerr := u.itemResponse(ctx, result)
	if rerr != nil {
		//商品やtypeが消えていても移動自体は成功している
		return toCartItemResponse(result, "", model.ProductType{}), nil
	}
	return resp, nil
}

// ListActive はアクティブなカートを返す。
func (u *CartUsecase) ListActive(ctx context.Context, userID uuid.UUID) ([]CartItemResponse, error) {
	return u.list(ctx, userID, false)
}

// ListSaved は「あとで買う」一覧を返す。
func (u *CartUsecase) ListSaved(ctx context.Context, userID uuid.UUID) ([]CartItemResponse, error) {
	return u.list(ctx, userID, true)
}

// ClearActive は注文後のカート掃除。空でも成功する。
func (u *CartUsecase) ClearActive(ctx context.Context, userID uuid.UUID) (ClearCartOutput, error) {
	if userID == uuid.Nil {
		return ClearCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	n, err := u.cartItemRepo.DeleteActiveByUser(ctx, userID)
	if err != nil {
		return ClearCartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ClearCartOutput{Deleted: n}, nil
}

func (u *CartUsecase) list(ctx context.Context, userID uuid.UUID, saved bool) ([]CartItemResponse, error) {
	if userID == uuid.Nil {
		return []CartItemResponse{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	items, err := u.cartItemRepo.ListByUser(ctx, userID, saved)
	if err != nil {
		return []CartItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		r, err := u.itemResponse(ctx, it)
		if err != nil {
			//商品やtypeが消えた明細は一覧から落とす
			continue
		}
		resp = append(resp, r)
	}

	return resp, nil
}

// 明細に商品名・type・現在価格を付けて返す。
func (u *CartUsecase) itemResponse(ctx context.Context, item model.CartItem) (CartItemResponse, error) {
	p, pt, herr := u.lineDetails(ctx, item)
	if herr != nil {
		return CartItemResponse{}, herr
	}
	return toCartItemResponse(item, p.Name, pt), nil
}

func (u *CartUsecase) lineDetails(ctx context.Context, item model.CartItem) (model.Product, model.ProductType, error) {
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return model.Product{}, model.ProductType{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, model.ProductType{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pt, err := u.typeRepo.FindByProductAndID(ctx, item.ProductID, item.ProductTypeID)
	if err == repo.ErrNotFound {
		return model.Product{}, model.ProductType{}, NewHTTPError(http.StatusNotFound, "product type not found")
	}
	if err != nil {
		return model.Product{}, model.ProductType{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, pt, nil
}

func toCartItemResponse(item model.CartItem, productName string, pt model.ProductType) CartItemResponse {
	return CartItemResponse{
		ID:            item.ID,
		ProductID:     item.ProductID,
		ProductTypeID: item.ProductTypeID,
		ProductName:   productName,
		Type:          pt.Type,
		Price:         pt.Price,
		Quantity:      item.Quantity,
		IsSaved:       item.IsSaved,
	}
}
