package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderUsecase はカートの明細を不変な注文レコードへ確定する。
// 価格はクライアントの値を信用せず、確定時にProductTypeから取り直す。
type OrderUsecase struct {
	tx      repo.TransactionManager
	taxRate decimal.Decimal
}

func NewOrderUsecase(tx repo.TransactionManager, taxRate decimal.Decimal) *OrderUsecase {
	return &OrderUsecase{tx: tx, taxRate: taxRate}
}

type OrderLineInput struct {
	ProductID     uuid.UUID
	ProductTypeID int64
	Quantity      int64
}

type PlaceOrderInput struct {
	UserID        uuid.UUID
	Name          string
	PhoneNumber   string
	StreetAddress string
	City          string
	State         string
	ZipCode       string
	Products      []OrderLineInput
}

type OrderProductOutput struct {
	ProductID          uuid.UUID       `json:"product_id"`
	ProductTypeID      int64           `json:"product_type_id"`
	Type               string          `json:"type"`
	PriceAtTimeOfOrder decimal.Decimal `json:"price_at_time_of_order"`
	Quantity           int64           `json:"quantity"`
}

type OrderOutput struct {
	OrderID       uuid.UUID            `json:"order_id"`
	UserID        uuid.UUID            `json:"user_id"`
	Name          string               `json:"name"`
	PhoneNumber   string               `json:"phone_number"`
	StreetAddress string               `json:"street_address"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	ZipCode       string               `json:"zip_code"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	Status        string               `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	Products      []OrderProductOutput `json:"products"`
}

// PlaceOrder は注文確定。
// 明細ごとに今の価格を取り直してスナップショットし、
// 注文・明細の作成とカート掃除まで1トランザクションで行う。
// 途中でproductTypeが見つからなければ全部ロールバック。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if in.UserID == uuid.Nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.PhoneNumber) == "" ||
		strings.TrimSpace(in.StreetAddress) == "" ||
		strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.State) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "missing shipping fields")
	}
	if !validator.IsValidZipCode(in.ZipCode) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid zip_code")
	}
	if len(in.Products) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, line := range in.Products {
		if line.ProductID == uuid.Nil || line.ProductTypeID <= 0 || line.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order line")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		subtotal := decimal.Zero
		snapshots := make([]model.OrderProduct, 0, len(in.Products))

		for _, line := range in.Products {
			//確定時の正の価格を取り直す
			pt, err := r.ProductTypes().FindByProductAndID(ctx, line.ProductID, line.ProductTypeID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product type not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			subtotal = subtotal.Add(pt.Price.Mul(decimal.NewFromInt(line.Quantity)))

			//typeのラベルも固定で持つ（後からtypeが消えても表示できるように）
			snapshots = append(snapshots, model.OrderProduct{
				ProductID:          line.ProductID,
				ProductTypeID:      line.ProductTypeID,
				Quantity:           line.Quantity,
				PriceAtTimeOfOrder: pt.Price,
				Type:               pt.Type,
			})
		}

		//税は小数2桁で四捨五入
		tax := subtotal.Mul(u.taxRate).Round(2)
		total := subtotal.Add(tax)

		order, err := r.Orders().Create(ctx, model.Order{
			UserID:        in.UserID,
			Name:          in.Name,
			PhoneNumber:   in.PhoneNumber,
			StreetAddress: in.StreetAddress,
			City:          in.City,
			State:         in.State,
			ZipCode:       in.ZipCode,
			Subtotal:      subtotal,
			Tax:           tax,
			TotalPrice:    total,
			Status:        model.OrderStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderProducts().CreateBulk(ctx, order.ID, snapshots); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//アクティブカートの掃除も同じトランザクションで行う
		if _, err := r.CartItems().DeleteActiveByUser(ctx, in.UserID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, snapshots)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders はユーザーの注文一覧（明細付き）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]OrderOutput, error) {
	if userID == uuid.Nil {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid user_id")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderProducts().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// GetOrderDetail は注文1件（明細付き）。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (OrderOutput, error) {
	if orderID == uuid.Nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderProducts().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// UpdateStatus はステータス遷移のみ。他のフィールドは変更できない。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (OrderOutput, error) {
	if orderID == uuid.Nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s := model.OrderStatus(status)
	if s != model.OrderStatusCompleted && s != model.OrderStatusCancelled {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//確定済みの注文は二度と動かさない
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "order already "+string(o.Status))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, s); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderProducts().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = s
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderProduct) OrderOutput {
	outItems := make([]OrderProductOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderProductOutput{
			ProductID:          it.ProductID,
			ProductTypeID:      it.ProductTypeID,
			Type:               it.Type,
			PriceAtTimeOfOrder: it.PriceAtTimeOfOrder,
			Quantity:           it.Quantity,
		})
	}

	return OrderOutput{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Name:          o.Name,
		PhoneNumber:   o.PhoneNumber,
		StreetAddress: o.StreetAddress,
		City:          o.City,
		State:         o.State,
		ZipCode:       o.ZipCode,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		TotalPrice:    o.TotalPrice,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Products:      outItems,
	}
}
