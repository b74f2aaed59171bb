package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shlankd/developEcommerce/internal/domain/model"
	repo "github.com/shlankd/developEcommerce/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemOutput struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type OrderOutput struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	AddressID    int64             `json:"address_id"`
	TotalPayment float64           `json:"total_payment"`
	CreatedAt    time.Time         `json:"created_at"`
	Items        []OrderItemOutput `json:"items"`
}

// CreateOrder はユーザーのカートを注文に変換する。
// 明細ごとに「注文明細の作成→在庫減算→カート明細の削除」を確定していき、
// 途中で在庫が足りなければ、そこまでの明細を巻き戻してから失敗を返す。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, addressID int64) (OrderOutput, error) {
	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細取得（ID昇順＝消費順）
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCartCheckout
		}

		//address_idの存在確認＋所有チェック
		addr, err := r.Addresses().FindByID(ctx, addressID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAddressNotFound
		}
		if err != nil {
			return err
		}
		if addr.UserID != userID {
			return ErrAddressNotMatchToUser
		}

		//先に注文の箱を作る（明細の親になる）。合計はまだ0
		now := time.Now()
		order, err := r.Orders().Create(ctx, model.Order{
			UserID:       userID,
			AddressID:    addressID,
			TotalPayment: 0,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		lines := make([]model.OrderItem, 0, len(cartItems))
		var total float64

		for _, ci := range cartItems {
			//価格のためにその時点の商品を読む
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				if cerr := cancelOrderWithin(ctx, r, order.ID); cerr != nil {
					return cerr
				}
				return ErrProductNotFound
			}
			if err != nil {
				return err
			}

			//在庫チェック＋減算は1つの操作。足りなければここまでの明細を巻き戻す
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				if cerr := cancelOrderWithin(ctx, r, order.ID); cerr != nil {
					return cerr
				}
				return ErrProductOutOfStock
			}

			//注文明細を作成
			line, err := r.OrderItems().Create(ctx, model.OrderItem{
				OrderID:   order.ID,
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
			lines = append(lines, line)

			//合計はその時点の価格で積む（後から再計算しない）
			total += p.Price * float64(ci.Quantity)

			//消費済みのカート明細を消す
			if err := r.CartItems().DeleteByID(ctx, ci.ID); err != nil {
				return err
			}
		}

		//合計を確定
		if err := r.Orders().UpdateTotalPayment(ctx, order.ID, total); err != nil {
			return err
		}
		order.TotalPayment = total

		out = toOrderOutput(order, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder は注文を取り消す。
// 明細ごとに在庫を戻して明細を消し、最後に注文本体を消す。
// 2回呼んでも安全（明細が無ければ何もせず、注文のDeleteは対象が無くても成功する）。
func (u *OrderUsecase) CancelOrder(ctx context.Context, order model.Order) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return cancelOrderWithin(ctx, r, order.ID)
	})
}

// CancelOrderByID はHTTP用の入口。所有チェックをしてからキャンセルする。
func (u *OrderUsecase) CancelOrderByID(ctx context.Context, userID int64, orderID int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return ErrUserNotMatched
		}
		return cancelOrderWithin(ctx, r, orderID)
	})
}

// ListOrdersOfUser はユーザーの注文一覧（明細つき）。
func (u *OrderUsecase) ListOrdersOfUser(ctx context.Context, userID int64) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return err
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return err
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

// cancelOrderWithin は注文の巻き戻し本体。
// 在庫戻しは商品ごとの加算なので、明細の処理順が変わっても最終の在庫は同じ。
func cancelOrderWithin(ctx context.Context, r repo.TxRepos, orderID int64) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range items {
		//在庫を戻す
		if err := r.Inventory().IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		//明細を消す
		if err := r.OrderItems().DeleteByID(ctx, item.ID); err != nil {
			return err
		}
	}

	//注文本体を消す（既に無ければ何もしない）
	return r.Orders().Delete(ctx, orderID)
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:           o.ID,
		UserID:       o.UserID,
		AddressID:    o.AddressID,
		TotalPayment: o.TotalPayment,
		CreatedAt:    o.CreatedAt,
		Items:        outItems,
	}
}
