package repository

import (
	"context"

	"github.com/shlankd/developEcommerce/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//合計は明細ループの後に一度だけ確定する
	UpdateTotalPayment(ctx context.Context, orderID int64, total float64) error

	//キャンセルの二重実行を許すため、対象が無くてもエラーにしない
	Delete(ctx context.Context, orderID int64) error
}
