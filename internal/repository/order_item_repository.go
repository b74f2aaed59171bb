package repository

import (
	"context"

	"github.com/shlankd/developEcommerce/internal/domain/model"
)

type OrderItemRepository interface {
	//注文処理は明細を1件ずつ確定するのでCreateは単発
	Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//対象が無くてもエラーにしない
	DeleteByID(ctx context.Context, orderItemID int64) error
}
