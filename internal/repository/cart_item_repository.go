package repository

import (
	"context"

	"github.com/shlankd/developEcommerce/internal/domain/model"
)

type CartItemRepository interface {
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	//ユーザーのカートをID昇順で返す（注文処理はこの順で明細を消費する）
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)

	//同一商品のマージ先を探す
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error)

	//IDが0なら作成、あれば更新
	Save(ctx context.Context, item model.CartItem) (model.CartItem, error)
	DeleteByID(ctx context.Context, cartItemID int64) error
}
