package repository

import (
	"context"

	"github.com/shlankd/developEcommerce/internal/domain/model"
)

// 住所(Address)を保存・取得する窓口
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (model.Address, error)

	//ユーザーが持つ住所一覧を返す
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)

	//住所IDから住所を1件取得（UserIDも載る）
	FindByID(ctx context.Context, addressID int64) (model.Address, error)

	Delete(ctx context.Context, addressID int64) error
}
