package repository

import (
	"context"
	"errors"

	"github.com/shlankd/developEcommerce/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// unique制約違反（メールや商品名の重複）
var ErrConflict = errors.New("conflict")

// 一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
	Q     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	//商品名はunique
	FindByName(ctx context.Context, name string) (model.Product, error)

	//IDが0なら作成、あれば更新
	Save(ctx context.Context, p model.Product) (model.Product, error)
	Delete(ctx context.Context, productID int64) error
}
