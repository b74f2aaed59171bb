package usecase

import (
	"context"
	"errors"

	"github.com/shlankd/developEcommerce/internal/domain/model"
	repo "github.com/shlankd/developEcommerce/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// AddItemToCart はカートに追加（同一商品は数量加算）。
// 在庫チェックは呼び出し開始時点のstockに対して行い、保存より前に済ませる。
// ここでの読みは目安で、確定時の減算はcreateOrder側の条件付きUPDATEが守る。
func (u *CartUsecase) AddItemToCart(ctx context.Context, userID int64, productID int64, quantity int64) (model.CartItem, error) {
	if quantity < 1 {
		return model.CartItem{}, ErrValidation
	}

	// 商品チェック
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrProductNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	// 在庫切れ
	if p.Stock <= 0 {
		return model.CartItem{}, ErrProductOutOfStock
	}

	// 同一商品の既存明細を探す（あればマージ先）
	itemToSave := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}

	existing, err := u.cartItemRepo.FindByUserAndProduct(ctx, userID, productID)
	if err == nil {
		//既存ありなら合算して同じ明細IDで保存
		itemToSave.ID = existing.ID
		itemToSave.Quantity = existing.Quantity + quantity
		itemToSave.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, err
	}

	// 合算後の数量が在庫を超えるなら保存しない
	if itemToSave.Quantity > p.Stock {
		return model.CartItem{}, ErrQuantityNotAvailable
	}

	return u.cartItemRepo.Save(ctx, itemToSave)
}

// EditCartItemQuantity は数量変更（ID整合＋所有チェック＋在庫チェック）。
// 編集ペイロードは数量しか運ばないので、user/productは元の明細から引き継ぐ。
func (u *CartUsecase) EditCartItemQuantity(ctx context.Context, userID int64, itemToEdit model.CartItem, cartItemID int64) (model.CartItem, error) {
	// パスのIDとbodyのIDが食い違う要求は弾く
	if itemToEdit.ID != cartItemID {
		return model.CartItem{}, ErrCartItemIDMismatch
	}
	if itemToEdit.Quantity < 1 {
		return model.CartItem{}, ErrValidation
	}

	found, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrCartItemNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	//他人の明細は編集不可
	if found.UserID != userID {
		return model.CartItem{}, ErrUserNotMatched
	}

	//商品の在庫チェック
	p, err := u.productRepo.FindByID(ctx, found.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrProductNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	if itemToEdit.Quantity > p.Stock {
		return model.CartItem{}, ErrQuantityNotAvailable
	}

	//元のuser/productと再関連付けして保存
	itemToEdit.UserID = found.UserID
	itemToEdit.ProductID = found.ProductID
	itemToEdit.CreatedAt = found.CreatedAt

	return u.cartItemRepo.Save(ctx, itemToEdit)
}

// DeleteCartItem は明細削除。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) error {
	found, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCartItemNotFound
	}
	if err != nil {
		return err
	}

	if found.UserID != userID {
		return ErrUserNotMatched
	}

	return u.cartItemRepo.DeleteByID(ctx, cartItemID)
}

// ClearCart は渡された明細をまとめて削除する。
// 決済側の失敗で注文を破棄するときに使う（カートに戻すのではなく消す）。
func (u *CartUsecase) ClearCart(ctx context.Context, items []model.CartItem) error {
	for _, item := range items {
		if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

// ListCartOfUser はユーザーのカート明細一覧。
func (u *CartUsecase) ListCartOfUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return u.cartItemRepo.ListByUserID(ctx, userID)
}
