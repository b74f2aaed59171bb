package usecase

import "errors"

// usecaseが返す条件はここで区別する。
// HTTPステータスへの変換はhandler側の仕事。
var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//409 メール重複
	ErrEmailTaken = errors.New("email already exists")
	//500
	ErrInternal = errors.New("internal error")

	//商品が存在しない
	ErrProductNotFound = errors.New("product not found")
	//商品名が既に使われている
	ErrProductNameTaken = errors.New("product name already exists")
	//在庫が0
	ErrProductOutOfStock = errors.New("product out of stock")
	//要求数量（既存明細との合算含む）が在庫を超える
	ErrQuantityNotAvailable = errors.New("quantity of selected item not available")

	//カート明細が存在しない
	ErrCartItemNotFound = errors.New("cart item not found")
	//明細のIDとパスのIDが食い違う
	ErrCartItemIDMismatch = errors.New("selected cart item not match with cart item id")
	//他人の明細・注文・住所を触ろうとした
	ErrUserNotMatched = errors.New("user not matched")

	//空カートでチェックアウト
	ErrEmptyCartCheckout = errors.New("checkout with empty cart")
	//住所が存在しない
	ErrAddressNotFound = errors.New("address not found")
	//住所が他人のもの
	ErrAddressNotMatchToUser = errors.New("address not match to user")
	//注文が存在しない
	ErrOrderNotFound = errors.New("order not found")
)
