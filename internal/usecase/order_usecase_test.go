package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/shlankd/developEcommerce/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderUsecaseForTest(s *memStore) *OrderUsecase {
	return NewOrderUsecase(&memTxManager{s: s})
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	s := newMemStore()
	s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	_, err := uc.CreateOrder(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrEmptyCartCheckout)
	assert.Equal(t, 0, s.orderCount())
}

func TestCreateOrder_AddressNotFound(t *testing.T) {
	s := newMemStore()
	p := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1})
	uc := newOrderUsecaseForTest(s)

	_, err := uc.CreateOrder(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAddressNotFound)
	assert.Equal(t, 0, s.orderCount())
	assert.Equal(t, int64(5), s.productStock(p.ID))
}

func TestCreateOrder_AddressOfOtherUser(t *testing.T) {
	s := newMemStore()
	p := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1})
	addr := s.seedAddress(model.Address{UserID: 2, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	_, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	assert.ErrorIs(t, err, ErrAddressNotMatchToUser)
	assert.Equal(t, 0, s.orderCount())
}

func TestCreateOrder_Success(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	note := s.seedProduct(model.Product{Name: "note", Price: 5.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 2})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: note.ID, Quantity: 3})
	addr := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	out, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	require.NoError(t, err)

	//合計は 2*10.0 + 3*5.0
	assert.Equal(t, 35.0, out.TotalPayment)
	assert.Equal(t, int64(1), out.UserID)
	assert.Equal(t, addr.ID, out.AddressID)
	require.Len(t, out.Items, 2)
	assert.Equal(t, pen.ID, out.Items[0].ProductID)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, note.ID, out.Items[1].ProductID)
	assert.Equal(t, int64(3), out.Items[1].Quantity)

	//在庫が減り、カートは空になる
	assert.Equal(t, int64(3), s.productStock(pen.ID))
	assert.Equal(t, int64(2), s.productStock(note.ID))
	assert.Empty(t, s.cartItemsOf(1))

	//合計は保存側にも反映される
	orders, err := uc.ListOrdersOfUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 35.0, orders[0].TotalPayment)
}

func TestCreateOrder_ShortfallRollsBack(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	note := s.seedProduct(model.Product{Name: "note", Price: 5.0, Stock: 1})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 2})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: note.ID, Quantity: 3})
	addr := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	_, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	//先行明細で減った在庫は戻り、注文も明細も残らない
	assert.Equal(t, int64(5), s.productStock(pen.ID))
	assert.Equal(t, int64(1), s.productStock(note.ID))
	assert.Equal(t, 0, s.orderCount())
	assert.Equal(t, 0, s.orderItemCount())
}

func TestCreateOrder_ProductGoneRollsBack(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 1})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: 999, Quantity: 1})
	addr := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	_, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Equal(t, int64(5), s.productStock(pen.ID))
	assert.Equal(t, 0, s.orderCount())
	assert.Equal(t, 0, s.orderItemCount())
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 2})
	addr := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	out, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), s.productStock(pen.ID))

	err = uc.CancelOrderByID(context.Background(), 1, out.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(5), s.productStock(pen.ID))
	assert.Equal(t, 0, s.orderCount())
	assert.Equal(t, 0, s.orderItemCount())
}

func TestCancelOrder_Idempotent(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 2})
	addr := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	out, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	require.NoError(t, err)

	order := model.Order{ID: out.ID, UserID: out.UserID}

	require.NoError(t, uc.CancelOrder(context.Background(), order))
	assert.Equal(t, int64(5), s.productStock(pen.ID))

	//2回目も成功し、在庫を二重に戻さない
	require.NoError(t, uc.CancelOrder(context.Background(), order))
	assert.Equal(t, int64(5), s.productStock(pen.ID))
}

func TestCancelOrderByID_NotFound(t *testing.T) {
	s := newMemStore()
	uc := newOrderUsecaseForTest(s)

	err := uc.CancelOrderByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelOrderByID_OtherUser(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 5})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 1})
	addr := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	uc := newOrderUsecaseForTest(s)

	out, err := uc.CreateOrder(context.Background(), 1, addr.ID)
	require.NoError(t, err)

	err = uc.CancelOrderByID(context.Background(), 2, out.ID)
	assert.ErrorIs(t, err, ErrUserNotMatched)

	//注文は残る
	assert.Equal(t, 1, s.orderCount())
}

// 残り1個を2ユーザーが同時に確定しようとしても、売れるのは1人だけ。
func TestCreateOrder_ConcurrentLastUnit(t *testing.T) {
	s := newMemStore()
	pen := s.seedProduct(model.Product{Name: "pen", Price: 10.0, Stock: 1})
	s.seedCartItem(model.CartItem{UserID: 1, ProductID: pen.ID, Quantity: 1})
	s.seedCartItem(model.CartItem{UserID: 2, ProductID: pen.ID, Quantity: 1})
	addr1 := s.seedAddress(model.Address{UserID: 1, AddressLine: "1-2-3", City: "Tokyo", Country: "JP", Postcode: "100-0001"})
	addr2 := s.seedAddress(model.Address{UserID: 2, AddressLine: "4-5-6", City: "Osaka", Country: "JP", Postcode: "530-0001"})
	uc := newOrderUsecaseForTest(s)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.CreateOrder(context.Background(), 1, addr1.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.CreateOrder(context.Background(), 2, addr2.ID)
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrProductOutOfStock)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(0), s.productStock(pen.ID))
	assert.Equal(t, 1, s.orderCount())
	assert.Equal(t, 1, s.orderItemCount())
}

func TestListOrdersOfUser_Empty(t *testing.T) {
	s := newMemStore()
	uc := newOrderUsecaseForTest(s)

	outs, err := uc.ListOrdersOfUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, outs)
}
