package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shlankd/developEcommerce/internal/domain/model"
	repo "github.com/shlankd/developEcommerce/internal/repository"
)

// テスト用のインメモリ実装。
// WithinTxはロールバックしない素通しなので、失敗経路の巻き戻しは
// usecase側の補償処理そのものを検証できる。
type memStore struct {
	mu sync.Mutex

	products   map[int64]model.Product
	cartItems  map[int64]model.CartItem
	orders     map[int64]model.Order
	orderItems map[int64]model.OrderItem
	addresses  map[int64]model.Address
	users      map[int64]*model.User

	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[int64]model.Product{},
		cartItems:  map[int64]model.CartItem{},
		orders:     map[int64]model.Order{},
		orderItems: map[int64]model.OrderItem{},
		addresses:  map[int64]model.Address{},
		users:      map[int64]*model.User{},
	}
}

func (s *memStore) newID() int64 {
	s.nextID++
	return s.nextID
}

// seed系はテスト準備用
func (s *memStore) seedProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.newID()
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) seedCartItem(ci model.CartItem) model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ci.ID == 0 {
		ci.ID = s.newID()
	}
	s.cartItems[ci.ID] = ci
	return ci
}

func (s *memStore) seedAddress(a model.Address) model.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.newID()
	}
	s.addresses[a.ID] = a
	return a
}

func (s *memStore) productStock(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) cartItemsOf(userID int64) []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CartItem
	for _, ci := range s.cartItems {
		if ci.UserID == userID {
			out = append(out, ci)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) orderItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orderItems)
}

// --- ProductRepository ---

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []model.Product
	for _, p := range r.s.products {
		if q.Q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Q)) {
			continue
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (q.Page - 1) * q.Limit
	if start >= len(all) {
		return []model.Product{}, total, nil
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memProductRepo) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) FindByName(ctx context.Context, name string) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r *memProductRepo) Save(ctx context.Context, p model.Product) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.s.newID()
	}
	r.s.products[p.ID] = p
	return p, nil
}

func (r *memProductRepo) Delete(ctx context.Context, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[productID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.products, productID)
	return nil
}

// --- CartItemRepository ---

type memCartItemRepo struct{ s *memStore }

func (r *memCartItemRepo) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ci, ok := r.s.cartItems[cartItemID]
	if !ok {
		return model.CartItem{}, repo.ErrNotFound
	}
	return ci, nil
}

func (r *memCartItemRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	return r.s.cartItemsOf(userID), nil
}

func (r *memCartItemRepo) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ci := range r.s.cartItems {
		if ci.UserID == userID && ci.ProductID == productID {
			return ci, nil
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (r *memCartItemRepo) Save(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == 0 {
		item.ID = r.s.newID()
	}
	r.s.cartItems[item.ID] = item
	return item, nil
}

func (r *memCartItemRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cartItems[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.cartItems, cartItemID)
	return nil
}

// --- OrderRepository ---

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID == 0 {
		order.ID = r.s.newID()
	}
	r.s.orders[order.ID] = order
	return order, nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOrderRepo) UpdateTotalPayment(ctx context.Context, orderID int64, total float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.TotalPayment = total
	r.s.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) Delete(ctx context.Context, orderID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	//対象が無くても成功
	delete(r.s.orders, orderID)
	return nil
}

// --- OrderItemRepository ---

type memOrderItemRepo struct{ s *memStore }

func (r *memOrderItemRepo) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == 0 {
		item.ID = r.s.newID()
	}
	r.s.orderItems[item.ID] = item
	return item, nil
}

func (r *memOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOrderItemRepo) DeleteByID(ctx context.Context, orderItemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	//対象が無くても成功
	delete(r.s.orderItems, orderItemID)
	return nil
}

// --- InventoryRepository ---

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) SetStock(ctx context.Context, productID int64, newStock int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock = newStock
	r.s.products[productID] = p
	return nil
}

// チェックと減算をロック内で行う（本物の条件付きUPDATEに相当）
func (r *memInventoryRepo) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return false, nil
	}
	if p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.s.products[productID] = p
	return true, nil
}

func (r *memInventoryRepo) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock += qty
	r.s.products[productID] = p
	return nil
}

// --- AddressRepository ---

type memAddressRepo struct{ s *memStore }

func (r *memAddressRepo) Create(ctx context.Context, address model.Address) (model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if address.ID == 0 {
		address.ID = r.s.newID()
	}
	r.s.addresses[address.ID] = address
	return address, nil
}

func (r *memAddressRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Address
	for _, a := range r.s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAddressRepo) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.addresses[addressID]
	if !ok {
		return model.Address{}, repo.ErrNotFound
	}
	return a, nil
}

func (r *memAddressRepo) Delete(ctx context.Context, addressID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.addresses[addressID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.addresses, addressID)
	return nil
}

// --- UserRepository ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.s.newID()
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

// --- TransactionManager ---

type memTxRepos struct{ s *memStore }

func (t memTxRepos) Orders() repo.OrderRepository         { return &memOrderRepo{s: t.s} }
func (t memTxRepos) OrderItems() repo.OrderItemRepository { return &memOrderItemRepo{s: t.s} }
func (t memTxRepos) CartItems() repo.CartItemRepository   { return &memCartItemRepo{s: t.s} }
func (t memTxRepos) Products() repo.ProductRepository     { return &memProductRepo{s: t.s} }
func (t memTxRepos) Inventory() repo.InventoryRepository  { return &memInventoryRepo{s: t.s} }
func (t memTxRepos) Addresses() repo.AddressRepository    { return &memAddressRepo{s: t.s} }

type memTxManager struct{ s *memStore }

func (m *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(memTxRepos{s: m.s})
}
