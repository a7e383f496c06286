package store

import (
	"sync"

	"shop_client/internal/domain"
)

// Store is the shared application state: the order history, the product
// catalog and the current cart. It is the single writer for all three;
// consumers read copies and never see a partial update. All mutation goes
// through Apply.
type Store struct {
	mu        sync.RWMutex
	orders    []domain.Order
	products  []domain.Product
	cart      map[string]domain.CartItem
	cartOrder []string
	listeners []func()
}

func NewStore() *Store {
	return &Store{cart: make(map[string]domain.CartItem)}
}

// Event is the closed set of state transitions the store understands.
// Unknown events leave the state unchanged.
type Event interface {
	isStoreEvent()
}

// OrdersReplaced swaps the whole order collection for a freshly fetched one.
type OrdersReplaced struct {
	Orders []domain.Order
}

// OrderAdded appends one newly placed order and clears the cart that
// produced it.
type OrderAdded struct {
	Order domain.Order
}

// ProductsReplaced swaps the whole product catalog.
type ProductsReplaced struct {
	Products []domain.Product
}

// ProductAdded appends one newly created product.
type ProductAdded struct {
	Product domain.Product
}

// ProductUpdated replaces the catalog entry with the same ID in place.
type ProductUpdated struct {
	Product domain.Product
}

// CartItemAdded adds quantity units of a product to the cart, merging with
// an existing line for the same product.
type CartItemAdded struct {
	Product  domain.Product
	Quantity int
}

// CartItemRemoved decrements one unit of a product from the cart, dropping
// the line when it reaches zero.
type CartItemRemoved struct {
	ProductID string
}

func (OrdersReplaced) isStoreEvent()   {}
func (OrderAdded) isStoreEvent()       {}
func (ProductsReplaced) isStoreEvent() {}
func (ProductAdded) isStoreEvent()     {}
func (ProductUpdated) isStoreEvent()   {}
func (CartItemAdded) isStoreEvent()    {}
func (CartItemRemoved) isStoreEvent()  {}

// Apply performs one state transition and notifies listeners. Listeners are
// called after the write lock is released.
func (s *Store) Apply(ev Event) {
	s.mu.Lock()
	s.apply(ev)
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) apply(ev Event) {
	switch e := ev.(type) {
	case OrdersReplaced:
		s.orders = append([]domain.Order(nil), e.Orders...)
	case OrderAdded:
		s.orders = append(s.orders, e.Order)
		s.cart = make(map[string]domain.CartItem)
		s.cartOrder = nil
	case ProductsReplaced:
		s.products = append([]domain.Product(nil), e.Products...)
	case ProductAdded:
		s.products = append(s.products, e.Product)
	case ProductUpdated:
		for i := range s.products {
			if s.products[i].ID == e.Product.ID {
				s.products[i] = e.Product
				return
			}
		}
	case CartItemAdded:
		if e.Quantity < 1 {
			return
		}
		item, ok := s.cart[e.Product.ID]
		if !ok {
			item = domain.CartItem{
				ProductID:    e.Product.ID,
				ProductTitle: e.Product.Title,
				Price:        e.Product.Price,
			}
			s.cartOrder = append(s.cartOrder, e.Product.ID)
		}
		item.Quantity += e.Quantity
		s.cart[e.Product.ID] = item
	case CartItemRemoved:
		item, ok := s.cart[e.ProductID]
		if !ok {
			return
		}
		item.Quantity--
		if item.Quantity <= 0 {
			delete(s.cart, e.ProductID)
			for i, id := range s.cartOrder {
				if id == e.ProductID {
					s.cartOrder = append(s.cartOrder[:i], s.cartOrder[i+1:]...)
					break
				}
			}
			return
		}
		s.cart[e.ProductID] = item
	}
}

// AddListener registers a callback fired after every applied event.
func (s *Store) AddListener(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Orders returns a copy of the order history.
func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...)
}

// Products returns a copy of the product catalog.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// Product looks up one catalog entry by ID.
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// CartItems returns the cart lines in the order products were first added.
func (s *Store) CartItems() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.CartItem, 0, len(s.cartOrder))
	for _, id := range s.cartOrder {
		items = append(items, s.cart[id])
	}
	return items
}

// CartTotal returns the sum of the cart line subtotals.
func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.cart {
		total += item.Subtotal()
	}
	return total
}
