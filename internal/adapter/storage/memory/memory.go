// Package memory keeps products, orders and users in process memory. It is
// meant for tests and single-instance demo runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	orders   map[string]*domain.Order
	// order ids in append order
	orderLog []string
	users    map[string]*domain.User
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]*domain.Product),
		orders:   make(map[string]*domain.Order),
		users:    make(map[string]*domain.User),
	}
}

var _ port.Repository = (*Store)(nil)

func (s *Store) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return cloneProduct(p), nil
}

func (s *Store) ListProducts(ctx context.Context, filter port.ProductFilter) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := cloneProduct(product)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; ok {
		return nil, domain.ErrConflictingData
	}
	s.products[p.ID] = p
	return cloneProduct(p), nil
}

// SetProduct inserts or replaces a product as is.
func (s *Store) SetProduct(product *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = cloneProduct(product)
}

func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	o := cloneOrder(order)
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// checked under the lock so a cancelled caller never commits
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.orders[o.ID]; ok {
		return nil, domain.ErrConflictingData
	}
	s.orders[o.ID] = o
	s.orderLog = append(s.orderLog, o.ID)
	return cloneOrder(o), nil
}

func (s *Store) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return cloneOrder(o), nil
}

func (s *Store) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*domain.Order, 0)
	for i := len(s.orderLog) - 1; i >= 0; i-- {
		o := s.orders[s.orderLog[i]]
		if o.BuyerID == buyerID {
			list = append(list, cloneOrder(o))
		}
	}
	return list, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*domain.Order, 0, len(s.orderLog))
	for i := len(s.orderLog) - 1; i >= 0; i-- {
		list = append(list, cloneOrder(s.orders[s.orderLog[i]]))
	}
	return list, nil
}

// OrderCount reports how many orders have been appended.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orderLog)
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := *user
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return nil, domain.ErrConflictingData
	}
	s.users[u.Email] = &u
	result := u
	return &result, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	result := *u
	return &result, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Email < list[j].Email
	})
	return list, nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}
