package port

import (
	"context"

	"github.com/campusmart/marketplace/internal/core/domain"
)

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	Category domain.Category
}

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type ProductRepository interface {
	// GetProduct returns domain.ErrDataNotFound when no product has the id.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

type OrderRepository interface {
	// CreateOrder appends the order with all of its items or nothing at all.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)
	// ListOrders returns every order, newest first.
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// Repository is the full storage surface a backend provides.
type Repository interface {
	ProductRepository
	OrderRepository
	UserRepository
}
