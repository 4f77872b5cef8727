package port

import (
	"context"

	"github.com/campusmart/marketplace/internal/core/domain"
)

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, email string, password string) (string, error)

	ListProducts(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)

	PlaceOrder(ctx context.Context, buyerID string, items []domain.ItemRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, buyerID string, orderID string) (*domain.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error)

	EnsureAdmin(ctx context.Context, email string, password string) (*domain.User, error)
	ListAllOrders(ctx context.Context) ([]*domain.Order, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
