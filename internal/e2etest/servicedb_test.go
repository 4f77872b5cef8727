package e2etest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/campusmart/marketplace/internal/adapter/auth"
	"github.com/campusmart/marketplace/internal/adapter/config"
	"github.com/campusmart/marketplace/internal/adapter/logger"
	"github.com/campusmart/marketplace/internal/adapter/storage"
	"github.com/campusmart/marketplace/internal/adapter/storage/repository"
	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/campusmart/marketplace/internal/core/service"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getDeps(t *testing.T) (*repository.Repository, port.TokenService) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	err = db.RunMigrations()
	require.NoError(t, err)

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)

	ts, err := auth.New(nil)
	require.NoError(t, err)

	return repo, ts
}

func newService(t *testing.T) (*service.Service, *repository.Repository) {
	t.Helper()

	repo, ts := getDeps(t)
	l, err := logger.NewLogger(&config.App{LogLevel: "debug", Mode: config.AppModeDevelop})
	require.NoError(t, err)

	s, err := service.NewService(repo, repo, repo, ts, nil, l)
	require.NoError(t, err)
	return s, repo
}

func seedProduct(t *testing.T, repo *repository.Repository, price string, quantity int) *domain.Product {
	t.Helper()

	p, err := repo.CreateProduct(context.Background(), &domain.Product{
		ID:         uuid.NewString(),
		Name:       "Seeded " + price,
		Price:      decimal.MustParse(price),
		Category:   domain.CategoryBooks,
		SellerType: domain.SellerTypeStudent,
		Quantity:   quantity,
		SellerID:   "seller",
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return p
}

func TestServiceDB_UserRegisterLogin(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	email := uuid.NewString() + "@uni.edu"
	user, err := s.RegisterUser(ctx, &domain.User{
		Name:     "Tester",
		Email:    email,
		Password: "secret1",
		Type:     domain.UserTypeStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)

	_, err = s.RegisterUser(ctx, &domain.User{
		Name:     "Tester",
		Email:    email,
		Password: "secret1",
		Type:     domain.UserTypeStudent,
	})
	assert.Equal(t, domain.ErrConflictingData, err)

	token, err := s.LoginUser(ctx, email, "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = s.LoginUser(ctx, email, "hacker")
	assert.Equal(t, domain.ErrInvalidCredentials, err)
}

func TestServiceDB_PlaceOrder(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()

	textbook := seedProduct(t, repo, "45.99", 1)
	lamp := seedProduct(t, repo, "18.75", 2)
	hoodie := seedProduct(t, repo, "25.50", 5)
	buyer := uuid.NewString()

	order, err := s.PlaceOrder(ctx, buyer, []domain.ItemRequest{
		{ProductID: textbook.ID, Quantity: 1},
		{ProductID: lamp.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "64.74", order.TotalAmount.String())

	stored, err := s.GetOrder(ctx, buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.True(t, order.TotalAmount.Equal(stored.TotalAmount))
	require.Len(t, stored.Items, 2)
	assert.Equal(t, textbook.ID, stored.Items[0].ProductID)
	assert.Equal(t, lamp.ID, stored.Items[1].ProductID)
	assert.True(t, lamp.Price.Equal(stored.Items[1].UnitPrice))

	_, err = s.PlaceOrder(ctx, buyer, []domain.ItemRequest{{ProductID: hoodie.ID, Quantity: 10}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = s.PlaceOrder(ctx, buyer, []domain.ItemRequest{
		{ProductID: hoodie.ID, Quantity: 1},
		{ProductID: uuid.NewString(), Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	list, err := s.ListOrdersByBuyer(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)

	_, err = s.GetOrder(ctx, uuid.NewString(), order.ID)
	assert.Equal(t, domain.ErrDataNotFound, err)
}

func TestServiceDB_ListProducts(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()

	p := seedProduct(t, repo, "9.99", 3)

	list, err := s.ListProducts(ctx, domain.CategoryBooks)
	require.NoError(t, err)

	found := false
	for _, item := range list {
		assert.Equal(t, domain.CategoryBooks, item.Category)
		if item.ID == p.ID {
			found = true
		}
	}
	assert.True(t, found)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	_, err = s.GetProduct(ctx, uuid.NewString())
	assert.Equal(t, domain.ErrProductNotFound, err)
}

func TestServiceDB_Admin(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()

	email := "admin-" + uuid.NewString() + "@uni.edu"
	admin, err := s.EnsureAdmin(ctx, email, "adminpass")
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeAdmin, admin.Type)

	again, err := s.EnsureAdmin(ctx, email, "adminpass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	found := false
	for _, u := range users {
		if u.ID == admin.ID {
			found = true
		}
	}
	assert.True(t, found)

	lamp := seedProduct(t, repo, "18.75", 2)
	order, err := s.PlaceOrder(ctx, uuid.NewString(), []domain.ItemRequest{{ProductID: lamp.ID, Quantity: 1}})
	require.NoError(t, err)

	orders, err := s.ListAllOrders(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, orders)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestServiceDB_StorableLimits(t *testing.T) {
	s, repo := newService(t)
	ctx := context.Background()

	gold := seedProduct(t, repo, "9999999999.99", 1000)

	_, err := s.PlaceOrder(ctx, uuid.NewString(), []domain.ItemRequest{{ProductID: gold.ID, Quantity: 200}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
