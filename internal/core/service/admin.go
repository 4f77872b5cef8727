package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/utils"
	"github.com/campusmart/marketplace/internal/core/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const adminName = "Administrator"

var adminSchema = validation.Schema{
	"email":    "required,email",
	"password": "required,min=6,max=72",
}

// EnsureAdmin creates the admin account for email unless it already exists.
// An existing non-admin account with that email is a conflict.
func (s *Service) EnsureAdmin(ctx context.Context, email string, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	err := adminSchema.Validate(map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	exUser, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	if exUser != nil {
		if exUser.Type != domain.UserTypeAdmin {
			return nil, domain.ErrConflictingData
		}
		return exUser, nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	admin, err := s.users.CreateUser(ctx, &domain.User{
		ID:        uuid.NewString(),
		Name:      adminName,
		Email:     email,
		Password:  hashed,
		Type:      domain.UserTypeAdmin,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create admin", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}

	s.logger.Info("Admin account created", zap.String("email", email))
	return admin, nil
}

// ListAllOrders returns the orders of every buyer, newest first.
func (s *Service) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	list, err := s.orders.ListOrders(ctx)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return list, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	list, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("List users", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return list, nil
}
