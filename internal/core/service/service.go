package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/campusmart/marketplace/internal/core/utils"
	"github.com/campusmart/marketplace/internal/core/validation"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/campusmart/marketplace/internal/core/service")

type Service struct {
	products     port.ProductRepository
	orders       port.OrderRepository
	users        port.UserRepository
	tokenService port.TokenService
	metrics      port.OrderMetrics
	logger       *zap.Logger
}

func NewService(
	products port.ProductRepository,
	orders port.OrderRepository,
	users port.UserRepository,
	tokenService port.TokenService,
	metrics port.OrderMetrics,
	logger *zap.Logger,
) (*Service, error) {
	if products == nil || orders == nil || users == nil {
		return nil, errors.New("service: repositories are required")
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products:     products,
		orders:       orders,
		users:        users,
		tokenService: tokenService,
		metrics:      metrics,
		logger:       logger,
	}, nil
}

var signupSchema = validation.Schema{
	"name":     "required,max=100",
	"email":    "required,email",
	"password": "required,min=6,max=72",
	"type":     "required,oneof=Student Society",
}

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err := signupSchema.Validate(map[string]any{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
		"type":     string(user.Type),
	})
	if err != nil {
		return nil, err
	}

	exUser, err := s.users.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return nil, domain.ErrInternal
	}

	newUser, err := s.users.CreateUser(ctx, &domain.User{
		ID:        uuid.NewString(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  hashed,
		Type:      user.Type,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, email string, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		s.logger.Error("Get user", zap.Error(err))
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

type nopMetrics struct{}

func (nopMetrics) OrderPlaced(int, decimal.Decimal) {}
func (nopMetrics) OrderRejected(string)             {}
