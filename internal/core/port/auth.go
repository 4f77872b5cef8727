package port

import "github.com/campusmart/marketplace/internal/core/domain"

type TokenPayload struct {
	UserID string
	Role   domain.UserType
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(user *domain.User) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
