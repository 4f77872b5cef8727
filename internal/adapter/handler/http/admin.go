package http

import (
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Handler
	service port.Service
}

func NewAdminHandler(service port.Service, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

// userResponse never carries the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Type:      string(u.Type),
		CreatedAt: u.CreatedAt,
	}
}

func (ah *AdminHandler) ListOrders(ctx *gin.Context) {
	list, err := ah.service.ListAllOrders(ctx.Request.Context())
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	ah.handleSuccess(ctx, result)
}

func (ah *AdminHandler) ListUsers(ctx *gin.Context) {
	list, err := ah.service.ListUsers(ctx.Request.Context())
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	result := make([]userResponse, 0, len(list))
	for _, u := range list {
		result = append(result, newUserResponse(u))
	}

	ah.handleSuccess(ctx, result)
}
