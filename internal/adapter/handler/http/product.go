package http

import (
	"net/http"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	SellerType  string  `json:"sellerType"`
	Quantity    int     `json:"quantity"`
}

type productResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       jsonDecimal `json:"price"`
	ImageURL    string      `json:"imageUrl"`
	Category    string      `json:"category"`
	SellerType  string      `json:"sellerType"`
	Quantity    int         `json:"quantity"`
	SellerID    string      `json:"sellerId"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func newProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       jsonDecimal(p.Price),
		ImageURL:    p.ImageURL,
		Category:    string(p.Category),
		SellerType:  string(p.SellerType),
		Quantity:    p.Quantity,
		SellerID:    p.SellerID,
		CreatedAt:   p.CreatedAt,
	}
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	list, err := ph.service.ListProducts(ctx.Request.Context(), domain.Category(ctx.Query("category")))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	result := make([]productResponse, 0, len(list))
	for _, p := range list {
		result = append(result, newProductResponse(p))
	}

	ph.handleSuccess(ctx, result)
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	product, err := ph.service.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, newProductResponse(product))
}

func (ph *ProductHandler) AddProduct(ctx *gin.Context) {
	req := productRequest{}
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	price, err := decimal.NewFromFloat64(req.Price)
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, err := ph.service.AddProduct(ctx.Request.Context(), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price.Round(2),
		ImageURL:    req.ImageURL,
		Category:    domain.Category(req.Category),
		SellerType:  domain.SellerType(req.SellerType),
		Quantity:    req.Quantity,
		SellerID:    getAuthPayload(ctx).UserID,
	})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newProductResponse(product), http.StatusCreated)
}
