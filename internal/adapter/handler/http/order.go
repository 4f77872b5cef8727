package http

import (
	"net/http"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type orderRequest struct {
	Items []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	Product   string      `json:"product"`
	Quantity  int         `json:"quantity"`
	UnitPrice jsonDecimal `json:"unitPrice"`
}

type OrderResp struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	Items       []orderItemResponse `json:"items"`
	TotalAmount jsonDecimal         `json:"totalAmount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func newOrderResp(o *domain.Order) OrderResp {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, orderItemResponse{
			Product:   i.ProductID,
			Quantity:  i.Quantity,
			UnitPrice: jsonDecimal(i.UnitPrice),
		})
	}
	return OrderResp{
		ID:          o.ID,
		UserID:      o.BuyerID,
		Items:       items,
		TotalAmount: jsonDecimal(o.TotalAmount),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := orderRequest{}
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	buyerID := getAuthPayload(ctx).UserID

	items := make([]domain.ItemRequest, 0, len(req.Items))
	for _, i := range req.Items {
		items = append(items, domain.ItemRequest{ProductID: i.Product, Quantity: i.Quantity})
	}

	order, err := oh.service.PlaceOrder(ctx.Request.Context(), buyerID, items)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResp(order), http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	buyerID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrder(ctx.Request.Context(), buyerID, ctx.Param("id"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	buyerID := getAuthPayload(ctx).UserID

	list, err := oh.service.ListOrdersByBuyer(ctx.Request.Context(), buyerID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}
