package http

import (
	"errors"
	"net/http"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/validation"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

// errorStatuses is checked in order, so the first sentinel an error wraps
// decides its status.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrProductNotFound, http.StatusNotFound},
	{domain.ErrInsufficientStock, http.StatusBadRequest},
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
	{domain.ErrForbidden, http.StatusForbidden},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationType, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrTokenCreation, http.StatusInternalServerError},

	{domain.ErrBadRequest, http.StatusBadRequest},
	{domain.ErrDataNotFound, http.StatusNotFound},
	{domain.ErrConflictingData, http.StatusConflict},
	{domain.ErrInternal, http.StatusInternalServerError},
}

// jsonDecimal writes a decimal as a JSON number keeping its scale.
type jsonDecimal decimal.Decimal

func (j jsonDecimal) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(j).String()), nil
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     string               `json:"error"`
	Retryable bool                 `json:"retryable"`
	Product   string               `json:"product,omitempty"`
	Fields    []fieldErrorResponse `json:"fields,omitempty"`
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// classify finds the sentinel err stands for and its status code.
func classify(err error) (error, int) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.err, e.status
		}
	}
	return domain.ErrInternal, http.StatusInternalServerError
}

func newErrorResponse(err error) (int, errorResponse) {
	sentinel, status := classify(err)
	resp := errorResponse{
		Error:     sentinel.Error(),
		Retryable: domain.IsRetryable(err),
	}

	var itemErr *domain.ItemError
	if errors.As(err, &itemErr) {
		resp.Product = itemErr.ProductID
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for _, f := range fieldErrs {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: f.Field, Message: f.Message})
		}
	}
	return status, resp
}

// handleValidationError sends an error response for a request body that could not be parsed
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	h.logger.Debug("bad request", zap.Error(err))
	ctx.JSON(http.StatusBadRequest, errorResponse{Error: domain.ErrBadRequest.Error()})
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	status, resp := newErrorResponse(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("aborting request", zap.Error(err))
	}
	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(status, resp)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	status, resp := newErrorResponse(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(status, resp)
}

// handleSuccessWithStatus sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
