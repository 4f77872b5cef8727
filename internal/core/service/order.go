package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	rejectInvalidInput      = "invalid_input"
	rejectProductNotFound   = "product_not_found"
	rejectInsufficientStock = "insufficient_stock"
	rejectStoreUnavailable  = "store_unavailable"
)

// PlaceOrder validates the cart against current stock, prices it and appends
// a Pending order. Stock is checked but not reserved: two concurrent calls
// may both accept the last unit of a product.
func (s *Service) PlaceOrder(ctx context.Context, buyerID string, items []domain.ItemRequest) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "PlaceOrder", trace.WithAttributes(
		attribute.String("buyer.id", buyerID),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	order, reason, err := s.placeOrder(ctx, buyerID, items)
	if err != nil {
		s.metrics.OrderRejected(reason)
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return nil, err
	}

	s.metrics.OrderPlaced(len(order.Items), order.TotalAmount)
	span.SetAttributes(attribute.String("order.id", order.ID))
	return order, nil
}

func (s *Service) placeOrder(ctx context.Context, buyerID string, items []domain.ItemRequest) (*domain.Order, string, error) {
	err := checkOrderRequest(buyerID, items)
	if err != nil {
		return nil, rejectInvalidInput, err
	}

	total := decimal.Zero
	lines := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return nil, rejectProductNotFound, domain.NewItemError(item.ProductID, domain.ErrProductNotFound)
			}
			s.logger.Error("Get product", zap.String("product", item.ProductID), zap.Error(err))
			return nil, rejectStoreUnavailable, domain.ErrStoreUnavailable
		}

		if product.Quantity < item.Quantity {
			return nil, rejectInsufficientStock, domain.NewItemError(item.ProductID, domain.ErrInsufficientStock)
		}

		total, err = addLine(total, product.Price, item.Quantity)
		if err != nil {
			return nil, rejectInvalidInput, domain.NewItemError(item.ProductID,
				fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		}

		lines = append(lines, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	if total.Cmp(domain.MaxOrderTotal) > 0 {
		return nil, rejectInvalidInput, fmt.Errorf("%w: order total exceeds %s", domain.ErrInvalidInput, domain.MaxOrderTotal)
	}

	// nothing is written once the caller has given up
	if ctx.Err() != nil {
		s.logger.Debug("Order abandoned before persist", zap.Error(ctx.Err()))
		return nil, rejectStoreUnavailable, domain.ErrStoreUnavailable
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		BuyerID:     buyerID,
		Items:       lines,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	newOrder, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.String("buyer", buyerID), zap.Error(err))
		return nil, rejectStoreUnavailable, domain.ErrStoreUnavailable
	}

	return newOrder, "", nil
}

func checkOrderRequest(buyerID string, items []domain.ItemRequest) error {
	if strings.TrimSpace(buyerID) == "" || strings.ContainsAny(buyerID, " \t\r\n") {
		return fmt.Errorf("%w: malformed buyer identity", domain.ErrInvalidInput)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Errorf("%w: item %d has no product", domain.ErrInvalidInput, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

func addLine(total decimal.Decimal, price decimal.Decimal, quantity int) (decimal.Decimal, error) {
	qty, err := decimal.New(int64(quantity), 0)
	if err != nil {
		return decimal.Decimal{}, err
	}
	line, err := price.Mul(qty)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return total.Add(line)
}

func (s *Service) GetOrder(ctx context.Context, buyerID string, orderID string) (*domain.Order, error) {
	order, err := s.orders.ReadOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read order", zap.String("order", orderID), zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	if order.BuyerID != buyerID {
		return nil, domain.ErrDataNotFound
	}
	return order, nil
}

func (s *Service) ListOrdersByBuyer(ctx context.Context, buyerID string) ([]*domain.Order, error) {
	list, err := s.orders.ListOrdersByBuyer(ctx, buyerID)
	if err != nil {
		s.logger.Error("Get orders for buyer", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return list, nil
}
