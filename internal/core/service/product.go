package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/campusmart/marketplace/internal/core/validation"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

var productSchema = validation.Schema{
	"name":        "required,max=200",
	"description": "required,max=5000",
	"price":       fmt.Sprintf("gt=0,lte=%.2f", domain.MaxProductPrice),
	"quantity":    fmt.Sprintf("gt=0,lte=%d", domain.MaxProductQuantity),
	"imageUrl":    "required,url",
	"category":    "required,oneof=Books Electronics Clothing Furniture Other",
	"sellerType":  "required,oneof=Student Society",
}

func (s *Service) ListProducts(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	if category != "" && !category.Valid() {
		return nil, domain.ErrInvalidInput
	}

	list, err := s.products.ListProducts(ctx, port.ProductFilter{Category: category})
	if err != nil {
		s.logger.Error("List products", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return list, nil
}

func (s *Service) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Get product", zap.String("product", productID), zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return product, nil
}

// AddProduct stores a new listing for product.SellerID.
func (s *Service) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.SellerID) == "" {
		return nil, domain.ErrInvalidInput
	}

	product.Name = strings.TrimSpace(product.Name)
	product.Description = strings.TrimSpace(product.Description)
	product.ImageURL = strings.TrimSpace(product.ImageURL)

	err := productSchema.Validate(map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       priceValue(product.Price),
		"quantity":    product.Quantity,
		"imageUrl":    product.ImageURL,
		"category":    string(product.Category),
		"sellerType":  string(product.SellerType),
	})
	if err != nil {
		return nil, err
	}

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()

	newProduct, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Create product", zap.Error(err))
		return nil, domain.ErrStoreUnavailable
	}
	return newProduct, nil
}

// priceValue turns a price into a number the schema can bound. A price too
// large for float64 maps to +Inf and fails the upper bound.
func priceValue(price decimal.Decimal) float64 {
	f, ok := price.Float64()
	if !ok {
		return math.Inf(1)
	}
	return f
}
