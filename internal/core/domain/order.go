package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// MaxOrderTotal is the largest total an order can be stored with.
var MaxOrderTotal = decimal.MustParse("999999999999.99")

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderItem is one line of an order. UnitPrice is the product price at the
// moment the order was placed.
type OrderItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// ItemRequest is a cart line submitted by a buyer.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

type Order struct {
	ID          string
	BuyerID     string
	Items       []OrderItem
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
}
