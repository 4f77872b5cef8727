package port

import "github.com/govalues/decimal"

//go:generate mockgen -source=metrics.go -destination=mock/metrics.go -package=mock

// OrderMetrics receives the outcome of every order placement attempt.
type OrderMetrics interface {
	OrderPlaced(items int, total decimal.Decimal)
	OrderRejected(reason string)
}
