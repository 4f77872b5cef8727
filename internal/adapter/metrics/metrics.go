package metrics

import (
	"net/http"
	"strconv"

	"github.com/govalues/decimal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "campusmart"

// Metrics holds the order and HTTP collectors of one registry.
type Metrics struct {
	ordersPlaced   prometheus.Counter
	ordersRejected *prometheus.CounterVec
	orderAmount    prometheus.Histogram
	orderItems     prometheus.Histogram

	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec

	registry *prometheus.Registry
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Orders accepted and persisted.",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Order placements refused, by reason.",
		}, []string{"reason"}),
		orderAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "total_amount",
			Help:      "Total amount of placed orders.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		orderItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "line_items",
			Help:      "Number of line items per placed order.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		registry: registry,
	}

	registry.MustRegister(m.ordersPlaced, m.ordersRejected, m.orderAmount, m.orderItems, m.Requests, m.LatencyMS)
	return m
}

func (m *Metrics) OrderPlaced(items int, total decimal.Decimal) {
	m.ordersPlaced.Inc()
	m.orderItems.Observe(float64(items))
	if f, ok := total.Float64(); ok {
		m.orderAmount.Observe(f)
	}
}

func (m *Metrics) OrderRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(handler string, status int, latencyMS float64) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(latencyMS)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
