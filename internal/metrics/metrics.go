package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors used across the service.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	OrdersCreated   prometheus.Counter
}

// New constructs the collectors and registers them with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "streeteats",
			Name:      "request_latency_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streeteats",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "streeteats",
			Name:      "orders_created_total",
			Help:      "Orders created",
		}),
	}

	reg.MustRegister(m.RequestDuration, m.RequestTotal, m.OrdersCreated)
	return m
}

// Middleware records request counts and latencies per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
				status := strconv.Itoa(c.Response().Status)
				m.RequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(v)
			}))
			err := next(c)
			timer.ObserveDuration()

			status := strconv.Itoa(c.Response().Status)
			m.RequestTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			return err
		}
	}
}
