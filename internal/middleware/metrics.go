package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/pitchfund/internal/metrics"
)

// MetricsMiddleware records request counts and latency per route template.
type MetricsMiddleware struct {
	skip map[string]bool
}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{skip: map[string]bool{"/metrics": true}}
}

func (m *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if m.skip[route] {
				return err
			}
			if route == "" {
				route = "unmatched"
			}

			method := c.Request().Method
			status := statusFromError(c, err)

			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
