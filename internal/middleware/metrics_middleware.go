package api_middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cardealer-labs/dealerships-api/internal/monitoring"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type MetricsMiddleware struct {
	Metrics *monitoring.Metrics
}

// RequestMetrics records a request count and latency for every request, labelled
// by the matched route pattern so path parameters don't explode the label set.
func (m *MetricsMiddleware) RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.Metrics.HttpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.Metrics.HttpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
