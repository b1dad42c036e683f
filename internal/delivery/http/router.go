package http

import (
	"net/http"
	"time"

	"github.com/cardealer-labs/dealerships-api/internal/database/usecase"
	"github.com/cardealer-labs/dealerships-api/internal/logging"
	api_middleware "github.com/cardealer-labs/dealerships-api/internal/middleware"
	"github.com/cardealer-labs/dealerships-api/internal/monitoring"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
	// RequestTimeout bounds each request's context; zero disables it.
	RequestTimeout time.Duration
	// MaxBodyBytes caps request bodies; zero disables the limit.
	MaxBodyBytes int64
}

// NewRouter builds the middleware stack and mounts every route of the API.
func NewRouter(reviewUseCase *usecase.ReviewUseCase, dealershipUseCase *usecase.DealershipUseCase, opts RouterOptions) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.RequestLogger())
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	if opts.MaxBodyBytes > 0 {
		bodyLimit := &api_middleware.BodyLimitMiddleware{MaxBytes: opts.MaxBodyBytes}
		router.Use(bodyLimit.LimitRequestBody)
	}
	if opts.Metrics != nil {
		metricsMiddleware := &api_middleware.MetricsMiddleware{Metrics: opts.Metrics}
		router.Use(metricsMiddleware.RequestMetrics)
	}

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}

	NewHomeHandler(router)
	NewReviewHandler(router, reviewUseCase, opts.Metrics)
	NewDealershipHandler(router, dealershipUseCase)

	return router
}
