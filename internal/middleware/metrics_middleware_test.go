package api_middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardealer-labs/dealerships-api/internal/monitoring"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(m *monitoring.Metrics) *chi.Mux {
	mw := &MetricsMiddleware{Metrics: m}
	router := chi.NewRouter()
	router.Use(mw.RequestMetrics)
	router.Get("/fetchDealers/{state}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	router.Post("/insert_review", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return router
}

func TestRequestMetrics_LabelsByRoutePattern(t *testing.T) {
	m := monitoring.NewMetrics()
	router := newTestRouter(m)

	for _, state := range []string{"Texas", "Ohio", "Kansas"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fetchDealers/"+state, nil))
		require.Equal(t, http.StatusOK, resp.Code)
	}

	count := testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/fetchDealers/{state}", "200"))
	assert.Equal(t, float64(3), count)
}

func TestRequestMetrics_RecordsErrorStatus(t *testing.T) {
	m := monitoring.NewMetrics()
	router := newTestRouter(m)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/insert_review", nil))

	count := testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues(http.MethodPost, "/insert_review", "500"))
	assert.Equal(t, float64(1), count)
}

func TestRequestMetrics_ExposedThroughHandler(t *testing.T) {
	m := monitoring.NewMetrics()
	router := newTestRouter(m)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fetchDealers/Texas", nil))
	m.RecordSeed("reviews", 4)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `http_requests_total{method="GET",route="/fetchDealers/{state}",status="200"} 1`))
	assert.True(t, strings.Contains(text, `seeded_documents_total{collection="reviews"} 4`))
}
