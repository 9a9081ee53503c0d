package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveBackend(http.MethodGet, "categorias", "ok", 10*time.Millisecond)

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "odyssey_backend_requests_total")
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusTeapot, rr.Code)

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := metricsRR.Body.String()
	assert.Contains(t, body, `odyssey_http_requests_total{code="418",route="/test"} 1`)
	assert.Contains(t, body, `odyssey_http_request_duration_seconds_bucket{route="/test"`)
}

func TestObserveBackendCountsOutcomes(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveBackend(http.MethodDelete, "categorias", "rejected", time.Millisecond)
	metrics.ObserveBackend(http.MethodDelete, "categorias", "rejected", time.Millisecond)
	metrics.ObserveBackend(http.MethodGet, "mesas", "network", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.backendTotal.WithLabelValues(http.MethodDelete, "categorias", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.backendTotal.WithLabelValues(http.MethodGet, "mesas", "network")))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.backendDuration))
}

func TestNilMetricsAreInert(t *testing.T) {
	var metrics *Metrics
	metrics.ObserveBackend(http.MethodGet, "roles", "ok", time.Millisecond)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, metrics.Middleware(next))

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Service Unavailable"))
}
