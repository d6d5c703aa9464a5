package obs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-sim/internal/obs"
)

func TestHTTPMetricsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewHTTPMetrics("toko", []float64{1, 10}, registry)
	handler := obs.HTTPObs{Metrics: metrics}.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	req = req.WithContext(obs.WithRoutePattern(req.Context(), "/health/ready"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ReqTotal.WithLabelValues(http.MethodGet, "/health/ready", "204")))
	assert.NotZero(t, testutil.CollectAndCount(metrics.ReqDur))
	assert.Zero(t, testutil.ToFloat64(metrics.InFlight))
}

func TestNewHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := obs.NewHTTPMetrics("toko", nil, registry)
	second := obs.NewHTTPMetrics("toko", nil, registry)

	first.ReqTotal.WithLabelValues(http.MethodGet, "/x", "200").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.ReqTotal.WithLabelValues(http.MethodGet, "/x", "200")))
}

func TestShopMetricsObserve(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := obs.NewShopMetrics("toko", registry)

	metrics.Observe("reserve", "ok")
	metrics.Observe("reserve", "ok")
	metrics.Observe("reserve", "INSUFFICIENT_STOCK")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("reserve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("reserve", "INSUFFICIENT_STOCK")))

	var nilMetrics *obs.ShopMetrics
	assert.NotPanics(t, func() { nilMetrics.Observe("reserve", "ok") })
}

func TestRoutePatternMiddlewareFeedsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := obs.NewLoggerTo(&buf, "json", "info")

	router := chi.NewRouter()
	router.Use(obs.RequestLogger{Logger: logger}.Middleware)
	router.With(obs.RoutePatternMiddleware).Get("/sessions/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["message"])
	assert.Equal(t, "/sessions/abc", entry["path"])
	assert.Equal(t, "/sessions/{sessionID}", entry["route"])
	assert.Equal(t, "abc", entry["session_id"])
	assert.EqualValues(t, 200, entry["status"])
	assert.EqualValues(t, 2, entry["bytes"])
}

func TestInitTracerDisabledIsNoop(t *testing.T) {
	shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestParseBucketsCSV(t *testing.T) {
	assert.Equal(t, []float64{5, 50}, obs.ParseBucketsCSV("5, bad, -1, 50"))
	assert.Nil(t, obs.ParseBucketsCSV(" "))
}

func TestSessionIDContext(t *testing.T) {
	ctx := obs.WithSessionID(context.Background(), "s-1")
	assert.Equal(t, "s-1", obs.SessionIDFromContext(ctx))
	assert.Empty(t, obs.SessionIDFromContext(context.Background()))
}
