package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-sim/internal/health"
)

func readyStatus(t *testing.T, h *health.Handler) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	var status map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	return rr.Code, status
}

func TestLive(t *testing.T) {
	handler := &health.Handler{}
	rr := httptest.NewRecorder()
	handler.Live(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestReadyWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	handler := &health.Handler{Probes: map[string]health.Probe{"redis": health.RedisProbe(client)}, Timeout: 50 * time.Millisecond}
	code, status := readyStatus(t, handler)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", status["redis"])
}

func TestReadyWithoutRedis(t *testing.T) {
	handler := &health.Handler{Probes: map[string]health.Probe{"redis": health.RedisProbe(nil)}}
	code, _ := readyStatus(t, handler)
	assert.Equal(t, http.StatusOK, code)
}

func TestReadyFailure(t *testing.T) {
	handler := &health.Handler{Probes: map[string]health.Probe{
		"catalog": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("redis down") },
	}}
	code, status := readyStatus(t, handler)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "redis down", status["redis"])
	assert.Equal(t, "ok", status["catalog"])
}

func TestReadinessAfterShutdown(t *testing.T) {
	handler := &health.Handler{}

	code, _ := readyStatus(t, handler)
	require.Equal(t, http.StatusOK, code)

	handler.SetReady(false)
	code, status := readyStatus(t, handler)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "draining", status["status"])
}
