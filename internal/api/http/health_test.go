package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, h *HealthHandler, method, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp HealthResponse
	if rr.Code == http.StatusOK || rr.Code == http.StatusServiceUnavailable {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestHealthCheck(t *testing.T) {
	rr, resp := serveHealth(t, NewHealthHandler("test-service", "1.0.0", nil, nil), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test-service", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, "memory", resp.Drafts)
}

func TestHealthCheck_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	h := NewHealthHandler("test-service", "1.0.0", nil, client)

	rr, resp := serveHealth(t, h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "up", resp.Drafts)

	mr.Close()
	rr, resp = serveHealth(t, h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "down", resp.Drafts)
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr, _ := serveHealth(t, NewHealthHandler("test-service", "1.0.0", nil, nil), http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
