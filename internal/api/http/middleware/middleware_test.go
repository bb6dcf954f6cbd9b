package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GoSim-25-26J-441/pms-backend/internal/logging"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	var seenID string
	var scoped *zap.Logger
	router := gin.New()
	router.Use(RequestIDMiddleware(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		seenID = GetRequestID(c.Request.Context())
		scoped = logging.FromContext(c.Request.Context(), nil)
		c.Status(http.StatusNoContent)
	})

	t.Run("generates an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(rr, req)

		rid := rr.Header().Get(RequestIDHeader)
		assert.Len(t, rid, 36)
		assert.Equal(t, rid, seenID)
		require.NotNil(t, scoped)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", seenID)

		entries := logs.FilterField(zap.String("request_id", "abc-123")).All()
		require.Len(t, entries, 1)
		assert.Equal(t, "request", entries[0].Message)
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(0.001, 2))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/x", nil)
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(0, 0))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/x", nil)
		router.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
}
