package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idsync/internal/config"
	"idsync/internal/logger"
	"idsync/internal/middleware"
)

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	var ctxID string
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) {
		ctxID, _ = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	headerID := w.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, headerID)
	assert.Equal(t, headerID, ctxID)
}

func TestRequestID_KeepsIncomingValue(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestRequestID_ReplacesOversizedValue(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", 500))
	r.ServeHTTP(w, req)

	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestLogger_WritesRequestRecord(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	r.ServeHTTP(w, req)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "http request", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/test", rec["path"])
	assert.Equal(t, float64(http.StatusUnauthorized), rec["status"])
	assert.Equal(t, "req-1", rec["request_id"])
}

func TestRecovery_RendersEnvelope(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL"`)
	assert.NotContains(t, w.Body.String(), "boom")
	assert.Contains(t, buf.String(), "panic recovered")
}
