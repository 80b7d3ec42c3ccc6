package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/supportly/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGinMiddlewareAssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observeGlobal(t)

	var seen string
	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/brands", func(c *gin.Context) {
		seen = obscontext.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/brands", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http_request", entry.Message)
	assert.Equal(t, seen, entry.ContextMap()["request_id"])
	assert.Equal(t, "/brands", entry.ContextMap()["route"])
}

func TestGinMiddlewareKeepsCallerRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observeGlobal(t)

	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{}))
	r.GET("/brands", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/brands", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}

func TestGinMiddlewareClassifiesErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logs := observeGlobal(t)

	r := gin.New()
	r.Use(GinMiddleware(MiddlewareConfig{
		ErrorClassifier: func(error) (string, string) { return "conflict", "conversation_busy" },
	}))
	r.POST("/chat", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusConflict)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/chat", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "conversation_busy", entry.ContextMap()["error_code"])
}

func TestAccessLevel(t *testing.T) {
	cases := []struct {
		route   string
		status  int
		errType string
		want    zapcore.Level
	}{
		{"/health", http.StatusOK, "", zapcore.DebugLevel},
		{"/products/search", http.StatusOK, "", zapcore.InfoLevel},
		{"/products/search", http.StatusBadRequest, "validation_error", zapcore.DebugLevel},
		{"/chat", http.StatusTooManyRequests, "rate_limited", zapcore.WarnLevel},
		{"/tools/:name", http.StatusConflict, "", zapcore.InfoLevel},
		{"/chat", http.StatusInternalServerError, "internal_error", zapcore.ErrorLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, accessLevel(tc.route, tc.status, tc.errType), "%s %d", tc.route, tc.status)
	}
}
