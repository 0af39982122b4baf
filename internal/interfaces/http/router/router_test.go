package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	deny := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
	tag := func(c *gin.Context) {
		c.Header("X-Public", "1")
		c.Next()
	}

	engine := gin.New()
	r := NewRouter(engine, WithMiddleware(deny))
	r.RegisterPublic(RouteRegistrarFunc(func(rg *gin.RouterGroup) {
		rg.POST("/auth/sign-in", func(c *gin.Context) { c.String(http.StatusOK, "token") })
	}), tag)
	r.Register(RouteRegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/orders", func(c *gin.Context) { c.String(http.StatusOK, "orders") })
	}))
	r.Setup()

	t.Run("public route skips protected middleware", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Public"))
	})

	t.Run("protected route requires middleware to pass", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req.Header.Set("Authorization", "Bearer x")
		w = httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "orders", w.Body.String())
		assert.Empty(t, w.Header().Get("X-Public"))
	})
}

type staticPinger struct{ err error }

func (p staticPinger) Ping(context.Context) error { return p.err }

func TestNewEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_requests_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	limiter := middleware.NewRateLimiter(100, time.Minute)
	t.Cleanup(limiter.Close)

	engine, err := NewEngine(EngineConfig{
		Logger:          zaptest.NewLogger(t),
		ServiceName:     "backoffice",
		CORS:            middleware.DefaultCORSConfig(),
		Security:        middleware.DefaultSecurityConfig(),
		MaxBodySize:     1 << 20,
		RateLimiter:     limiter,
		DefaultLanguage: language.English,
		System:          handler.NewSystemHandler("test", map[string]handler.Pinger{"xts": staticPinger{}}),
		Gatherer:        reg,
	})
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("ready", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), "test_requests_total 1"))
	})

	t.Run("unknown route is localized", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeRouteNotFound, resp.Error.Code)
		assert.Equal(t, "Route not found", resp.Error.Message)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestNewEngine_RejectsBadTrustedProxy(t *testing.T) {
	_, err := NewEngine(EngineConfig{TrustedProxies: []string{"not-an-ip"}})

	assert.Error(t, err)
}
