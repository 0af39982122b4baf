package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
)

// EngineConfig describes the global middleware chain and the probe routes.
type EngineConfig struct {
	Logger          *zap.Logger
	ServiceName     string
	Tracing         bool
	Meter           *telemetry.MeterProvider
	CORS            middleware.CORSConfig
	Security        middleware.SecurityConfig
	MaxBodySize     int64
	RateLimiter     *middleware.RateLimiter
	DefaultLanguage language.Tag
	TrustedProxies  []string

	// System serves /health and /ready; Gatherer serves /metrics. Both are
	// optional.
	System   *handler.SystemHandler
	Gatherer prometheus.Gatherer
}

// NewEngine builds a gin engine with the global middleware chain:
// request id, recovery, access log, tracing, metrics, security headers,
// CORS, body limit, rate limit and language negotiation.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	zl := cfg.Logger
	if zl == nil {
		zl = zap.NewNop()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(zl))
	engine.Use(logger.GinMiddleware(zl))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.Tracing,
	})...)
	engine.Use(middleware.HTTPMetrics(cfg.Meter))
	engine.Use(middleware.Secure(cfg.Security))
	engine.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	engine.Use(middleware.Language(cfg.DefaultLanguage))

	engine.NoRoute(middleware.NoRoute())
	engine.NoMethod(middleware.NoMethod())

	if cfg.System != nil {
		engine.GET("/health", cfg.System.Health)
		engine.GET("/ready", cfg.System.Ready)
	}
	if cfg.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	return engine, nil
}
