package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// Pinger is a dependency the gateway needs to serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler answers liveness and readiness probes
type SystemHandler struct {
	version string
	checks  map[string]Pinger
	timeout time.Duration
	now     func() time.Time
}

// NewSystemHandler creates a SystemHandler probing checks on /ready.
func NewSystemHandler(version string, checks map[string]Pinger) *SystemHandler {
	return &SystemHandler{
		version: version,
		checks:  checks,
		timeout: 3 * time.Second,
		now:     time.Now,
	}
}

// Health handles GET /health. It only reports that the process is up.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"time":    h.now().Format(time.RFC3339),
	})
}

// Ready handles GET /ready, pinging every dependency in parallel.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]string, len(h.checks))
		healthy = true
	)
	var g errgroup.Group
	for name, check := range h.checks {
		g.Go(func() error {
			status := "ok"
			if err := check.Ping(ctx); err != nil {
				logger.GetGinLogger(c).Warn("Readiness check failed", zap.String("check", name), zap.Error(err))
				status = "error"
			}
			mu.Lock()
			defer mu.Unlock()
			results[name] = status
			if status != "ok" {
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()

	status, code := "ready", http.StatusOK
	if !healthy {
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status": status,
		"checks": results,
		"time":   h.now().Format(time.RFC3339),
	})
}
