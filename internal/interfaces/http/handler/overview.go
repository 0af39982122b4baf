package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/erp/backoffice/internal/application/report"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// OverviewService builds the dashboard.
type OverviewService interface {
	Dashboard(ctx context.Context, from, to time.Time) (*reportapp.OverviewResponse, error)
}

// OverviewHandler serves the dashboard
type OverviewHandler struct {
	BaseHandler
	overview OverviewService
}

// NewOverviewHandler creates a new OverviewHandler
func NewOverviewHandler(overview OverviewService) *OverviewHandler {
	return &OverviewHandler{overview: overview}
}

// RegisterRoutes mounts /overview.
func (h *OverviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/overview", h.Get)
}

// Get handles GET /overview?from=YYYY-MM-DD&to=YYYY-MM-DD. Both bounds are
// inclusive; omitting both selects the current month.
func (h *OverviewHandler) Get(c *gin.Context) {
	var req dto.OverviewRequest
	if !h.bindQuery(c, &req) {
		return
	}
	out, err := h.overview.Dashboard(c.Request.Context(), req.From, dto.EndOfDay(req.To))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}
