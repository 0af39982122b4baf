package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/export"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/infrastructure/logger"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// DefaultExportLimit caps the rows of an order export.
const DefaultExportLimit = 5000

// OrderService is the order surface used by OrderHandler.
type OrderService interface {
	RecordService[tradeapp.OrderInput, tradeapp.OrderResponse]
	List(ctx context.Context, q shared.ListQuery, f tradeapp.OrderFilter) (shared.PageResult[tradeapp.OrderResponse], error)
	Collect(ctx context.Context, q shared.ListQuery, f tradeapp.OrderFilter, max int) ([]trade.Order, bool, error)
	AdvanceStage(ctx context.Context, id string) (*tradeapp.OrderResponse, error)
}

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	recordHandler[tradeapp.OrderInput, tradeapp.OrderResponse]
	orders      OrderService
	exportLimit int
}

// NewOrderHandler creates a new OrderHandler. exportLimit <= 0 selects
// DefaultExportLimit.
func NewOrderHandler(orders OrderService, exportLimit int) *OrderHandler {
	if exportLimit <= 0 {
		exportLimit = DefaultExportLimit
	}
	return &OrderHandler{
		recordHandler: recordHandler[tradeapp.OrderInput, tradeapp.OrderResponse]{records: orders},
		orders:        orders,
		exportLimit:   exportLimit,
	}
}

// RegisterRoutes mounts /orders.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	g.GET("", h.List)
	g.GET("/export", h.Export)
	g.POST("/:id/advance", h.Advance)
	h.registerRecordRoutes(g)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.OrderListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	page, err := h.orders.List(c.Request.Context(), req.Query(), orderFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessWithPage(c, page)
}

// Export handles GET /orders/export, answering the filtered list as a workbook.
func (h *OrderHandler) Export(c *gin.Context) {
	var req dto.OrderListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	ctx := c.Request.Context()
	orders, truncated, err := h.orders.Collect(ctx, req.Query(), orderFilter(req), h.exportLimit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	data, err := export.OrdersWorkbook(orders, i18n.FromContext(ctx))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	logger.L(ctx).Info("orders exported", zap.Int("rows", len(orders)), zap.Bool("truncated", truncated))

	if truncated {
		c.Header("X-Export-Truncated", "true")
	}
	name := export.OrdersFileName(time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

// Advance handles POST /orders/:id/advance
func (h *OrderHandler) Advance(c *gin.Context) {
	out, err := h.orders.AdvanceStage(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func orderFilter(req dto.OrderListRequest) tradeapp.OrderFilter {
	from, to := req.Bounds()
	return tradeapp.OrderFilter{
		CustomerID:   req.CustomerID,
		OrderStateID: req.StateID,
		DateFrom:     from,
		DateTo:       to,
	}
}
