package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	partnerapp "github.com/erp/backoffice/internal/application/partner"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// CounterpartyService looks up customers and suppliers.
type CounterpartyService interface {
	List(ctx context.Context, q shared.ListQuery, role string) (shared.PageResult[partnerapp.CounterpartyResponse], error)
}

// CounterpartyHandler serves the counterparty lookup used by document forms.
type CounterpartyHandler struct {
	BaseHandler
	counterparties CounterpartyService
}

// NewCounterpartyHandler creates a new CounterpartyHandler
func NewCounterpartyHandler(counterparties CounterpartyService) *CounterpartyHandler {
	return &CounterpartyHandler{counterparties: counterparties}
}

// RegisterRoutes mounts /counterparties.
func (h *CounterpartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/counterparties", h.List)
}

// List handles GET /counterparties?role=customer|supplier
func (h *CounterpartyHandler) List(c *gin.Context) {
	var req dto.CounterpartyListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	page, err := h.counterparties.List(c.Request.Context(), req.Query(), req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessWithPage(c, page)
}
