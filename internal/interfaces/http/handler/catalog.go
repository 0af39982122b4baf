package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/erp/backoffice/internal/application/catalog"
	identityapp "github.com/erp/backoffice/internal/application/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// CatalogService is the surface of the reference list services.
type CatalogService[In, Out any] interface {
	RecordService[In, Out]
	List(ctx context.Context, q shared.ListQuery) (shared.PageResult[Out], error)
}

// CatalogHandler serves one reference list such as currencies or products.
type CatalogHandler[In, Out any] struct {
	recordHandler[In, Out]
	items CatalogService[In, Out]
	path  string
}

func newCatalogHandler[In, Out any](path string, svc CatalogService[In, Out]) *CatalogHandler[In, Out] {
	return &CatalogHandler[In, Out]{
		recordHandler: recordHandler[In, Out]{records: svc},
		items:         svc,
		path:          path,
	}
}

// NewCurrencyHandler serves /currencies.
func NewCurrencyHandler(svc CatalogService[catalogapp.CurrencyInput, catalogapp.CurrencyResponse]) *CatalogHandler[catalogapp.CurrencyInput, catalogapp.CurrencyResponse] {
	return newCatalogHandler("/currencies", svc)
}

// NewProductHandler serves /products.
func NewProductHandler(svc CatalogService[catalogapp.ProductInput, catalogapp.ProductResponse]) *CatalogHandler[catalogapp.ProductInput, catalogapp.ProductResponse] {
	return newCatalogHandler("/products", svc)
}

// NewEmployeeHandler serves /employees.
func NewEmployeeHandler(svc CatalogService[identityapp.EmployeeInput, identityapp.EmployeeResponse]) *CatalogHandler[identityapp.EmployeeInput, identityapp.EmployeeResponse] {
	return newCatalogHandler("/employees", svc)
}

// RegisterRoutes mounts the list routes.
func (h *CatalogHandler[In, Out]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(h.path)
	g.GET("", h.List)
	h.registerRecordRoutes(g)
}

// List handles GET on the collection
func (h *CatalogHandler[In, Out]) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	page, err := h.items.List(c.Request.Context(), req.Query())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessWithPage(c, page)
}
