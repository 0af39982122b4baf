package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	financeapp "github.com/erp/backoffice/internal/application/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/interfaces/http/dto"
)

// DocumentService is the surface of the payment and invoice services.
type DocumentService[In, Out any] interface {
	RecordService[In, Out]
	List(ctx context.Context, q shared.ListQuery, f financeapp.DocumentFilter) (shared.PageResult[Out], error)
}

// DocumentHandler serves one kind of finance document.
type DocumentHandler[In, Out any] struct {
	recordHandler[In, Out]
	documents DocumentService[In, Out]
	path      string
}

func newDocumentHandler[In, Out any](path string, svc DocumentService[In, Out]) *DocumentHandler[In, Out] {
	return &DocumentHandler[In, Out]{
		recordHandler: recordHandler[In, Out]{records: svc},
		documents:     svc,
		path:          path,
	}
}

// NewCashReceiptHandler serves /cash-receipts.
func NewCashReceiptHandler(svc DocumentService[financeapp.CashReceiptInput, financeapp.CashReceiptResponse]) *DocumentHandler[financeapp.CashReceiptInput, financeapp.CashReceiptResponse] {
	return newDocumentHandler("/cash-receipts", svc)
}

// NewTransferReceiptHandler serves /transfer-receipts.
func NewTransferReceiptHandler(svc DocumentService[financeapp.TransferReceiptInput, financeapp.TransferReceiptResponse]) *DocumentHandler[financeapp.TransferReceiptInput, financeapp.TransferReceiptResponse] {
	return newDocumentHandler("/transfer-receipts", svc)
}

// NewSupplierInvoiceHandler serves /supplier-invoices.
func NewSupplierInvoiceHandler(svc DocumentService[financeapp.SupplierInvoiceInput, financeapp.SupplierInvoiceResponse]) *DocumentHandler[financeapp.SupplierInvoiceInput, financeapp.SupplierInvoiceResponse] {
	return newDocumentHandler("/supplier-invoices", svc)
}

// RegisterRoutes mounts the document routes.
func (h *DocumentHandler[In, Out]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(h.path)
	g.GET("", h.List)
	h.registerRecordRoutes(g)
}

// List handles GET on the collection, filtered by counterparty and period.
func (h *DocumentHandler[In, Out]) List(c *gin.Context) {
	var req dto.DocumentListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	from, to := req.Bounds()
	page, err := h.documents.List(c.Request.Context(), req.Query(), financeapp.DocumentFilter{
		CounterpartyID: req.CounterpartyID,
		DateFrom:       from,
		DateTo:         to,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessWithPage(c, page)
}
