package finance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// SupplierInvoiceService handles supplier invoice operations
type SupplierInvoiceService struct {
	repo finance.SupplierInvoiceRepository
	now  func() time.Time
}

// NewSupplierInvoiceService creates a new SupplierInvoiceService
func NewSupplierInvoiceService(repo finance.SupplierInvoiceRepository) *SupplierInvoiceService {
	return &SupplierInvoiceService{repo: repo, now: time.Now}
}

// List returns one page of supplier invoices
func (s *SupplierInvoiceService) List(ctx context.Context, q shared.ListQuery, f DocumentFilter) (shared.PageResult[SupplierInvoiceResponse], error) {
	page, err := s.repo.List(ctx, f.apply(q))
	if err != nil {
		return shared.PageResult[SupplierInvoiceResponse]{}, err
	}
	return shared.MapPage(page, ToSupplierInvoiceListResponse), nil
}

// GetByID returns a supplier invoice with its lines
func (s *SupplierInvoiceService) GetByID(ctx context.Context, id string) (*SupplierInvoiceResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierInvoiceResponse(inv), nil
}

// Preview validates the form and returns the invoice that would be sent.
func (s *SupplierInvoiceService) Preview(ctx context.Context, id string, in SupplierInvoiceInput) (*SupplierInvoiceResponse, error) {
	inv, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return ToSupplierInvoiceResponse(inv), nil
}

// Create validates the form and creates the invoice
func (s *SupplierInvoiceService) Create(ctx context.Context, in SupplierInvoiceInput) (*SupplierInvoiceResponse, error) {
	inv, err := s.build(ctx, "", in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("supplier invoice created",
		zap.String("invoice_id", created.ID),
		zap.Int("lines", len(created.Lines)),
	)
	return ToSupplierInvoiceResponse(created), nil
}

// Update replaces the whole invoice
func (s *SupplierInvoiceService) Update(ctx context.Context, id string, in SupplierInvoiceInput) (*SupplierInvoiceResponse, error) {
	inv, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, inv)
	if err != nil {
		return nil, err
	}
	return ToSupplierInvoiceResponse(updated), nil
}

func (s *SupplierInvoiceService) build(ctx context.Context, id string, in SupplierInvoiceInput) (*finance.SupplierInvoice, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	date, err := documentDate(id, in.Date, s.now)
	if err != nil {
		return nil, err
	}

	defaults := identity.DefaultsFromContext(ctx)
	inv := &finance.SupplierInvoice{
		Ref:          shared.NewRef(shared.TypeSupplierInvoice, id),
		Number:       in.Number,
		Date:         date,
		Posted:       in.Posted,
		Company:      shared.NewRef(shared.TypeCompany, in.CompanyID).Or(defaults.Company),
		Counterparty: shared.NewRef(shared.TypeCounterparty, in.CounterpartyID),
		Contract:     shared.NewRef(shared.TypeContract, in.ContractID),
		Currency:     shared.NewRef(shared.TypeCurrency, in.CurrencyID).Or(defaults.Currency),
		Warehouse:    shared.NewRef(shared.TypeDepartment, in.WarehouseID).Or(defaults.Warehouse),
		Comment:      in.Comment,
		Lines:        make([]finance.InvoiceLine, 0, len(in.Lines)),
	}
	for _, l := range in.Lines {
		inv.Lines = append(inv.Lines, finance.InvoiceLine{
			Product:  shared.NewRef(shared.TypeProduct, l.ProductID),
			Quantity: l.Quantity,
			Price:    l.Price,
		})
	}
	inv.Recalculate()
	if !inv.DocumentAmount.IsPositive() {
		return nil, shared.NewValidationError("lines", "lines: Invoice amount must be greater than 0")
	}
	return inv, nil
}
