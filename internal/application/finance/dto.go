package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
)

// ==================== Filters ====================

// DocumentFilter narrows a payment or invoice list.
type DocumentFilter struct {
	CounterpartyID string
	DateFrom       time.Time
	DateTo         time.Time
}

func (f DocumentFilter) apply(q shared.ListQuery) shared.ListQuery {
	if f.CounterpartyID != "" {
		q = q.WithCondition(shared.Eq("counterparty", shared.NewRef(shared.TypeCounterparty, f.CounterpartyID)))
	}
	for _, c := range shared.PeriodConditions("date", f.DateFrom, f.DateTo) {
		q = q.WithCondition(c)
	}
	if field, ok := documentSortFields[q.SortBy]; ok {
		q.SortBy = field
	} else {
		q.SortBy, q.SortDesc = "", false
	}
	return q
}

var documentSortFields = map[string]string{
	"date":   "date",
	"number": "number",
	"amount": "documentAmount",
}

// ==================== Cash Receipt DTOs ====================

// CashReceiptInput is the full cash receipt form.
type CashReceiptInput struct {
	Number          string          `json:"number" binding:"max=50"`
	Date            *time.Time      `json:"date"`
	Posted          bool            `json:"posted"`
	OperationKind   string          `json:"operation_kind" binding:"omitempty,oneof=FromCustomer Other"`
	CounterpartyID  string          `json:"counterparty_id" binding:"required,uuid"`
	ContractID      string          `json:"contract_id" binding:"omitempty,uuid"`
	CompanyID       string          `json:"company_id" binding:"omitempty,uuid"`
	CashAccountID   string          `json:"cash_account_id" binding:"omitempty,uuid"`
	CurrencyID      string          `json:"currency_id" binding:"omitempty,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"gt=0"`
	DocumentBasisID string          `json:"document_basis_id" binding:"omitempty,uuid"`
	EmployeeID      string          `json:"employee_id" binding:"omitempty,uuid"`
	Comment         string          `json:"comment" binding:"max=1000"`
}

// CashReceiptResponse represents a cash receipt in API responses
type CashReceiptResponse struct {
	ID            string          `json:"id"`
	Presentation  string          `json:"presentation"`
	Number        string          `json:"number"`
	Date          time.Time       `json:"date"`
	Posted        bool            `json:"posted"`
	OperationKind string          `json:"operation_kind"`
	Company       shared.Ref      `json:"company,omitzero"`
	Counterparty  shared.Ref      `json:"counterparty"`
	Contract      shared.Ref      `json:"contract,omitzero"`
	CashAccount   shared.Ref      `json:"cash_account,omitzero"`
	Currency      shared.Ref      `json:"currency,omitzero"`
	Amount        decimal.Decimal `json:"amount"`
	DocumentBasis shared.Ref      `json:"document_basis,omitzero"`
	Employee      shared.Ref      `json:"employee,omitzero"`
	Comment       string          `json:"comment,omitempty"`
}

// ToCashReceiptResponse converts a cash receipt to its response
func ToCashReceiptResponse(r finance.CashReceipt) CashReceiptResponse {
	return CashReceiptResponse{
		ID:            r.ID,
		Presentation:  r.Presentation,
		Number:        r.Number,
		Date:          r.Date,
		Posted:        r.Posted,
		OperationKind: r.OperationKind,
		Company:       r.Company,
		Counterparty:  r.Counterparty,
		Contract:      r.Contract,
		CashAccount:   r.CashAccount,
		Currency:      r.Currency,
		Amount:        r.Amount,
		DocumentBasis: r.DocumentBasis,
		Employee:      r.Employee,
		Comment:       r.Comment,
	}
}

// ==================== Transfer Receipt DTOs ====================

// TransferReceiptInput is the full bank transfer receipt form.
type TransferReceiptInput struct {
	Number          string          `json:"number" binding:"max=50"`
	Date            *time.Time      `json:"date"`
	Posted          bool            `json:"posted"`
	OperationKind   string          `json:"operation_kind" binding:"omitempty,oneof=FromCustomer Other"`
	CounterpartyID  string          `json:"counterparty_id" binding:"required,uuid"`
	ContractID      string          `json:"contract_id" binding:"omitempty,uuid"`
	CompanyID       string          `json:"company_id" binding:"omitempty,uuid"`
	BankAccountID   string          `json:"bank_account_id" binding:"omitempty,uuid"`
	CurrencyID      string          `json:"currency_id" binding:"omitempty,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"gt=0"`
	DocumentBasisID string          `json:"document_basis_id" binding:"omitempty,uuid"`
	PaymentPurpose  string          `json:"payment_purpose" binding:"max=500"`
	Comment         string          `json:"comment" binding:"max=1000"`
}

// TransferReceiptResponse represents a transfer receipt in API responses
type TransferReceiptResponse struct {
	ID             string          `json:"id"`
	Presentation   string          `json:"presentation"`
	Number         string          `json:"number"`
	Date           time.Time       `json:"date"`
	Posted         bool            `json:"posted"`
	OperationKind  string          `json:"operation_kind"`
	Company        shared.Ref      `json:"company,omitzero"`
	Counterparty   shared.Ref      `json:"counterparty"`
	Contract       shared.Ref      `json:"contract,omitzero"`
	BankAccount    shared.Ref      `json:"bank_account,omitzero"`
	Currency       shared.Ref      `json:"currency,omitzero"`
	Amount         decimal.Decimal `json:"amount"`
	DocumentBasis  shared.Ref      `json:"document_basis,omitzero"`
	PaymentPurpose string          `json:"payment_purpose,omitempty"`
	Comment        string          `json:"comment,omitempty"`
}

// ToTransferReceiptResponse converts a transfer receipt to its response
func ToTransferReceiptResponse(r finance.TransferReceipt) TransferReceiptResponse {
	return TransferReceiptResponse{
		ID:             r.ID,
		Presentation:   r.Presentation,
		Number:         r.Number,
		Date:           r.Date,
		Posted:         r.Posted,
		OperationKind:  r.OperationKind,
		Company:        r.Company,
		Counterparty:   r.Counterparty,
		Contract:       r.Contract,
		BankAccount:    r.BankAccount,
		Currency:       r.Currency,
		Amount:         r.Amount,
		DocumentBasis:  r.DocumentBasis,
		PaymentPurpose: r.PaymentPurpose,
		Comment:        r.Comment,
	}
}

// ==================== Supplier Invoice DTOs ====================

// InvoiceLineInput is one product row of a supplier invoice form.
type InvoiceLineInput struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"gt=0"`
	Price     decimal.Decimal `json:"price" binding:"gte=0"`
}

// SupplierInvoiceInput is the full supplier invoice form.
type SupplierInvoiceInput struct {
	Number         string             `json:"number" binding:"max=50"`
	Date           *time.Time         `json:"date"`
	Posted         bool               `json:"posted"`
	CounterpartyID string             `json:"counterparty_id" binding:"required,uuid"`
	ContractID     string             `json:"contract_id" binding:"omitempty,uuid"`
	CompanyID      string             `json:"company_id" binding:"omitempty,uuid"`
	CurrencyID     string             `json:"currency_id" binding:"omitempty,uuid"`
	WarehouseID    string             `json:"warehouse_id" binding:"omitempty,uuid"`
	Comment        string             `json:"comment" binding:"max=1000"`
	Lines          []InvoiceLineInput `json:"lines" binding:"required,min=1,max=500,dive"`
}

// InvoiceLineResponse is one product row in API responses.
type InvoiceLineResponse struct {
	Product  shared.Ref      `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Amount   decimal.Decimal `json:"amount"`
}

// SupplierInvoiceResponse represents a supplier invoice in API responses
type SupplierInvoiceResponse struct {
	ID             string                `json:"id"`
	Presentation   string                `json:"presentation"`
	Number         string                `json:"number"`
	Date           time.Time             `json:"date"`
	Posted         bool                  `json:"posted"`
	Company        shared.Ref            `json:"company,omitzero"`
	Counterparty   shared.Ref            `json:"counterparty"`
	Contract       shared.Ref            `json:"contract,omitzero"`
	Currency       shared.Ref            `json:"currency,omitzero"`
	Warehouse      shared.Ref            `json:"warehouse,omitzero"`
	DocumentAmount decimal.Decimal       `json:"document_amount"`
	Comment        string                `json:"comment,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines,omitempty"`
}

// ToSupplierInvoiceListResponse converts an invoice without its lines
func ToSupplierInvoiceListResponse(inv finance.SupplierInvoice) SupplierInvoiceResponse {
	return SupplierInvoiceResponse{
		ID:             inv.ID,
		Presentation:   inv.Presentation,
		Number:         inv.Number,
		Date:           inv.Date,
		Posted:         inv.Posted,
		Company:        inv.Company,
		Counterparty:   inv.Counterparty,
		Contract:       inv.Contract,
		Currency:       inv.Currency,
		Warehouse:      inv.Warehouse,
		DocumentAmount: inv.DocumentAmount,
		Comment:        inv.Comment,
	}
}

// ToSupplierInvoiceResponse converts an invoice including its lines
func ToSupplierInvoiceResponse(inv *finance.SupplierInvoice) *SupplierInvoiceResponse {
	resp := ToSupplierInvoiceListResponse(*inv)
	resp.Lines = make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, InvoiceLineResponse{
			Product:  l.Product,
			Quantity: l.Quantity,
			Price:    l.Price,
			Amount:   l.Amount,
		})
	}
	return &resp
}
