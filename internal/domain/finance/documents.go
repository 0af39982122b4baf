package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Operation kinds for incoming payments.
const (
	OperationFromCustomer = "FromCustomer"
	OperationOther        = "Other"
)

// CashReceipt records cash received at a cash desk.
type CashReceipt struct {
	shared.Ref
	Number        string
	Date          time.Time
	Posted        bool
	OperationKind string
	Company       shared.Ref
	Counterparty  shared.Ref
	Contract      shared.Ref
	CashAccount   shared.Ref
	Currency      shared.Ref
	Amount        decimal.Decimal
	// DocumentBasis is the order this receipt settles.
	DocumentBasis shared.Ref
	Employee      shared.Ref
	Comment       string
}

// TransferReceipt records a bank transfer received on a company account.
type TransferReceipt struct {
	shared.Ref
	Number         string
	Date           time.Time
	Posted         bool
	OperationKind  string
	Company        shared.Ref
	Counterparty   shared.Ref
	Contract       shared.Ref
	BankAccount    shared.Ref
	Currency       shared.Ref
	Amount         decimal.Decimal
	DocumentBasis  shared.Ref
	PaymentPurpose string
	Comment        string
}

// SupplierInvoice records goods received from a supplier.
type SupplierInvoice struct {
	shared.Ref
	Number         string
	Date           time.Time
	Posted         bool
	Company        shared.Ref
	Counterparty   shared.Ref
	Contract       shared.Ref
	Currency       shared.Ref
	Warehouse      shared.Ref
	Lines          []InvoiceLine
	DocumentAmount decimal.Decimal
	Comment        string
}

// InvoiceLine is one product row of a supplier invoice.
type InvoiceLine struct {
	Product  shared.Ref
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Amount   decimal.Decimal
}

// Recalculate recomputes every line amount and the document total.
func (s *SupplierInvoice) Recalculate() {
	total := decimal.Zero
	for i := range s.Lines {
		s.Lines[i].Amount = s.Lines[i].Quantity.Mul(s.Lines[i].Price).Round(2)
		total = total.Add(s.Lines[i].Amount)
	}
	s.DocumentAmount = total
}
