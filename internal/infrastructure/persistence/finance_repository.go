package persistence

import (
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

type cashReceiptRecord struct {
	Type          string       `json:"_type"`
	ObjectID      xts.ObjectID `json:"objectId"`
	Date          xts.Time     `json:"date"`
	Number        string       `json:"number"`
	Posted        bool         `json:"posted"`
	OperationKind string       `json:"operationKind"`
	Company       xts.ObjectID `json:"company"`
	Counterparty  xts.ObjectID `json:"counterparty"`
	Contract      xts.ObjectID `json:"contract"`
	CashAccount   xts.ObjectID `json:"pettyCash"`
	Currency      xts.ObjectID `json:"cashCurrency"`
	Amount        xts.Decimal  `json:"documentAmount"`
	DocumentBasis xts.ObjectID `json:"documentBasis"`
	Employee      xts.ObjectID `json:"employee"`
	Comment       string       `json:"comment"`
}

func cashReceiptFromRecord(r cashReceiptRecord) finance.CashReceipt {
	return finance.CashReceipt{
		Ref:           fromObjectID(r.ObjectID),
		Number:        r.Number,
		Date:          r.Date.Time,
		Posted:        r.Posted,
		OperationKind: r.OperationKind,
		Company:       fromObjectID(r.Company),
		Counterparty:  fromObjectID(r.Counterparty),
		Contract:      fromObjectID(r.Contract),
		CashAccount:   fromObjectID(r.CashAccount),
		Currency:      fromObjectID(r.Currency),
		Amount:        r.Amount.Decimal,
		DocumentBasis: fromObjectID(r.DocumentBasis),
		Employee:      fromObjectID(r.Employee),
		Comment:       r.Comment,
	}
}

func cashReceiptToRecord(c *finance.CashReceipt) cashReceiptRecord {
	return cashReceiptRecord{
		Type:          "XTSCashReceipt",
		ObjectID:      selfID(c.Ref, shared.TypeCashReceipt),
		Date:          xts.NewTime(c.Date),
		Number:        c.Number,
		Posted:        c.Posted,
		OperationKind: c.OperationKind,
		Company:       toObjectID(c.Company),
		Counterparty:  toObjectID(c.Counterparty),
		Contract:      toObjectID(c.Contract),
		CashAccount:   toObjectID(c.CashAccount),
		Currency:      toObjectID(c.Currency),
		Amount:        xts.NewDecimal(c.Amount),
		DocumentBasis: toObjectID(c.DocumentBasis),
		Employee:      toObjectID(c.Employee),
		Comment:       c.Comment,
	}
}

type transferReceiptRecord struct {
	Type           string       `json:"_type"`
	ObjectID       xts.ObjectID `json:"objectId"`
	Date           xts.Time     `json:"date"`
	Number         string       `json:"number"`
	Posted         bool         `json:"posted"`
	OperationKind  string       `json:"operationKind"`
	Company        xts.ObjectID `json:"company"`
	Counterparty   xts.ObjectID `json:"counterparty"`
	Contract       xts.ObjectID `json:"contract"`
	BankAccount    xts.ObjectID `json:"bankAccount"`
	Currency       xts.ObjectID `json:"cashCurrency"`
	Amount         xts.Decimal  `json:"documentAmount"`
	DocumentBasis  xts.ObjectID `json:"documentBasis"`
	PaymentPurpose string       `json:"paymentPurpose"`
	Comment        string       `json:"comment"`
}

func transferReceiptFromRecord(r transferReceiptRecord) finance.TransferReceipt {
	return finance.TransferReceipt{
		Ref:            fromObjectID(r.ObjectID),
		Number:         r.Number,
		Date:           r.Date.Time,
		Posted:         r.Posted,
		OperationKind:  r.OperationKind,
		Company:        fromObjectID(r.Company),
		Counterparty:   fromObjectID(r.Counterparty),
		Contract:       fromObjectID(r.Contract),
		BankAccount:    fromObjectID(r.BankAccount),
		Currency:       fromObjectID(r.Currency),
		Amount:         r.Amount.Decimal,
		DocumentBasis:  fromObjectID(r.DocumentBasis),
		PaymentPurpose: r.PaymentPurpose,
		Comment:        r.Comment,
	}
}

func transferReceiptToRecord(t *finance.TransferReceipt) transferReceiptRecord {
	return transferReceiptRecord{
		Type:           "XTSPaymentReceipt",
		ObjectID:       selfID(t.Ref, shared.TypeTransferReceipt),
		Date:           xts.NewTime(t.Date),
		Number:         t.Number,
		Posted:         t.Posted,
		OperationKind:  t.OperationKind,
		Company:        toObjectID(t.Company),
		Counterparty:   toObjectID(t.Counterparty),
		Contract:       toObjectID(t.Contract),
		BankAccount:    toObjectID(t.BankAccount),
		Currency:       toObjectID(t.Currency),
		Amount:         xts.NewDecimal(t.Amount),
		DocumentBasis:  toObjectID(t.DocumentBasis),
		PaymentPurpose: t.PaymentPurpose,
		Comment:        t.Comment,
	}
}

type supplierInvoiceRecord struct {
	Type           string              `json:"_type"`
	ObjectID       xts.ObjectID        `json:"objectId"`
	Date           xts.Time            `json:"date"`
	Number         string              `json:"number"`
	Posted         bool                `json:"posted"`
	Company        xts.ObjectID        `json:"company"`
	Counterparty   xts.ObjectID        `json:"counterparty"`
	Contract       xts.ObjectID        `json:"contract"`
	Currency       xts.ObjectID        `json:"documentCurrency"`
	Warehouse      xts.ObjectID        `json:"structuralUnit"`
	Inventory      []invoiceLineRecord `json:"inventory"`
	DocumentAmount xts.Decimal         `json:"documentAmount"`
	Comment        string              `json:"comment"`
}

type invoiceLineRecord struct {
	Type     string       `json:"_type"`
	Product  xts.ObjectID `json:"product"`
	Quantity xts.Decimal  `json:"quantity"`
	Price    xts.Decimal  `json:"price"`
	Amount   xts.Decimal  `json:"amount"`
}

func supplierInvoiceFromRecord(r supplierInvoiceRecord) finance.SupplierInvoice {
	s := finance.SupplierInvoice{
		Ref:            fromObjectID(r.ObjectID),
		Number:         r.Number,
		Date:           r.Date.Time,
		Posted:         r.Posted,
		Company:        fromObjectID(r.Company),
		Counterparty:   fromObjectID(r.Counterparty),
		Contract:       fromObjectID(r.Contract),
		Currency:       fromObjectID(r.Currency),
		Warehouse:      fromObjectID(r.Warehouse),
		DocumentAmount: r.DocumentAmount.Decimal,
		Comment:        r.Comment,
		Lines:          make([]finance.InvoiceLine, 0, len(r.Inventory)),
	}
	for _, l := range r.Inventory {
		s.Lines = append(s.Lines, finance.InvoiceLine{
			Product:  fromObjectID(l.Product),
			Quantity: l.Quantity.Decimal,
			Price:    l.Price.Decimal,
			Amount:   l.Amount.Decimal,
		})
	}
	return s
}

func supplierInvoiceToRecord(s *finance.SupplierInvoice) supplierInvoiceRecord {
	r := supplierInvoiceRecord{
		Type:           "XTSSupplierInvoice",
		ObjectID:       selfID(s.Ref, shared.TypeSupplierInvoice),
		Date:           xts.NewTime(s.Date),
		Number:         s.Number,
		Posted:         s.Posted,
		Company:        toObjectID(s.Company),
		Counterparty:   toObjectID(s.Counterparty),
		Contract:       toObjectID(s.Contract),
		Currency:       toObjectID(s.Currency),
		Warehouse:      toObjectID(s.Warehouse),
		DocumentAmount: xts.NewDecimal(s.DocumentAmount),
		Comment:        s.Comment,
		Inventory:      make([]invoiceLineRecord, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		r.Inventory = append(r.Inventory, invoiceLineRecord{
			Type:     "XTSSupplierInvoiceInventoryRow",
			Product:  toObjectID(l.Product),
			Quantity: xts.NewDecimal(l.Quantity),
			Price:    xts.NewDecimal(l.Price),
			Amount:   xts.NewDecimal(l.Amount),
		})
	}
	return r
}

// XTSCashReceiptRepository implements finance.CashReceiptRepository.
type XTSCashReceiptRepository struct {
	xtsRepository[finance.CashReceipt, cashReceiptRecord]
}

// NewXTSCashReceiptRepository creates a cash receipt repository.
func NewXTSCashReceiptRepository(client xts.Caller) *XTSCashReceiptRepository {
	return &XTSCashReceiptRepository{xtsRepository[finance.CashReceipt, cashReceiptRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeCashReceipt, searchField: "number", defaultSort: "date", defaultDesc: true},
		toDomain: cashReceiptFromRecord,
		toWire:   cashReceiptToRecord,
	}}
}

// XTSTransferReceiptRepository implements finance.TransferReceiptRepository.
type XTSTransferReceiptRepository struct {
	xtsRepository[finance.TransferReceipt, transferReceiptRecord]
}

// NewXTSTransferReceiptRepository creates a transfer receipt repository.
func NewXTSTransferReceiptRepository(client xts.Caller) *XTSTransferReceiptRepository {
	return &XTSTransferReceiptRepository{xtsRepository[finance.TransferReceipt, transferReceiptRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeTransferReceipt, searchField: "number", defaultSort: "date", defaultDesc: true},
		toDomain: transferReceiptFromRecord,
		toWire:   transferReceiptToRecord,
	}}
}

// XTSSupplierInvoiceRepository implements finance.SupplierInvoiceRepository.
type XTSSupplierInvoiceRepository struct {
	xtsRepository[finance.SupplierInvoice, supplierInvoiceRecord]
}

// NewXTSSupplierInvoiceRepository creates a supplier invoice repository.
func NewXTSSupplierInvoiceRepository(client xts.Caller) *XTSSupplierInvoiceRepository {
	return &XTSSupplierInvoiceRepository{xtsRepository[finance.SupplierInvoice, supplierInvoiceRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeSupplierInvoice, searchField: "number", defaultSort: "date", defaultDesc: true},
		toDomain: supplierInvoiceFromRecord,
		toWire:   supplierInvoiceToRecord,
	}}
}

var (
	_ finance.CashReceiptRepository     = (*XTSCashReceiptRepository)(nil)
	_ finance.TransferReceiptRepository = (*XTSTransferReceiptRepository)(nil)
	_ finance.SupplierInvoiceRepository = (*XTSSupplierInvoiceRepository)(nil)
)
