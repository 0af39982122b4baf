package finance

import "github.com/erp/backoffice/internal/domain/shared"

// CashReceiptRepository reads and writes cash receipts.
type CashReceiptRepository interface {
	shared.Repository[CashReceipt]
}

// TransferReceiptRepository reads and writes bank transfer receipts.
type TransferReceiptRepository interface {
	shared.Repository[TransferReceipt]
}

// SupplierInvoiceRepository reads and writes supplier invoices.
type SupplierInvoiceRepository interface {
	shared.Repository[SupplierInvoice]
}
