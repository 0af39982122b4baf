package shared

// Ref points at a record held by the accounting service. It carries the
// display text so list views never need a second round trip.
type Ref struct {
	ID           string `json:"id"`
	DataType     string `json:"data_type"`
	Presentation string `json:"presentation"`
}

// NewRef creates a reference to a record of the given type.
func NewRef(dataType, id string) Ref {
	return Ref{ID: id, DataType: dataType}
}

// IsZero reports whether the reference points at nothing.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// Or returns r, or fallback when r is empty.
func (r Ref) Or(fallback Ref) Ref {
	if r.IsZero() {
		return fallback
	}
	return r
}

// String returns the display text, falling back to the id.
func (r Ref) String() string {
	if r.Presentation != "" {
		return r.Presentation
	}
	return r.ID
}

// Data types used by the accounting service.
const (
	TypeOrder           = "Orders"
	TypeCashReceipt     = "CashReceipt"
	TypeSupplierInvoice = "SupplierInvoice"
	TypeTransferReceipt = "PaymentReceipt"
	TypeCurrency        = "Currencies"
	TypeEmployee        = "Employees"
	TypeProduct         = "Products"
	TypeCounterparty    = "Counterparties"
	TypeCompany         = "Companies"
	TypeOrderState      = "OrderStates"
	TypeCashAccount     = "CashAccounts"
	TypeBankAccount     = "BankAccounts"
	TypeDepartment      = "StructuralUnits"
	TypePriceKind       = "PriceTypes"
	TypeUser            = "Users"
	TypeContract        = "CounterpartyContracts"
	TypeCharacteristic  = "ProductCharacteristics"
	TypeUnit            = "UOMClassifier"
	TypeProductCategory = "ProductsCategories"
)
