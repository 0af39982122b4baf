package partner

import "github.com/erp/backoffice/internal/domain/shared"

// Counterparty is a customer or supplier, used by the lookup lists on
// order and payment forms.
type Counterparty struct {
	shared.Ref
	Code        string
	Description string
	TaxCode     string
	Phone       string
	Email       string
	Address     string
	IsCustomer  bool
	IsSupplier  bool
}

// CounterpartyRepository lists and loads counterparties.
type CounterpartyRepository interface {
	shared.Reader[Counterparty]
}
