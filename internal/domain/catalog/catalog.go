package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Currency is an entry of the currency catalog.
type Currency struct {
	shared.Ref
	Code         string
	Description  string
	Symbol       string
	Rate         decimal.Decimal
	Multiplicity int64
}

// Product is an entry of the product catalog.
type Product struct {
	shared.Ref
	SKU         string
	Description string
	ProductType string
	Unit        shared.Ref
	Category    shared.Ref
	Price       decimal.Decimal
	Comment     string
}

// CurrencyRepository reads and writes currencies.
type CurrencyRepository interface {
	shared.Repository[Currency]
}

// ProductRepository reads and writes products.
type ProductRepository interface {
	shared.Repository[Product]
}
