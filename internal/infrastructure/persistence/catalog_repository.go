package persistence

import (
	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

type currencyRecord struct {
	Type         string       `json:"_type"`
	ObjectID     xts.ObjectID `json:"objectId"`
	Code         string       `json:"code"`
	Description  string       `json:"description"`
	Symbol       string       `json:"symbolPresentation"`
	Rate         xts.Decimal  `json:"rate"`
	Multiplicity int64        `json:"multiplicity"`
}

func currencyFromRecord(r currencyRecord) catalog.Currency {
	return catalog.Currency{
		Ref:          fromObjectID(r.ObjectID),
		Code:         r.Code,
		Description:  r.Description,
		Symbol:       r.Symbol,
		Rate:         r.Rate.Decimal,
		Multiplicity: r.Multiplicity,
	}
}

func currencyToRecord(c *catalog.Currency) currencyRecord {
	return currencyRecord{
		Type:         "XTSCurrency",
		ObjectID:     selfID(c.Ref, shared.TypeCurrency),
		Code:         c.Code,
		Description:  c.Description,
		Symbol:       c.Symbol,
		Rate:         xts.NewDecimal(c.Rate),
		Multiplicity: c.Multiplicity,
	}
}

type productRecord struct {
	Type        string       `json:"_type"`
	ObjectID    xts.ObjectID `json:"objectId"`
	SKU         string       `json:"sku"`
	Description string       `json:"description"`
	ProductType string       `json:"productType"`
	Unit        xts.ObjectID `json:"measurementUnit"`
	Category    xts.ObjectID `json:"productCategory"`
	Price       xts.Decimal  `json:"price"`
	Comment     string       `json:"comment"`
}

func productFromRecord(r productRecord) catalog.Product {
	return catalog.Product{
		Ref:         fromObjectID(r.ObjectID),
		SKU:         r.SKU,
		Description: r.Description,
		ProductType: r.ProductType,
		Unit:        fromObjectID(r.Unit),
		Category:    fromObjectID(r.Category),
		Price:       r.Price.Decimal,
		Comment:     r.Comment,
	}
}

func productToRecord(p *catalog.Product) productRecord {
	return productRecord{
		Type:        "XTSProduct",
		ObjectID:    selfID(p.Ref, shared.TypeProduct),
		SKU:         p.SKU,
		Description: p.Description,
		ProductType: p.ProductType,
		Unit:        toObjectID(p.Unit),
		Category:    toObjectID(p.Category),
		Price:       xts.NewDecimal(p.Price),
		Comment:     p.Comment,
	}
}

// XTSCurrencyRepository implements catalog.CurrencyRepository.
type XTSCurrencyRepository struct {
	xtsRepository[catalog.Currency, currencyRecord]
}

// NewXTSCurrencyRepository creates a currency repository.
func NewXTSCurrencyRepository(client xts.Caller) *XTSCurrencyRepository {
	return &XTSCurrencyRepository{xtsRepository[catalog.Currency, currencyRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeCurrency, searchField: "description", defaultSort: "code"},
		toDomain: currencyFromRecord,
		toWire:   currencyToRecord,
	}}
}

// XTSProductRepository implements catalog.ProductRepository.
type XTSProductRepository struct {
	xtsRepository[catalog.Product, productRecord]
}

// NewXTSProductRepository creates a product repository.
func NewXTSProductRepository(client xts.Caller) *XTSProductRepository {
	return &XTSProductRepository{xtsRepository[catalog.Product, productRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeProduct, searchField: "description", defaultSort: "description"},
		toDomain: productFromRecord,
		toWire:   productToRecord,
	}}
}

var (
	_ catalog.CurrencyRepository = (*XTSCurrencyRepository)(nil)
	_ catalog.ProductRepository  = (*XTSProductRepository)(nil)
)
