package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

// CurrencyInput is the full currency form
type CurrencyInput struct {
	Code         string          `json:"code" binding:"required,len=3,alpha"`
	Description  string          `json:"description" binding:"required,min=1,max=100"`
	Symbol       string          `json:"symbol" binding:"max=10"`
	Rate         decimal.Decimal `json:"rate" binding:"gte=0"`
	Multiplicity int64           `json:"multiplicity" binding:"gte=0"`
}

// CurrencyResponse represents a currency in API responses
type CurrencyResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Symbol       string          `json:"symbol,omitempty"`
	Rate         decimal.Decimal `json:"rate"`
	Multiplicity int64           `json:"multiplicity"`
}

// ToCurrencyResponse converts a currency to its response
func ToCurrencyResponse(c catalog.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:           c.ID,
		Code:         c.Code,
		Description:  c.Description,
		Symbol:       c.Symbol,
		Rate:         c.Rate,
		Multiplicity: c.Multiplicity,
	}
}

// ProductInput is the full product form
type ProductInput struct {
	SKU         string          `json:"sku" binding:"max=50"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	ProductType string          `json:"product_type" binding:"omitempty,oneof=InventoryItem Service Work"`
	UnitID      string          `json:"unit_id" binding:"omitempty,uuid"`
	CategoryID  string          `json:"category_id" binding:"omitempty,uuid"`
	Price       decimal.Decimal `json:"price" binding:"gte=0"`
	Comment     string          `json:"comment" binding:"max=1000"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Description string          `json:"description"`
	ProductType string          `json:"product_type"`
	Unit        shared.Ref      `json:"unit,omitzero"`
	Category    shared.Ref      `json:"category,omitzero"`
	Price       decimal.Decimal `json:"price"`
	Comment     string          `json:"comment,omitempty"`
}

// ToProductResponse converts a product to its response
func ToProductResponse(p catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Description: p.Description,
		ProductType: p.ProductType,
		Unit:        p.Unit,
		Category:    p.Category,
		Price:       p.Price,
		Comment:     p.Comment,
	}
}
