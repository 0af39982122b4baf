package trade

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Order is a customer order as stored by the accounting service.
type Order struct {
	shared.Ref
	Number          string
	Date            time.Time
	Posted          bool
	Customer        shared.Ref
	Contract        shared.Ref
	Company         shared.Ref
	Department      shared.Ref
	Currency        shared.Ref
	PriceKind       shared.Ref
	OrderState      shared.Ref
	Employee        shared.Ref
	DeliveryAddress string
	ShipmentDate    time.Time
	Comment         string
	Lines           []OrderLine
	DocumentAmount  decimal.Decimal
}

// OrderLine is one product row of an order.
type OrderLine struct {
	Product        shared.Ref
	Characteristic shared.Ref
	Quantity       decimal.Decimal
	Price          decimal.Decimal
	DiscountRate   decimal.Decimal
	Amount         decimal.Decimal
	Comment        string
}

// LineAmount returns quantity × price less the line discount, rounded to cents.
func (l OrderLine) LineAmount() decimal.Decimal {
	gross := l.Quantity.Mul(l.Price)
	if l.DiscountRate.IsPositive() {
		gross = gross.Sub(gross.Mul(l.DiscountRate).Div(decimal.NewFromInt(100)))
	}
	return gross.Round(2)
}

// Recalculate recomputes every line amount and the document total.
func (o *Order) Recalculate() {
	total := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].Amount = o.Lines[i].LineAmount()
		total = total.Add(o.Lines[i].Amount)
	}
	o.DocumentAmount = total
}

// Stage derives the workflow stage from the order's status label.
func (o *Order) Stage() OrderStage {
	return StageFromLabel(o.OrderState.Presentation)
}
