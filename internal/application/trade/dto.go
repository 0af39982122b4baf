package trade

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
)

// OrderLineInput is one product row of an order form.
type OrderLineInput struct {
	ProductID        string          `json:"product_id" binding:"required,uuid"`
	CharacteristicID string          `json:"characteristic_id" binding:"omitempty,uuid"`
	Quantity         decimal.Decimal `json:"quantity" binding:"gt=0"`
	Price            decimal.Decimal `json:"price" binding:"gte=0"`
	DiscountRate     decimal.Decimal `json:"discount_rate" binding:"gte=0,lte=100"`
	Comment          string          `json:"comment" binding:"max=500"`
}

// OrderInput is the full order form. Create and update both send the whole
// record; empty references fall back to the session defaults.
type OrderInput struct {
	Number          string           `json:"number" binding:"max=50"`
	Date            *time.Time       `json:"date"`
	Posted          bool             `json:"posted"`
	CustomerID      string           `json:"customer_id" binding:"required,uuid"`
	ContractID      string           `json:"contract_id" binding:"omitempty,uuid"`
	CompanyID       string           `json:"company_id" binding:"omitempty,uuid"`
	DepartmentID    string           `json:"department_id" binding:"omitempty,uuid"`
	CurrencyID      string           `json:"currency_id" binding:"omitempty,uuid"`
	PriceKindID     string           `json:"price_kind_id" binding:"omitempty,uuid"`
	OrderStateID    string           `json:"order_state_id" binding:"omitempty,uuid"`
	EmployeeID      string           `json:"employee_id" binding:"omitempty,uuid"`
	DeliveryAddress string           `json:"delivery_address" binding:"max=500"`
	ShipmentDate    *time.Time       `json:"shipment_date"`
	Comment         string           `json:"comment" binding:"max=1000"`
	Lines           []OrderLineInput `json:"lines" binding:"required,min=1,max=500,dive"`
}

// OrderFilter narrows the order list.
type OrderFilter struct {
	CustomerID   string
	OrderStateID string
	DateFrom     time.Time
	DateTo       time.Time
}

// conditions converts the filter into list conditions.
func (f OrderFilter) conditions() []shared.Condition {
	var conds []shared.Condition
	if f.CustomerID != "" {
		conds = append(conds, shared.Eq("customer", shared.NewRef(shared.TypeCounterparty, f.CustomerID)))
	}
	if f.OrderStateID != "" {
		conds = append(conds, shared.Eq("orderState", shared.NewRef(shared.TypeOrderState, f.OrderStateID)))
	}
	return append(conds, shared.PeriodConditions("date", f.DateFrom, f.DateTo)...)
}

// OrderLineResponse is one product row in API responses.
type OrderLineResponse struct {
	Product        shared.Ref      `json:"product"`
	Characteristic shared.Ref      `json:"characteristic,omitzero"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	DiscountRate   decimal.Decimal `json:"discount_rate"`
	Amount         decimal.Decimal `json:"amount"`
	Comment        string          `json:"comment,omitempty"`
}

// OrderResponse represents an order in API responses. List responses leave
// Lines empty.
type OrderResponse struct {
	ID              string              `json:"id"`
	Presentation    string              `json:"presentation"`
	Number          string              `json:"number"`
	Date            time.Time           `json:"date"`
	Posted          bool                `json:"posted"`
	Customer        shared.Ref          `json:"customer"`
	Contract        shared.Ref          `json:"contract,omitzero"`
	Company         shared.Ref          `json:"company,omitzero"`
	Department      shared.Ref          `json:"department,omitzero"`
	Currency        shared.Ref          `json:"currency,omitzero"`
	PriceKind       shared.Ref          `json:"price_kind,omitzero"`
	OrderState      shared.Ref          `json:"order_state,omitzero"`
	Employee        shared.Ref          `json:"employee,omitzero"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	ShipmentDate    *time.Time          `json:"shipment_date,omitempty"`
	Comment         string              `json:"comment,omitempty"`
	DocumentAmount  decimal.Decimal     `json:"document_amount"`
	Stage           string              `json:"stage"`
	NextStage       string              `json:"next_stage,omitempty"`
	Lines           []OrderLineResponse `json:"lines,omitempty"`
}

// ToOrderListResponse converts an order without its lines.
func ToOrderListResponse(o trade.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		Presentation:    o.Presentation,
		Number:          o.Number,
		Date:            o.Date,
		Posted:          o.Posted,
		Customer:        o.Customer,
		Contract:        o.Contract,
		Company:         o.Company,
		Department:      o.Department,
		Currency:        o.Currency,
		PriceKind:       o.PriceKind,
		OrderState:      o.OrderState,
		Employee:        o.Employee,
		DeliveryAddress: o.DeliveryAddress,
		Comment:         o.Comment,
		DocumentAmount:  o.DocumentAmount,
	}
	if !o.ShipmentDate.IsZero() {
		d := o.ShipmentDate
		resp.ShipmentDate = &d
	}
	stage := o.Stage()
	resp.Stage = string(stage)
	if next, ok := stage.Next(); ok {
		resp.NextStage = string(next)
	}
	return resp
}

// ToOrderResponse converts an order including its lines.
func ToOrderResponse(o *trade.Order) *OrderResponse {
	resp := ToOrderListResponse(*o)
	resp.Lines = make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			Product:        l.Product,
			Characteristic: l.Characteristic,
			Quantity:       l.Quantity,
			Price:          l.Price,
			DiscountRate:   l.DiscountRate,
			Amount:         l.Amount,
			Comment:        l.Comment,
		})
	}
	return &resp
}
