package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

type orderRecord struct {
	Type            string            `json:"_type"`
	ObjectID        xts.ObjectID      `json:"objectId"`
	Date            xts.Time          `json:"date"`
	Number          string            `json:"number"`
	Posted          bool              `json:"posted"`
	Customer        xts.ObjectID      `json:"customer"`
	Contract        xts.ObjectID      `json:"contract"`
	Company         xts.ObjectID      `json:"company"`
	Department      xts.ObjectID      `json:"department"`
	Currency        xts.ObjectID      `json:"documentCurrency"`
	PriceKind       xts.ObjectID      `json:"priceKind"`
	OrderState      xts.ObjectID      `json:"orderState"`
	Employee        xts.ObjectID      `json:"employeeResponsible"`
	DeliveryAddress string            `json:"shippingAddress"`
	ShipmentDate    xts.Time          `json:"shipmentDate"`
	Comment         string            `json:"comment"`
	Inventory       []orderLineRecord `json:"inventory"`
	DocumentAmount  xts.Decimal       `json:"documentAmount"`
}

type orderLineRecord struct {
	Type           string       `json:"_type"`
	Product        xts.ObjectID `json:"product"`
	Characteristic xts.ObjectID `json:"characteristic"`
	Quantity       xts.Decimal  `json:"quantity"`
	Price          xts.Decimal  `json:"price"`
	DiscountRate   xts.Decimal  `json:"discountMarkupPercent"`
	Amount         xts.Decimal  `json:"amount"`
	Comment        string       `json:"content"`
}

func orderFromRecord(r orderRecord) trade.Order {
	o := trade.Order{
		Ref:             fromObjectID(r.ObjectID),
		Number:          r.Number,
		Date:            r.Date.Time,
		Posted:          r.Posted,
		Customer:        fromObjectID(r.Customer),
		Contract:        fromObjectID(r.Contract),
		Company:         fromObjectID(r.Company),
		Department:      fromObjectID(r.Department),
		Currency:        fromObjectID(r.Currency),
		PriceKind:       fromObjectID(r.PriceKind),
		OrderState:      fromObjectID(r.OrderState),
		Employee:        fromObjectID(r.Employee),
		DeliveryAddress: r.DeliveryAddress,
		ShipmentDate:    r.ShipmentDate.Time,
		Comment:         r.Comment,
		DocumentAmount:  r.DocumentAmount.Decimal,
		Lines:           make([]trade.OrderLine, 0, len(r.Inventory)),
	}
	for _, l := range r.Inventory {
		o.Lines = append(o.Lines, trade.OrderLine{
			Product:        fromObjectID(l.Product),
			Characteristic: fromObjectID(l.Characteristic),
			Quantity:       l.Quantity.Decimal,
			Price:          l.Price.Decimal,
			DiscountRate:   l.DiscountRate.Decimal,
			Amount:         l.Amount.Decimal,
			Comment:        l.Comment,
		})
	}
	return o
}

func orderToRecord(o *trade.Order) orderRecord {
	r := orderRecord{
		Type:            "XTSOrder",
		ObjectID:        selfID(o.Ref, shared.TypeOrder),
		Date:            xts.NewTime(o.Date),
		Number:          o.Number,
		Posted:          o.Posted,
		Customer:        toObjectID(o.Customer),
		Contract:        toObjectID(o.Contract),
		Company:         toObjectID(o.Company),
		Department:      toObjectID(o.Department),
		Currency:        toObjectID(o.Currency),
		PriceKind:       toObjectID(o.PriceKind),
		OrderState:      toObjectID(o.OrderState),
		Employee:        toObjectID(o.Employee),
		DeliveryAddress: o.DeliveryAddress,
		ShipmentDate:    xts.NewTime(o.ShipmentDate),
		Comment:         o.Comment,
		DocumentAmount:  xts.NewDecimal(o.DocumentAmount),
		Inventory:       make([]orderLineRecord, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		r.Inventory = append(r.Inventory, orderLineRecord{
			Type:           "XTSOrderProductRow",
			Product:        toObjectID(l.Product),
			Characteristic: toObjectID(l.Characteristic),
			Quantity:       xts.NewDecimal(l.Quantity),
			Price:          xts.NewDecimal(l.Price),
			DiscountRate:   xts.NewDecimal(l.DiscountRate),
			Amount:         xts.NewDecimal(l.Amount),
			Comment:        l.Comment,
		})
	}
	return r
}

// XTSOrderRepository implements trade.OrderRepository over the endpoint.
type XTSOrderRepository struct {
	xtsRepository[trade.Order, orderRecord]
}

// NewXTSOrderRepository creates an order repository.
func NewXTSOrderRepository(client xts.Caller) *XTSOrderRepository {
	return &XTSOrderRepository{xtsRepository[trade.Order, orderRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeOrder, searchField: "number", defaultSort: "date", defaultDesc: true},
		toDomain: orderFromRecord,
		toWire:   orderToRecord,
	}}
}

type stateRecord struct {
	ObjectID    xts.ObjectID `json:"objectId"`
	Description string       `json:"description"`
}

// XTSOrderStateRepository lists order status records.
type XTSOrderStateRepository struct {
	client xts.Caller
}

// NewXTSOrderStateRepository creates an order state repository.
func NewXTSOrderStateRepository(client xts.Caller) *XTSOrderStateRepository {
	return &XTSOrderStateRepository{client: client}
}

// List returns one page of order statuses.
func (r *XTSOrderStateRepository) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[shared.Ref], error) {
	req := buildListRequest(listSpec{dataType: shared.TypeOrderState}, q)
	res, err := xts.GetList[stateRecord](ctx, r.client, req)
	if err != nil {
		return shared.PageResult[shared.Ref]{}, translateError(err)
	}
	out := make([]shared.Ref, 0, len(res.Objects))
	for _, s := range res.Objects {
		ref := fromObjectID(s.ObjectID)
		if ref.Presentation == "" {
			ref.Presentation = s.Description
		}
		out = append(out, ref)
	}
	return shared.NewPageResult(out, res.Total, q), nil
}

// ListStates returns every order status, walking as many pages as it takes.
func (r *XTSOrderStateRepository) ListStates(ctx context.Context) ([]shared.Ref, error) {
	states, _, err := shared.Collect[shared.Ref](ctx, r, shared.ListQuery{PageSize: shared.MaxPageSize}, 0)
	if err != nil {
		return nil, err
	}
	return states, nil
}

var (
	_ trade.OrderRepository      = (*XTSOrderRepository)(nil)
	_ trade.OrderStateRepository = (*XTSOrderStateRepository)(nil)
)
