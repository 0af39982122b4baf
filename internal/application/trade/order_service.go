package trade

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// orderSortFields maps API sort keys onto order properties.
var orderSortFields = map[string]string{
	"date":   "date",
	"number": "number",
	"amount": "documentAmount",
}

// OrderService handles order list, form and workflow operations
type OrderService struct {
	orders trade.OrderRepository
	states trade.OrderStateRepository
	now    func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(orders trade.OrderRepository, states trade.OrderStateRepository) *OrderService {
	return &OrderService{orders: orders, states: states, now: time.Now}
}

// List returns one page of orders.
func (s *OrderService) List(ctx context.Context, q shared.ListQuery, f OrderFilter) (shared.PageResult[OrderResponse], error) {
	page, err := s.orders.List(ctx, s.query(q, f))
	if err != nil {
		return shared.PageResult[OrderResponse]{}, err
	}
	return shared.MapPage(page, ToOrderListResponse), nil
}

// Collect returns up to max orders matching the filter, walking pages.
func (s *OrderService) Collect(ctx context.Context, q shared.ListQuery, f OrderFilter, max int) ([]trade.Order, bool, error) {
	q = s.query(q, f)
	q.Page, q.PageSize = 1, shared.MaxPageSize
	return shared.Collect[trade.Order](ctx, s.orders, q, max)
}

func (s *OrderService) query(q shared.ListQuery, f OrderFilter) shared.ListQuery {
	for _, c := range f.conditions() {
		q = q.WithCondition(c)
	}
	if field, ok := orderSortFields[q.SortBy]; ok {
		q.SortBy = field
	} else {
		q.SortBy, q.SortDesc = "", false
	}
	return q
}

// GetByID returns the order with its derived stage.
func (s *OrderService) GetByID(ctx context.Context, id string) (*OrderResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Preview validates the form and returns the order that would be sent,
// without calling the accounting service. id is empty for a new order.
func (s *OrderService) Preview(ctx context.Context, id string, in OrderInput) (*OrderResponse, error) {
	order, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// Create validates the form and creates the order.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*OrderResponse, error) {
	order, err := s.build(ctx, "", in)
	if err != nil {
		return nil, err
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("order created",
		zap.String("order_id", created.ID),
		zap.String("number", created.Number),
	)
	return ToOrderResponse(created), nil
}

// Update replaces the whole order with the form contents.
func (s *OrderService) Update(ctx context.Context, id string, in OrderInput) (*OrderResponse, error) {
	order, err := s.build(ctx, id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("order updated", zap.String("order_id", updated.ID))
	return ToOrderResponse(updated), nil
}

// AdvanceStage moves the order to the next stage by pointing it at a status
// whose label derives to that stage.
func (s *OrderService) AdvanceStage(ctx context.Context, id string) (*OrderResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := order.Stage()
	next, ok := current.Next()
	if !ok {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "Order is already delivered")
	}

	states, err := s.states.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	target, found := findState(states, next)
	if !found {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("No order status is configured for stage %s", next))
	}

	order.OrderState = target
	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("order stage advanced",
		zap.String("order_id", id),
		zap.String("from", string(current)),
		zap.String("to", string(next)),
	)
	return ToOrderResponse(updated), nil
}

// findState picks the status for stage: a status carrying the stage's own
// label first, then any status whose label names the stage.
func findState(states []shared.Ref, stage trade.OrderStage) (shared.Ref, bool) {
	for _, st := range states {
		if stage.IsCanonicalLabel(st.Presentation) {
			return st, true
		}
	}
	for _, st := range states {
		if stage.MatchesLabel(st.Presentation) {
			return st, true
		}
	}
	return shared.Ref{}, false
}

// build validates in and maps it onto an order. Nothing is sent upstream.
func (s *OrderService) build(ctx context.Context, id string, in OrderInput) (*trade.Order, error) {
	if id != "" {
		if err := validation.ID("id", id); err != nil {
			return nil, err
		}
		// a full replace must carry the document date
		if in.Date == nil {
			return nil, shared.NewValidationError("date", "date: This field is required")
		}
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	defaults := identity.DefaultsFromContext(ctx)
	order := &trade.Order{
		Ref:             shared.NewRef(shared.TypeOrder, id),
		Number:          in.Number,
		Date:            s.now(),
		Posted:          in.Posted,
		Customer:        shared.NewRef(shared.TypeCounterparty, in.CustomerID),
		Contract:        shared.NewRef(shared.TypeContract, in.ContractID),
		Company:         shared.NewRef(shared.TypeCompany, in.CompanyID).Or(defaults.Company),
		Department:      shared.NewRef(shared.TypeDepartment, in.DepartmentID).Or(defaults.Department),
		Currency:        shared.NewRef(shared.TypeCurrency, in.CurrencyID).Or(defaults.Currency),
		PriceKind:       shared.NewRef(shared.TypePriceKind, in.PriceKindID).Or(defaults.PriceKind),
		OrderState:      shared.NewRef(shared.TypeOrderState, in.OrderStateID),
		Employee:        shared.NewRef(shared.TypeEmployee, in.EmployeeID).Or(defaults.Employee),
		DeliveryAddress: in.DeliveryAddress,
		Comment:         in.Comment,
		Lines:           make([]trade.OrderLine, 0, len(in.Lines)),
	}
	if in.Date != nil {
		order.Date = *in.Date
	}
	if in.ShipmentDate != nil {
		order.ShipmentDate = *in.ShipmentDate
	}
	for _, l := range in.Lines {
		order.Lines = append(order.Lines, trade.OrderLine{
			Product:        shared.NewRef(shared.TypeProduct, l.ProductID),
			Characteristic: shared.NewRef(shared.TypeCharacteristic, l.CharacteristicID),
			Quantity:       l.Quantity,
			Price:          l.Price,
			DiscountRate:   l.DiscountRate,
			Comment:        l.Comment,
		})
	}
	order.Recalculate()
	if !order.DocumentAmount.IsPositive() {
		return nil, shared.NewValidationError("lines", "lines: Order amount must be greater than 0")
	}
	return order, nil
}
