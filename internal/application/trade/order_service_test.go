package trade

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
)

const (
	orderID    = "0b7c2c1e-3f0a-4c55-9d7e-0f3b1c2a4d11"
	customerID = "5d1e0c3a-77b2-4e0c-a4f8-29f1d3b6c8e2"
	productID  = "a3f9e1b2-6c4d-4b8a-9e2f-7d5c1b0a3e94"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[trade.Order], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PageResult[trade.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *trade.Order) (*trade.Order, error) {
	args := m.Called(ctx, o)
	return orderResult(ctx, o, args)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *trade.Order) (*trade.Order, error) {
	args := m.Called(ctx, o)
	return orderResult(ctx, o, args)
}

// orderResult supports returning either a fixed order or a function of the
// order that was sent.
func orderResult(ctx context.Context, o *trade.Order, args mock.Arguments) (*trade.Order, error) {
	switch v := args.Get(0).(type) {
	case func(context.Context, *trade.Order) *trade.Order:
		return v(ctx, o), args.Error(1)
	case *trade.Order:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockOrderStateRepository is a mock implementation of trade.OrderStateRepository
type MockOrderStateRepository struct {
	mock.Mock
}

func (m *MockOrderStateRepository) ListStates(ctx context.Context) ([]shared.Ref, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.Ref), args.Error(1)
}

func validInput() OrderInput {
	return OrderInput{
		CustomerID: customerID,
		Lines: []OrderLineInput{
			{ProductID: productID, Quantity: decimal.NewFromInt(2), Price: decimal.RequireFromString("150.25")},
		},
	}
}

func TestOrderService_Create(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	sess := &identity.Session{Defaults: identity.Defaults{
		Company:  shared.Ref{ID: "co", DataType: shared.TypeCompany},
		Currency: shared.Ref{ID: "vnd", DataType: shared.TypeCurrency},
	}}
	ctx := identity.WithSession(context.Background(), sess)

	repo.On("Create", ctx, mock.MatchedBy(func(o *trade.Order) bool {
		return o.Customer.ID == customerID &&
			o.Company.ID == "co" &&
			o.Currency.ID == "vnd" &&
			o.DocumentAmount.Equal(decimal.RequireFromString("300.5"))
	})).Return(func(_ context.Context, o *trade.Order) *trade.Order {
		cp := *o
		cp.ID = orderID
		cp.Number = "ORD-1"
		return &cp
	}, nil)

	resp, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, orderID, resp.ID)
	assert.Equal(t, "ORD-1", resp.Number)
	assert.Equal(t, string(trade.StageEditing), resp.Stage)
	assert.Equal(t, string(trade.StagePreparing), resp.NextStage)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), resp.Date)
	require.Len(t, resp.Lines, 1)
	assert.True(t, decimal.RequireFromString("300.5").Equal(resp.Lines[0].Amount))
	repo.AssertExpectations(t)
}

func TestOrderService_Create_EmptyCustomerNeverCallsCreate(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	in := validInput()
	in.CustomerID = ""

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "customer_id", de.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_Create_RejectsInvalidLines(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*OrderInput)
		field string
	}{
		{"no lines", func(in *OrderInput) { in.Lines = nil }, "lines"},
		{"zero quantity", func(in *OrderInput) { in.Lines[0].Quantity = decimal.Zero }, "lines[0].quantity"},
		{"negative price", func(in *OrderInput) { in.Lines[0].Price = decimal.NewFromInt(-1) }, "lines[0].price"},
		{"missing product", func(in *OrderInput) { in.Lines[0].ProductID = "" }, "lines[0].product_id"},
		{"zero total", func(in *OrderInput) { in.Lines[0].Price = decimal.Zero }, "lines"},
		{"bad contract id", func(in *OrderInput) { in.ContractID = "x" }, "contract_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			svc := NewOrderService(repo, new(MockOrderStateRepository))
			in := validInput()
			tt.edit(&in)

			_, err := svc.Create(context.Background(), in)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, shared.CodeInvalidInput, de.Code)
			assert.Equal(t, tt.field, de.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_Update_RequiresDate(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	_, err := svc.Update(context.Background(), orderID, validInput())
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "date", de.Field)

	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	in := validInput()
	in.Date = &date
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.ID == orderID && o.Date.Equal(date)
	})).Return(func(_ context.Context, o *trade.Order) *trade.Order { return o }, nil)

	resp, err := svc.Update(context.Background(), orderID, in)
	require.NoError(t, err)
	assert.Equal(t, orderID, resp.ID)
	repo.AssertExpectations(t)
}

func TestOrderService_Preview_DoesNotCallUpstream(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	resp, err := svc.Preview(context.Background(), "", validInput())
	require.NoError(t, err)
	assert.Empty(t, resp.ID)
	assert.True(t, decimal.RequireFromString("300.5").Equal(resp.DocumentAmount))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_List(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := shared.ListQuery{Page: 2, Search: "ORD", SortBy: "amount", SortDesc: true}
	f := OrderFilter{CustomerID: customerID, DateFrom: from}

	page := shared.NewPageResult([]trade.Order{
		{Ref: shared.Ref{ID: orderID}, Number: "ORD-7", OrderState: shared.Ref{Presentation: "Đã giao"}},
	}, 41, shared.ListQuery{Page: 2})

	repo.On("List", mock.Anything, mock.MatchedBy(func(got shared.ListQuery) bool {
		return got.Page == 2 &&
			got.Search == "ORD" &&
			got.SortBy == "documentAmount" && got.SortDesc &&
			len(got.Conditions) == 2 &&
			got.Conditions[0].Property == "customer" &&
			got.Conditions[1].Operator == shared.OpGreaterEqual
	})).Return(page, nil)

	res, err := svc.List(context.Background(), q, f)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, string(trade.StageDelivered), res.Items[0].Stage)
	assert.Empty(t, res.Items[0].NextStage)
	assert.Nil(t, res.Items[0].Lines)
	assert.True(t, res.HasMore)
	repo.AssertExpectations(t)
}

func TestOrderService_List_UnknownSortFallsBack(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	repo.On("List", mock.Anything, mock.MatchedBy(func(got shared.ListQuery) bool {
		return got.SortBy == "" && !got.SortDesc
	})).Return(shared.NewPageResult[trade.Order](nil, 0, shared.ListQuery{}), nil)

	_, err := svc.List(context.Background(), shared.ListQuery{SortBy: "password", SortDesc: true}, OrderFilter{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_AdvanceStage(t *testing.T) {
	repo := new(MockOrderRepository)
	states := new(MockOrderStateRepository)
	svc := NewOrderService(repo, states)

	order := &trade.Order{
		Ref:        shared.Ref{ID: orderID, DataType: shared.TypeOrder},
		Customer:   shared.Ref{ID: customerID},
		OrderState: shared.Ref{ID: "s1", Presentation: "Đang soạn thảo"},
	}
	preparing := shared.Ref{ID: "s2", DataType: shared.TypeOrderState, Presentation: "Đang chuẩn bị"}

	repo.On("FindByID", mock.Anything, orderID).Return(order, nil)
	states.On("ListStates", mock.Anything).Return([]shared.Ref{
		{ID: "s1", Presentation: "Đang soạn thảo"},
		preparing,
		{ID: "s3", Presentation: "Đã giao"},
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.OrderState == preparing
	})).Return(func(_ context.Context, o *trade.Order) *trade.Order { return o }, nil)

	resp, err := svc.AdvanceStage(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, string(trade.StagePreparing), resp.Stage)
	assert.Equal(t, string(trade.StageDelivered), resp.NextStage)
	repo.AssertExpectations(t)
	states.AssertExpectations(t)
}

func TestOrderService_AdvanceStage_SkipsNegatedStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	states := new(MockOrderStateRepository)
	svc := NewOrderService(repo, states)

	order := &trade.Order{
		Ref:        shared.Ref{ID: orderID, DataType: shared.TypeOrder},
		Customer:   shared.Ref{ID: customerID},
		OrderState: shared.Ref{ID: "s2", Presentation: "Đang chuẩn bị"},
	}
	done := shared.Ref{ID: "s4", DataType: shared.TypeOrderState, Presentation: "Hoàn thành"}

	repo.On("FindByID", mock.Anything, orderID).Return(order, nil)
	states.On("ListStates", mock.Anything).Return([]shared.Ref{
		{ID: "s1", Presentation: "Mới"},
		{ID: "s2", Presentation: "Đang chuẩn bị"},
		{ID: "s3", Presentation: "Chưa hoàn thành"},
		done,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.OrderState == done
	})).Return(func(_ context.Context, o *trade.Order) *trade.Order { return o }, nil)

	resp, err := svc.AdvanceStage(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, string(trade.StageDelivered), resp.Stage)
	repo.AssertExpectations(t)
}

func TestOrderService_AdvanceStage_PrefersCanonicalLabel(t *testing.T) {
	repo := new(MockOrderRepository)
	states := new(MockOrderStateRepository)
	svc := NewOrderService(repo, states)

	delivered := shared.Ref{ID: "s9", DataType: shared.TypeOrderState, Presentation: "Đã giao"}
	repo.On("FindByID", mock.Anything, orderID).Return(&trade.Order{
		Ref:        shared.Ref{ID: orderID, DataType: shared.TypeOrder},
		Customer:   shared.Ref{ID: customerID},
		OrderState: shared.Ref{ID: "s2", Presentation: "Preparing"},
	}, nil)
	states.On("ListStates", mock.Anything).Return([]shared.Ref{
		{ID: "s8", Presentation: "Closed"},
		delivered,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.OrderState == delivered
	})).Return(func(_ context.Context, o *trade.Order) *trade.Order { return o }, nil)

	_, err := svc.AdvanceStage(context.Background(), orderID)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_AdvanceStage_NegatedCurrentStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	states := new(MockOrderStateRepository)
	svc := NewOrderService(repo, states)

	preparing := shared.Ref{ID: "s2", DataType: shared.TypeOrderState, Presentation: "Đang chuẩn bị"}
	repo.On("FindByID", mock.Anything, orderID).Return(&trade.Order{
		Ref:        shared.Ref{ID: orderID, DataType: shared.TypeOrder},
		Customer:   shared.Ref{ID: customerID},
		OrderState: shared.Ref{ID: "s3", Presentation: "Chưa hoàn thành"},
	}, nil)
	states.On("ListStates", mock.Anything).Return([]shared.Ref{preparing}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.OrderState == preparing
	})).Return(func(_ context.Context, o *trade.Order) *trade.Order { return o }, nil)

	_, err := svc.AdvanceStage(context.Background(), orderID)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestOrderService_AdvanceStage_Delivered(t *testing.T) {
	repo := new(MockOrderRepository)
	states := new(MockOrderStateRepository)
	svc := NewOrderService(repo, states)

	repo.On("FindByID", mock.Anything, orderID).Return(&trade.Order{
		Ref:        shared.Ref{ID: orderID},
		OrderState: shared.Ref{Presentation: "Delivered"},
	}, nil)

	_, err := svc.AdvanceStage(context.Background(), orderID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	states.AssertNotCalled(t, "ListStates", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_AdvanceStage_NoMatchingState(t *testing.T) {
	repo := new(MockOrderRepository)
	states := new(MockOrderStateRepository)
	svc := NewOrderService(repo, states)

	repo.On("FindByID", mock.Anything, orderID).Return(&trade.Order{Ref: shared.Ref{ID: orderID}}, nil)
	states.On("ListStates", mock.Anything).Return([]shared.Ref{{ID: "s1", Presentation: "Mới"}}, nil)

	_, err := svc.AdvanceStage(context.Background(), orderID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_GetByID(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	_, err := svc.GetByID(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	repo.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)
	_, err = svc.GetByID(context.Background(), orderID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_Collect(t *testing.T) {
	repo := new(MockOrderRepository)
	svc := NewOrderService(repo, new(MockOrderStateRepository))

	first := make([]trade.Order, shared.MaxPageSize)
	second := make([]trade.Order, 30)
	repo.On("List", mock.Anything, mock.MatchedBy(func(q shared.ListQuery) bool { return q.Page == 1 })).
		Return(shared.NewPageResult(first, 130, shared.ListQuery{Page: 1, PageSize: shared.MaxPageSize}), nil)
	repo.On("List", mock.Anything, mock.MatchedBy(func(q shared.ListQuery) bool { return q.Page == 2 })).
		Return(shared.NewPageResult(second, 130, shared.ListQuery{Page: 2, PageSize: shared.MaxPageSize}), nil)

	all, truncated, err := svc.Collect(context.Background(), shared.ListQuery{}, OrderFilter{}, 500)
	require.NoError(t, err)
	assert.Len(t, all, 130)
	assert.False(t, truncated)

	some, truncated, err := svc.Collect(context.Background(), shared.ListQuery{}, OrderFilter{}, 50)
	require.NoError(t, err)
	assert.Len(t, some, 50)
	assert.True(t, truncated)
}
