package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	tradeapp "github.com/erp/backoffice/internal/application/trade"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/domain/trade"
	"github.com/erp/backoffice/internal/infrastructure/export"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) GetByID(ctx context.Context, id string) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*tradeapp.OrderResponse)
	return out, args.Error(1)
}

func (m *mockOrderService) Preview(ctx context.Context, id string, in tradeapp.OrderInput) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id, in)
	out, _ := args.Get(0).(*tradeapp.OrderResponse)
	return out, args.Error(1)
}

func (m *mockOrderService) Create(ctx context.Context, in tradeapp.OrderInput) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*tradeapp.OrderResponse)
	return out, args.Error(1)
}

func (m *mockOrderService) Update(ctx context.Context, id string, in tradeapp.OrderInput) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id, in)
	out, _ := args.Get(0).(*tradeapp.OrderResponse)
	return out, args.Error(1)
}

func (m *mockOrderService) List(ctx context.Context, q shared.ListQuery, f tradeapp.OrderFilter) (shared.PageResult[tradeapp.OrderResponse], error) {
	args := m.Called(ctx, q, f)
	return args.Get(0).(shared.PageResult[tradeapp.OrderResponse]), args.Error(1)
}

func (m *mockOrderService) Collect(ctx context.Context, q shared.ListQuery, f tradeapp.OrderFilter, max int) ([]trade.Order, bool, error) {
	args := m.Called(ctx, q, f, max)
	orders, _ := args.Get(0).([]trade.Order)
	return orders, args.Bool(1), args.Error(2)
}

func (m *mockOrderService) AdvanceStage(ctx context.Context, id string) (*tradeapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*tradeapp.OrderResponse)
	return out, args.Error(1)
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := new(mockOrderService)
		svc.On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(f tradeapp.OrderFilter) bool {
			return f.CustomerID == testID &&
				f.DateFrom.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)) &&
				f.DateTo.Equal(time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.Local))
		})).Return(shared.NewPageResult([]tradeapp.OrderResponse{}, 0, shared.ListQuery{}), nil)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodGet,
			"/api/v1/orders?customer_id="+testID+"&date_from=2024-03-01&date_to=2024-03-31", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, string(mustJSON(t, decode(t, w).Data)))
		svc.AssertExpectations(t)
	})

	t.Run("rejects a malformed customer id", func(t *testing.T) {
		svc := new(mockOrderService)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodGet, "/api/v1/orders?customer_id=42", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "customer_id", decode(t, w).Error.Field)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		svc := new(mockOrderService)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodGet, "/api/v1/orders?date_from=31.03.2024", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, shared.CodeInvalidInput, decode(t, w).Error.Code)
	})
}

func TestOrderHandler_Export(t *testing.T) {
	t.Run("answers a workbook", func(t *testing.T) {
		svc := new(mockOrderService)
		orders := []trade.Order{{
			Ref:    shared.NewRef(shared.TypeOrder, testID),
			Number: "DH-0001",
			Date:   time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		}}
		svc.On("Collect", mock.Anything, mock.Anything, mock.Anything, 10).Return(orders, false, nil)

		w := serve(newTestEngine(NewOrderHandler(svc, 10)), http.MethodGet, "/api/v1/orders/export", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")
		assert.Empty(t, w.Header().Get("X-Export-Truncated"))
		assert.NotZero(t, w.Body.Len())
		svc.AssertExpectations(t)
	})

	t.Run("flags a truncated export", func(t *testing.T) {
		svc := new(mockOrderService)
		svc.On("Collect", mock.Anything, mock.Anything, mock.Anything, DefaultExportLimit).Return([]trade.Order{}, true, nil)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodGet, "/api/v1/orders/export", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Export-Truncated"))
	})

	t.Run("upstream failure", func(t *testing.T) {
		svc := new(mockOrderService)
		svc.On("Collect", mock.Anything, mock.Anything, mock.Anything, DefaultExportLimit).Return(nil, false, shared.ErrUnavailable)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodGet, "/api/v1/orders/export", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestOrderHandler_Advance(t *testing.T) {
	t.Run("advances", func(t *testing.T) {
		svc := new(mockOrderService)
		svc.On("AdvanceStage", mock.Anything, testID).Return(&tradeapp.OrderResponse{ID: testID, Number: "DH-0001"}, nil)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodPost, "/api/v1/orders/"+testID+"/advance", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"number":"DH-0001"`)
	})

	t.Run("last stage", func(t *testing.T) {
		svc := new(mockOrderService)
		svc.On("AdvanceStage", mock.Anything, testID).Return(nil, shared.ErrInvalidState)

		w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodPost, "/api/v1/orders/"+testID+"/advance", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestOrderHandler_CreateRequiresLines(t *testing.T) {
	svc := new(mockOrderService)

	w := serve(newTestEngine(NewOrderHandler(svc, 0)), http.MethodPost, "/api/v1/orders",
		map[string]any{"customer_id": testID, "lines": []any{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "lines", decode(t, w).Error.Field)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
