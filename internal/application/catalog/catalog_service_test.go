package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
)

const itemID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

// MockRepository is a mock implementation of shared.Repository[T]
type MockRepository[T any] struct {
	mock.Mock
}

func (m *MockRepository[T]) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[T], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PageResult[T]), args.Error(1)
}

func (m *MockRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) Update(ctx context.Context, entity *T) (*T, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func TestCurrencyService_Create(t *testing.T) {
	repo := new(MockRepository[catalog.Currency])
	svc := NewCurrencyService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *catalog.Currency) bool {
		return c.Code == "USD" && c.Multiplicity == 1 && c.Description == "US Dollar"
	})).Return(&catalog.Currency{Ref: shared.Ref{ID: itemID}, Code: "USD", Description: "US Dollar"}, nil)

	resp, err := svc.Create(context.Background(), CurrencyInput{
		Code:        "usd",
		Description: "  US Dollar ",
		Rate:        decimal.RequireFromString("25450"),
	})
	require.NoError(t, err)
	assert.Equal(t, itemID, resp.ID)
	assert.Equal(t, "USD", resp.Code)
	repo.AssertExpectations(t)
}

func TestCurrencyService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    CurrencyInput
		field string
	}{
		{"missing code", CurrencyInput{Description: "Dong"}, "code"},
		{"short code", CurrencyInput{Code: "VN", Description: "Dong"}, "code"},
		{"digits in code", CurrencyInput{Code: "V1D", Description: "Dong"}, "code"},
		{"blank description", CurrencyInput{Code: "VND", Description: "   "}, "description"},
		{"negative rate", CurrencyInput{Code: "VND", Description: "Dong", Rate: decimal.NewFromInt(-1)}, "rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository[catalog.Currency])
			svc := NewCurrencyService(repo)

			_, err := svc.Create(context.Background(), tt.in)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCurrencyService_Update(t *testing.T) {
	repo := new(MockRepository[catalog.Currency])
	svc := NewCurrencyService(repo)

	_, err := svc.Update(context.Background(), "", CurrencyInput{Code: "VND", Description: "Dong"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *catalog.Currency) bool {
		return c.ID == itemID && c.DataType == shared.TypeCurrency
	})).Return(&catalog.Currency{Ref: shared.Ref{ID: itemID}, Code: "VND"}, nil)

	resp, err := svc.Update(context.Background(), itemID, CurrencyInput{Code: "VND", Description: "Dong"})
	require.NoError(t, err)
	assert.Equal(t, "VND", resp.Code)
	repo.AssertExpectations(t)
}

func TestCurrencyService_List(t *testing.T) {
	repo := new(MockRepository[catalog.Currency])
	svc := NewCurrencyService(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(q shared.ListQuery) bool {
		return q.Search == "do" && q.SortBy == ""
	})).Return(shared.NewPageResult([]catalog.Currency{{Code: "USD"}, {Code: "VND"}}, 2, shared.ListQuery{}), nil)

	page, err := svc.List(context.Background(), shared.ListQuery{Search: "do", SortBy: "rate"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Total)
}

func TestProductService_Create(t *testing.T) {
	repo := new(MockRepository[catalog.Product])
	svc := NewProductService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *catalog.Product) bool {
		return p.ProductType == ProductTypeInventoryItem &&
			p.Unit.IsZero() &&
			p.Price.Equal(decimal.RequireFromString("19.99"))
	})).Return(&catalog.Product{Ref: shared.Ref{ID: itemID}, Description: "Cà phê"}, nil)

	resp, err := svc.Create(context.Background(), ProductInput{
		Description: "Cà phê",
		Price:       decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, itemID, resp.ID)
	repo.AssertExpectations(t)
}

func TestProductService_Validation(t *testing.T) {
	repo := new(MockRepository[catalog.Product])
	svc := NewProductService(repo)

	_, err := svc.Create(context.Background(), ProductInput{Price: decimal.NewFromInt(1)})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "description", de.Field)

	_, err = svc.Create(context.Background(), ProductInput{Description: "Tea", Price: decimal.NewFromInt(-3)})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "price", de.Field)

	_, err = svc.Create(context.Background(), ProductInput{Description: "Tea", ProductType: "Gift"})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "product_type", de.Field)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_Preview(t *testing.T) {
	repo := new(MockRepository[catalog.Product])
	svc := NewProductService(repo)

	resp, err := svc.Preview(context.Background(), itemID, ProductInput{Description: "Tea", ProductType: ProductTypeService})
	require.NoError(t, err)
	assert.Equal(t, itemID, resp.ID)
	assert.Equal(t, ProductTypeService, resp.ProductType)

	_, err = svc.Preview(context.Background(), "bad", ProductInput{Description: "Tea"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
