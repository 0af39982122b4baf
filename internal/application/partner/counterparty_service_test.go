package partner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/shared"
)

// MockCounterpartyRepository is a mock implementation of partner.CounterpartyRepository
type MockCounterpartyRepository struct {
	mock.Mock
}

func (m *MockCounterpartyRepository) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[partner.Counterparty], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(shared.PageResult[partner.Counterparty]), args.Error(1)
}

func (m *MockCounterpartyRepository) FindByID(ctx context.Context, id string) (*partner.Counterparty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Counterparty), args.Error(1)
}

func TestCounterpartyService_List(t *testing.T) {
	tests := []struct {
		role  string
		conds []shared.Condition
	}{
		{"", nil},
		{RoleCustomer, []shared.Condition{shared.Eq("customer", true)}},
		{RoleSupplier, []shared.Condition{shared.Eq("supplier", true)}},
		{"other", nil},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			repo := new(MockCounterpartyRepository)
			svc := NewCounterpartyService(repo)

			repo.On("List", mock.Anything, mock.MatchedBy(func(q shared.ListQuery) bool {
				return q.Search == "an" && assert.ObjectsAreEqual(tt.conds, q.Conditions)
			})).Return(shared.NewPageResult([]partner.Counterparty{
				{Ref: shared.Ref{ID: "c1"}, Description: "Công ty An Phát", IsCustomer: true},
			}, 1, shared.ListQuery{}), nil)

			page, err := svc.List(context.Background(), shared.ListQuery{Search: "an"}, tt.role)
			require.NoError(t, err)
			require.Len(t, page.Items, 1)
			assert.Equal(t, "Công ty An Phát", page.Items[0].Description)
			assert.True(t, page.Items[0].IsCustomer)
			repo.AssertExpectations(t)
		})
	}
}

func TestCounterpartyService_ListError(t *testing.T) {
	repo := new(MockCounterpartyRepository)
	svc := NewCounterpartyService(repo)

	repo.On("List", mock.Anything, mock.Anything).
		Return(shared.PageResult[partner.Counterparty]{}, shared.ErrUnavailable)

	_, err := svc.List(context.Background(), shared.ListQuery{}, "")
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}
