package partner

import (
	"context"

	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/shared"
)

// Counterparty roles accepted by the lookup list.
const (
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
)

// CounterpartyResponse represents a counterparty in lookup lists
type CounterpartyResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	TaxCode     string `json:"tax_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	IsCustomer  bool   `json:"is_customer"`
	IsSupplier  bool   `json:"is_supplier"`
}

// ToCounterpartyResponse converts a counterparty to its response
func ToCounterpartyResponse(c partner.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		ID:          c.ID,
		Code:        c.Code,
		Description: c.Description,
		TaxCode:     c.TaxCode,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		IsCustomer:  c.IsCustomer,
		IsSupplier:  c.IsSupplier,
	}
}

// CounterpartyService serves the customer and supplier lookup lists
type CounterpartyService struct {
	repo partner.CounterpartyRepository
}

// NewCounterpartyService creates a new CounterpartyService
func NewCounterpartyService(repo partner.CounterpartyRepository) *CounterpartyService {
	return &CounterpartyService{repo: repo}
}

// List returns one page of counterparties. role narrows the list to
// customers or suppliers; any other value lists everyone.
func (s *CounterpartyService) List(ctx context.Context, q shared.ListQuery, role string) (shared.PageResult[CounterpartyResponse], error) {
	switch role {
	case RoleCustomer:
		q = q.WithCondition(shared.Eq("customer", true))
	case RoleSupplier:
		q = q.WithCondition(shared.Eq("supplier", true))
	}
	if q.SortBy != "description" && q.SortBy != "code" {
		q.SortBy = ""
	}
	page, err := s.repo.List(ctx, q)
	if err != nil {
		return shared.PageResult[CounterpartyResponse]{}, err
	}
	return shared.MapPage(page, ToCounterpartyResponse), nil
}
