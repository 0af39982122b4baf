package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/catalog"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

// CurrencyService handles currency catalog operations
type CurrencyService struct {
	repo catalog.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(repo catalog.CurrencyRepository) *CurrencyService {
	return &CurrencyService{repo: repo}
}

// List returns one page of currencies
func (s *CurrencyService) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[CurrencyResponse], error) {
	q.SortBy = sortField(q.SortBy, "code", "description")
	page, err := s.repo.List(ctx, q)
	if err != nil {
		return shared.PageResult[CurrencyResponse]{}, err
	}
	return shared.MapPage(page, ToCurrencyResponse), nil
}

// GetByID returns a currency
func (s *CurrencyService) GetByID(ctx context.Context, id string) (*CurrencyResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCurrencyResponse(*c)
	return &resp, nil
}

// Preview validates the form and returns the currency that would be sent.
func (s *CurrencyService) Preview(_ context.Context, id string, in CurrencyInput) (*CurrencyResponse, error) {
	if err := validation.OptionalID("id", id); err != nil {
		return nil, err
	}
	c, err := buildCurrency(id, in)
	if err != nil {
		return nil, err
	}
	resp := ToCurrencyResponse(*c)
	return &resp, nil
}

// Create creates a currency
func (s *CurrencyService) Create(ctx context.Context, in CurrencyInput) (*CurrencyResponse, error) {
	c, err := buildCurrency("", in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("currency created", zap.String("code", created.Code))
	resp := ToCurrencyResponse(*created)
	return &resp, nil
}

// Update replaces the whole currency
func (s *CurrencyService) Update(ctx context.Context, id string, in CurrencyInput) (*CurrencyResponse, error) {
	if err := validation.ID("id", id); err != nil {
		return nil, err
	}
	c, err := buildCurrency(id, in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	resp := ToCurrencyResponse(*updated)
	return &resp, nil
}

func buildCurrency(id string, in CurrencyInput) (*catalog.Currency, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	multiplicity := in.Multiplicity
	if multiplicity == 0 {
		multiplicity = 1
	}
	return &catalog.Currency{
		Ref:          shared.NewRef(shared.TypeCurrency, id),
		Code:         strings.ToUpper(in.Code),
		Description:  in.Description,
		Symbol:       in.Symbol,
		Rate:         in.Rate,
		Multiplicity: multiplicity,
	}, nil
}

// sortField accepts key when it is one of allowed and clears it otherwise.
func sortField(key string, allowed ...string) string {
	for _, a := range allowed {
		if key == a {
			return key
		}
	}
	return ""
}
