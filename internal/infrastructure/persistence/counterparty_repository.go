package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/partner"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

type counterpartyRecord struct {
	Type        string       `json:"_type"`
	ObjectID    xts.ObjectID `json:"objectId"`
	Code        string       `json:"code"`
	Description string       `json:"description"`
	TaxCode     string       `json:"tin"`
	Phone       string       `json:"phone"`
	Email       string       `json:"email"`
	Address     string       `json:"address"`
	IsCustomer  bool         `json:"customer"`
	IsSupplier  bool         `json:"supplier"`
}

func counterpartyFromRecord(r counterpartyRecord) partner.Counterparty {
	return partner.Counterparty{
		Ref:         fromObjectID(r.ObjectID),
		Code:        r.Code,
		Description: r.Description,
		TaxCode:     r.TaxCode,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address,
		IsCustomer:  r.IsCustomer,
		IsSupplier:  r.IsSupplier,
	}
}

// XTSCounterpartyRepository lists counterparties. The back office never
// edits them, so it has no write side.
type XTSCounterpartyRepository struct {
	reader xtsRepository[partner.Counterparty, counterpartyRecord]
}

// NewXTSCounterpartyRepository creates a counterparty repository.
func NewXTSCounterpartyRepository(client xts.Caller) *XTSCounterpartyRepository {
	return &XTSCounterpartyRepository{reader: xtsRepository[partner.Counterparty, counterpartyRecord]{
		client:   client,
		spec:     listSpec{dataType: shared.TypeCounterparty, searchField: "description", defaultSort: "description"},
		toDomain: counterpartyFromRecord,
	}}
}

// List fetches one page of counterparties.
func (r *XTSCounterpartyRepository) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[partner.Counterparty], error) {
	return r.reader.List(ctx, q)
}

// FindByID loads one counterparty.
func (r *XTSCounterpartyRepository) FindByID(ctx context.Context, id string) (*partner.Counterparty, error) {
	return r.reader.FindByID(ctx, id)
}

var _ partner.CounterpartyRepository = (*XTSCounterpartyRepository)(nil)
