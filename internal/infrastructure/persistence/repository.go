package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

// xtsRepository implements shared.Repository for one data type over the
// accounting service endpoint. D is the domain type, W its wire record.
type xtsRepository[D any, W any] struct {
	client   xts.Caller
	spec     listSpec
	toDomain func(W) D
	toWire   func(*D) W
}

// List fetches one page.
func (r *xtsRepository[D, W]) List(ctx context.Context, q shared.ListQuery) (shared.PageResult[D], error) {
	res, err := xts.GetList[W](ctx, r.client, buildListRequest(r.spec, q))
	if err != nil {
		return shared.PageResult[D]{}, translateError(err)
	}
	items := make([]D, 0, len(res.Objects))
	for _, w := range res.Objects {
		items = append(items, r.toDomain(w))
	}
	return shared.NewPageResult(items, res.Total, q), nil
}

// FindByID loads one record.
func (r *xtsRepository[D, W]) FindByID(ctx context.Context, id string) (*D, error) {
	if id == "" {
		return nil, shared.ErrNotFound
	}
	w, err := xts.GetObject[W](ctx, r.client, xts.NewObjectID(r.spec.dataType, id, ""))
	if err != nil {
		return nil, translateError(err)
	}
	d := r.toDomain(*w)
	return &d, nil
}

// Create sends a new record and returns what the service stored.
func (r *xtsRepository[D, W]) Create(ctx context.Context, entity *D) (*D, error) {
	w, err := xts.CreateObject(ctx, r.client, r.toWire(entity))
	if err != nil {
		return nil, translateError(err)
	}
	d := r.toDomain(*w)
	return &d, nil
}

// Update replaces the full record.
func (r *xtsRepository[D, W]) Update(ctx context.Context, entity *D) (*D, error) {
	w, err := xts.UpdateObject(ctx, r.client, r.toWire(entity))
	if err != nil {
		return nil, translateError(err)
	}
	d := r.toDomain(*w)
	return &d, nil
}
