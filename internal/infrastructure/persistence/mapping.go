package persistence

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/xts"
)

func toObjectID(r shared.Ref) xts.ObjectID {
	return xts.NewObjectID(r.DataType, r.ID, r.Presentation)
}

func fromObjectID(o xts.ObjectID) shared.Ref {
	return shared.Ref{ID: o.ID, DataType: o.DataType, Presentation: o.Presentation}
}

// selfID returns the record's own reference, stamping the data type when the
// caller left it empty.
func selfID(r shared.Ref, dataType string) xts.ObjectID {
	if r.DataType == "" {
		r.DataType = dataType
	}
	return toObjectID(r)
}

func conditionValue(v any) any {
	switch val := v.(type) {
	case shared.Ref:
		return toObjectID(val)
	case *shared.Ref:
		if val == nil {
			return nil
		}
		return toObjectID(*val)
	case time.Time:
		return xts.NewTime(val)
	case decimal.Decimal:
		return xts.NewDecimal(val)
	default:
		return v
	}
}

func toConditions(conds []shared.Condition) []xts.Condition {
	if len(conds) == 0 {
		return nil
	}
	out := make([]xts.Condition, 0, len(conds))
	for _, c := range conds {
		out = append(out, xts.Condition{
			Property:           c.Property,
			ComparisonOperator: c.Operator,
			Value:              conditionValue(c.Value),
		})
	}
	return out
}

// listSpec describes how a data type is searched and ordered.
type listSpec struct {
	dataType    string
	searchField string
	defaultSort string
	defaultDesc bool
	columns     []string
}

// buildListRequest turns a page query into a list envelope.
func buildListRequest(spec listSpec, q shared.ListQuery) *xts.GetObjectListRequest {
	q = q.Normalize()
	req := xts.NewGetObjectListRequest(spec.dataType, q.Offset(), q.PageSize)
	req.ColumnSet = spec.columns

	conds := q.Conditions
	if q.Search != "" && spec.searchField != "" {
		conds = q.WithCondition(shared.Contains(spec.searchField, q.Search)).Conditions
	}
	req.Conditions = toConditions(conds)

	field, desc := spec.defaultSort, spec.defaultDesc
	if q.SortBy != "" {
		field, desc = q.SortBy, q.SortDesc
	}
	if field != "" {
		dir := xts.SortAscending
		if desc {
			dir = xts.SortDescending
		}
		req.SortBy = []xts.SortBy{{DataField: field, Direction: dir}}
	}
	return req
}

// translateError maps client errors onto domain errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var remote *xts.RemoteError
	switch {
	case errors.Is(err, xts.ErrNotFound):
		return shared.ErrNotFound.WithCause(err)
	case errors.Is(err, xts.ErrUnauthorized):
		return shared.ErrSessionExpired.WithCause(err)
	case errors.As(err, &remote):
		de := shared.ErrUpstream.WithCause(err)
		if remote.Description != "" {
			de.Message = remote.Description
		}
		return de
	case errors.Is(err, xts.ErrInvalidResponse):
		return shared.ErrUpstream.WithCause(err)
	case errors.Is(err, xts.ErrUnavailable):
		return shared.ErrUnavailable.WithCause(err)
	default:
		return err
	}
}
