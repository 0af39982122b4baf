package shared

import "time"

const (
	// DefaultPageSize is the fixed window used by list views.
	DefaultPageSize = 20
	// MaxPageSize caps caller-supplied page sizes.
	MaxPageSize = 100
	// MaxPage keeps (Page-1)*PageSize far from overflow.
	MaxPage = 1_000_000
)

// Comparison operators understood by the accounting service.
const (
	OpEqual        = "="
	OpNotEqual     = "<>"
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
	OpContains     = "contains"
	OpIn           = "in"
)

// Condition is a single filter clause on a record property.
type Condition struct {
	Property string
	Operator string
	Value    any
}

// Eq builds an equality condition.
func Eq(property string, value any) Condition {
	return Condition{Property: property, Operator: OpEqual, Value: value}
}

// Contains builds a substring condition.
func Contains(property, value string) Condition {
	return Condition{Property: property, Operator: OpContains, Value: value}
}

// ListQuery describes one page of a list view.
type ListQuery struct {
	Page       int
	PageSize   int
	Search     string
	Conditions []Condition
	SortBy     string
	SortDesc   bool
}

// Normalize clamps paging values into range.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the zero-based position of the first record on the page.
func (q ListQuery) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PageSize
}

// WithCondition returns a copy of q with c appended.
func (q ListQuery) WithCondition(c Condition) ListQuery {
	conds := make([]Condition, 0, len(q.Conditions)+1)
	conds = append(conds, q.Conditions...)
	q.Conditions = append(conds, c)
	return q
}

// PeriodConditions filters a date property to [from, to]. Zero bounds are open.
func PeriodConditions(property string, from, to time.Time) []Condition {
	var conds []Condition
	if !from.IsZero() {
		conds = append(conds, Condition{Property: property, Operator: OpGreaterEqual, Value: from})
	}
	if !to.IsZero() {
		conds = append(conds, Condition{Property: property, Operator: OpLessEqual, Value: to})
	}
	return conds
}

// PageResult is one page of records plus enough to decide whether to fetch the next.
type PageResult[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
	HasMore  bool
}

// NewPageResult builds a page result. HasMore is true when records remain past this page.
func NewPageResult[T any](items []T, total int64, q ListQuery) PageResult[T] {
	q = q.Normalize()
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
		HasMore:  int64(q.Offset()+len(items)) < total,
	}
}

// TotalPages returns the number of pages at the current page size.
func (p PageResult[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	pages := int(p.Total) / p.PageSize
	if int(p.Total)%p.PageSize > 0 {
		pages++
	}
	return pages
}

// MapPage converts the items of a page, keeping the paging fields.
func MapPage[T, U any](p PageResult[T], f func(T) U) PageResult[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, f(it))
	}
	return PageResult[U]{
		Items:    items,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  p.HasMore,
	}
}
