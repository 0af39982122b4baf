package shared

import "context"

// Reader lists and loads records of one type.
type Reader[T any] interface {
	List(ctx context.Context, q ListQuery) (PageResult[T], error)
	FindByID(ctx context.Context, id string) (*T, error)
}

// Writer creates and replaces records of one type. Updates always carry the
// full record; there is no partial patch and no delete.
type Writer[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, entity *T) (*T, error)
}

// Repository is the read/write surface every document and catalog exposes.
type Repository[T any] interface {
	Reader[T]
	Writer[T]
}

// Lister is anything that can list pages of T.
type Lister[T any] interface {
	List(ctx context.Context, q ListQuery) (PageResult[T], error)
}

// Collect walks pages of q until the list is exhausted or max records have
// been read. truncated reports that records remained past max.
func Collect[T any](ctx context.Context, l Lister[T], q ListQuery, max int) (items []T, truncated bool, err error) {
	q = q.Normalize()
	for {
		if err := ctx.Err(); err != nil {
			return items, false, err
		}
		page, err := l.List(ctx, q)
		if err != nil {
			return items, false, err
		}
		items = append(items, page.Items...)
		if max > 0 && len(items) >= max {
			truncated = len(items) > max || page.HasMore
			return items[:max], truncated, nil
		}
		if !page.HasMore || len(page.Items) == 0 {
			return items, false, nil
		}
		q.Page++
	}
}
