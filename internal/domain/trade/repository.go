package trade

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
)

// OrderRepository reads and writes orders.
type OrderRepository interface {
	shared.Repository[Order]
}

// OrderStateRepository lists the status records orders can point at.
type OrderStateRepository interface {
	ListStates(ctx context.Context) ([]shared.Ref, error)
}
