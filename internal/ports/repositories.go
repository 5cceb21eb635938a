package ports

import (
	"context"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
)

// PizzaRepository is the read-only catalog lookup.
type PizzaRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Pizza, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Pizza, error)
	List(ctx context.Context) ([]domain.Pizza, error)
}

// OrderRepository persists orders. Create must write the order and all of its
// items as a single atomic unit: on any failure no row is ever visible.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	// ListNewestFirst returns orders in creation-time descending order. The
	// ordering is contractual: clients rely on it for recent-orders views.
	ListNewestFirst(ctx context.Context) ([]domain.Order, error)
}
