package http

import (
	"context"

	"hobu/internal/core"
)

// CategoryStore is the category side of the ledger consumed by handlers.
type CategoryStore interface {
	AddCategory(ctx context.Context, c core.Category) (int64, error)
	Categories(ctx context.Context) ([]core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// OrderStore is the order side of the ledger consumed by handlers.
type OrderStore interface {
	AddOrder(ctx context.Context, o core.Order) (int64, error)
	Orders(ctx context.Context) ([]core.Order, error)
	QueryOrders(ctx context.Context, filter core.Filter) ([]core.Order, error)
	UpdateOrder(ctx context.Context, o core.Order) error
	DeleteOrder(ctx context.Context, id int64) error
}
