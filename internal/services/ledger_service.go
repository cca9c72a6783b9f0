// Package services orchestrates store writes with best-effort change-event
// publication. The store is always the source of truth: a failed publish is
// logged, never surfaced to the caller.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"hobu/internal/core"
	"hobu/internal/storage"
)

// ChangePublisher publishes a change notification after a successful write.
// The AMQP client implements it; a nil publisher disables events entirely.
type ChangePublisher interface {
	PublishChange(ctx context.Context, entity, action string, id int64) error
	Close() error
}

// Ledger exposes the category and order operations consumed by the HTTP
// layer, wiring the record store to the optional event pipeline.
type Ledger struct {
	store     *storage.Store
	publisher ChangePublisher
}

func NewLedger(store *storage.Store, publisher ChangePublisher) *Ledger {
	return &Ledger{
		store:     store,
		publisher: publisher,
	}
}

func (l *Ledger) AddCategory(ctx context.Context, c core.Category) (int64, error) {
	id, err := l.store.AddCategory(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("add category: %w", err)
	}
	l.publish(ctx, "category", "created", id)
	return id, nil
}

func (l *Ledger) Categories(ctx context.Context) ([]core.Category, error) {
	return l.store.Categories(ctx)
}

func (l *Ledger) UpdateCategory(ctx context.Context, c core.Category) error {
	if err := l.store.UpdateCategory(ctx, c); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	l.publish(ctx, "category", "updated", c.ID)
	return nil
}

func (l *Ledger) DeleteCategory(ctx context.Context, id int64) error {
	if err := l.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	l.publish(ctx, "category", "deleted", id)
	return nil
}

func (l *Ledger) AddOrder(ctx context.Context, o core.Order) (int64, error) {
	id, err := l.store.AddOrder(ctx, o)
	if err != nil {
		return 0, fmt.Errorf("add order: %w", err)
	}
	l.publish(ctx, "order", "created", id)
	return id, nil
}

func (l *Ledger) Orders(ctx context.Context) ([]core.Order, error) {
	return l.store.Orders(ctx)
}

func (l *Ledger) QueryOrders(ctx context.Context, filter core.Filter) ([]core.Order, error) {
	return l.store.QueryOrders(ctx, filter)
}

func (l *Ledger) UpdateOrder(ctx context.Context, o core.Order) error {
	if err := l.store.UpdateOrder(ctx, o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	l.publish(ctx, "order", "updated", o.ID)
	return nil
}

func (l *Ledger) DeleteOrder(ctx context.Context, id int64) error {
	if err := l.store.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	l.publish(ctx, "order", "deleted", id)
	return nil
}

func (l *Ledger) publish(ctx context.Context, entity, action string, id int64) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishChange(ctx, entity, action, id); err != nil {
		// The write already committed locally; the backup pipeline catches
		// up on its next periodic snapshot.
		slog.ErrorContext(ctx, "Failed to publish change event",
			"entity", entity,
			"action", action,
			"id", id,
			"error", err)
	}
}

// Close closes the store and the publisher.
func (l *Ledger) Close() error {
	var errs []error

	if l.store != nil {
		if err := l.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if l.publisher != nil {
		if err := l.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger: %v", errs)
	}
	return nil
}
