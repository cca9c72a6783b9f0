// Package storage implements the local record store: two SQLite-backed
// collections (categories, orders) with auto-incrementing ids, whole-record
// updates, idempotent deletes and an indexed range query over order
// creation time. Each exported operation runs as a single transaction; the
// engine guarantees per-statement atomicity, nothing coordinates across
// collections.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"hobu/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open creates (if needed), migrates and opens the database at dbPath. It
// must complete before any other operation is used; failures wrap
// ErrStoreUnavailable.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %v", ErrStoreUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", ErrStoreUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", ErrStoreUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrNotInitialized
	}
	return nil
}

// AddCategory inserts a category draft and returns the assigned id. Ids are
// strictly increasing and never reused.
func (s *Store) AddCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, color) VALUES (?, ?)`, c.Name, c.Color)
	if err != nil {
		return 0, writeFailed("insert category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeFailed("insert category", err)
	}

	slog.InfoContext(ctx, "Category saved", "id", id, "name", c.Name)
	return id, nil
}

// Categories returns every category in store-internal order.
func (s *Store) Categories(ctx context.Context) ([]core.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM categories`)
	if err != nil {
		return nil, readFailed("select categories", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, readFailed("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, readFailed("iterate categories", err)
	}
	return out, nil
}

// UpdateCategory replaces the stored record wholesale. A missing id is not
// an error: the record is inserted under the given id (upsert-or-replace).
func (s *Store) UpdateCategory(ctx context.Context, c core.Category) error {
	if err := s.ready(); err != nil {
		return err
	}
	if c.ID <= 0 {
		return writeFailed("update category", fmt.Errorf("record has no id"))
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO categories (id, name, color) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Color)
	if err != nil {
		return writeFailed("update category", err)
	}
	return nil
}

// DeleteCategory removes a category by id. Deleting an unknown id succeeds
// silently; orders referencing the category are left untouched.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return writeFailed("delete category", err)
	}
	return nil
}

// AddOrder inserts an order draft and returns the assigned id.
func (s *Store) AddOrder(ctx context.Context, o core.Order) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (created_at, category_id, amount, note, type) VALUES (?, ?, ?, ?, ?)`,
		o.CreatedAt, o.CategoryID, o.Amount.Cents, o.Note, string(o.Type))
	if err != nil {
		return 0, writeFailed("insert order", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, writeFailed("insert order", err)
	}

	slog.InfoContext(ctx, "Order saved",
		"id", id,
		"category_id", o.CategoryID,
		"amount_cents", o.Amount.Cents,
		"type", string(o.Type))
	return id, nil
}

// Orders returns every order in store-internal order.
func (s *Store) Orders(ctx context.Context) ([]core.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.scanOrders(ctx, `SELECT id, created_at, category_id, amount, note, type FROM orders`, nil, core.Filter{})
}

// UpdateOrder replaces the stored record wholesale, with the same
// upsert-or-replace semantics as UpdateCategory.
func (s *Store) UpdateOrder(ctx context.Context, o core.Order) error {
	if err := s.ready(); err != nil {
		return err
	}
	if o.ID <= 0 {
		return writeFailed("update order", fmt.Errorf("record has no id"))
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO orders (id, created_at, category_id, amount, note, type) VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.CreatedAt, o.CategoryID, o.Amount.Cents, o.Note, string(o.Type))
	if err != nil {
		return writeFailed("update order", err)
	}
	return nil
}

// DeleteOrder removes an order by id. Hard delete, idempotent.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return writeFailed("delete order", err)
	}
	return nil
}

// QueryOrders resolves a filter against the orders collection. A date range
// becomes an inclusive scan over the created_at index (ascending); the
// category predicate is applied in memory while the cursor is walked. An
// empty filter returns all orders in store-internal order; a from after to
// yields an empty result, not an error.
func (s *Store) QueryOrders(ctx context.Context, filter core.Filter) ([]core.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT id, created_at, category_id, amount, note, type FROM orders`
	var args []any
	if filter.CreatedAt != nil {
		bounds, err := filter.CreatedAt.Bounds()
		if err != nil {
			return nil, readFailed("resolve date range", err)
		}
		var conds []string
		if bounds.HasFrom {
			conds = append(conds, `created_at >= ?`)
			args = append(args, bounds.From)
		}
		if bounds.HasTo {
			conds = append(conds, `created_at <= ?`)
			args = append(args, bounds.To)
		}
		for i, c := range conds {
			if i == 0 {
				query += ` WHERE ` + c
			} else {
				query += ` AND ` + c
			}
		}
		query += ` ORDER BY created_at ASC`
	}

	return s.scanOrders(ctx, query, args, filter)
}

func (s *Store) scanOrders(ctx context.Context, query string, args []any, filter core.Filter) ([]core.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readFailed("select orders", err)
	}
	defer rows.Close()

	var out []core.Order
	for rows.Next() {
		var o core.Order
		var typ string
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.CategoryID, &o.Amount.Cents, &o.Note, &typ); err != nil {
			return nil, readFailed("scan order", err)
		}
		o.Type = core.OrderType(typ)
		if !filter.MatchesCategory(o) {
			continue
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, readFailed("iterate orders", err)
	}
	return out, nil
}
