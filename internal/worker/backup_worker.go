// Package worker maintains an on-device JSON snapshot of the ledger. It is
// driven by change events from AMQP and by a periodic timer, so a missed
// event only delays the snapshot until the next tick.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"hobu/internal/amqp"
	"hobu/internal/core"
	"hobu/internal/storage"
)

const snapshotFile = "ledger-backup.json"

// Snapshot is the full exported state of the ledger.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Categories []core.Category `json:"categories"`
	Orders     []core.Order    `json:"orders"`
}

// Backup reads the store and writes snapshots into a directory.
type Backup struct {
	store *storage.Store
	dir   string
}

func NewBackup(store *storage.Store, dir string) *Backup {
	return &Backup{
		store: store,
		dir:   dir,
	}
}

// HandleChange processes one change event by re-snapshotting. The event
// only says that something changed; the store is the source of truth.
func (b *Backup) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	slog.InfoContext(ctx, "Processing change event",
		"entity", msg.Entity,
		"action", msg.Action,
		"id", msg.ID)
	return b.WriteSnapshot(ctx)
}

// WriteSnapshot exports the full ledger state atomically: the snapshot is
// written to a temp file and renamed over the previous one, so readers
// never observe a partial backup.
func (b *Backup) WriteSnapshot(ctx context.Context) error {
	categories, err := b.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("read categories: %w", err)
	}
	orders, err := b.store.Orders(ctx)
	if err != nil {
		return fmt.Errorf("read orders: %w", err)
	}

	snap := Snapshot{
		ExportedAt: time.Now().UTC(),
		Categories: categories,
		Orders:     orders,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, snapshotFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(b.dir, snapshotFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot written",
		"path", filepath.Join(b.dir, snapshotFile),
		"categories", len(categories),
		"orders", len(orders))
	return nil
}

// SnapshotPath returns where the current snapshot lives.
func (b *Backup) SnapshotPath() string {
	return filepath.Join(b.dir, snapshotFile)
}
