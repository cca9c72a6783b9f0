package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"hobu/internal/amqp"
	"hobu/internal/core"
	"hobu/internal/storage"
)

func TestWriteSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := storage.Open(filepath.Join(dir, "hobu.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	catID, err := store.AddCategory(ctx, core.Category{Name: "Food", Color: "#ff0000"})
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := store.AddOrder(ctx, core.Order{
		CreatedAt:  1700000000000,
		CategoryID: catID,
		Amount:     core.Money{Cents: 1234},
		Note:       "lunch",
		Type:       core.Credit,
	}); err != nil {
		t.Fatalf("add order: %v", err)
	}

	backupDir := filepath.Join(dir, "backups")
	b := NewBackup(store, backupDir)

	if err := b.HandleChange(ctx, amqp.NewChangeMessage("order", "created", 1)); err != nil {
		t.Fatalf("handle change: %v", err)
	}

	data, err := os.ReadFile(b.SnapshotPath())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Categories) != 1 || snap.Categories[0].Name != "Food" {
		t.Fatalf("snapshot categories mismatch: %+v", snap.Categories)
	}
	if len(snap.Orders) != 1 || snap.Orders[0].Amount.Cents != 1234 {
		t.Fatalf("snapshot orders mismatch: %+v", snap.Orders)
	}
	if snap.ExportedAt.IsZero() {
		t.Fatalf("exported_at must be set")
	}

	// A second snapshot replaces the first without leaving temp files behind.
	if err := b.WriteSnapshot(ctx); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single snapshot file, got %d entries", len(entries))
	}
}
