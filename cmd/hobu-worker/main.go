package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"hobu/internal/amqp"
	"hobu/internal/cli"
	applog "hobu/internal/log"
	"hobu/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.InitStore(logger, cfg.SQLiteDBPath)
	defer store.Close()

	backup := worker.NewBackup(store, cfg.BackupDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Snapshot on startup so a fresh worker always leaves a backup behind,
	// even if no change event ever arrives.
	if err := backup.WriteSnapshot(ctx); err != nil {
		logger.Error("Startup snapshot failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		g.Go(func() error {
			return amqp.ConsumeChangesWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
				func(msg *amqp.ChangeMessage) error {
					return backup.HandleChange(ctx, msg)
				})
		})
	} else {
		logger.Info("AMQP disabled, relying on periodic snapshots only")
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.BackupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := backup.WriteSnapshot(ctx); err != nil {
					logger.Error("Periodic snapshot failed", "error", err)
				}
			}
		}
	})

	logger.Info("Starting hobu-worker",
		"backup_dir", cfg.BackupDir,
		"backup_interval", cfg.BackupInterval.String(),
		"amqp_enabled", cfg.AMQPURL != "")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		return
	}
	logger.Info("Worker stopped gracefully")
}
