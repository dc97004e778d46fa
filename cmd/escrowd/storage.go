package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/ledger/bolt"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/ledger/memory"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/notify"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/repository/clickhouse"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/service"
	"github.com/goodnatureofminers/escrow7000-backend/internal/metrics"
	"github.com/goodnatureofminers/escrow7000-backend/pkg/batcher"
)

type storage struct {
	ledger service.Ledger
	state  service.StateStore
	// events is set only for backends that persist notifications.
	events notify.EventWriter
	batch  batcher.Options
	close  func() error
}

func openStorage(ctx context.Context, backend string, logger *zap.Logger) (storage, error) {
	switch backend {
	case "memory":
		return storage{
			ledger: memory.NewLedger(),
			state:  memory.NewStateStore(),
			close:  func() error { return nil },
		}, nil
	case "bolt":
		store, err := bolt.Open(config.BoltPath, nil)
		if err != nil {
			return storage{}, err
		}
		logger.Info("Using bolt ledger", zap.String("path", config.BoltPath))
		return storage{ledger: store, state: store, close: store.Close}, nil
	case "clickhouse":
		if config.ClickhouseDSN == "" {
			return storage{}, errors.New("--clickhouse-dsn is required for the clickhouse ledger")
		}
		repo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return storage{}, err
		}
		if err := repo.WaitReady(ctx, 10, 2*time.Second, logger.Named("clickhouse")); err != nil {
			_ = repo.Close()
			return storage{}, err
		}
		return storage{
			ledger: repo,
			state:  repo,
			events: repo,
			batch: batcher.Options{
				FlushSize:     500,
				FlushInterval: 2 * time.Second,
				RPS:           5,
				MaxAttempts:   5,
				RetryBackoff:  500 * time.Millisecond,
			},
			close: repo.Close,
		}, nil
	default:
		return storage{}, fmt.Errorf("unsupported ledger %q", backend)
	}
}
