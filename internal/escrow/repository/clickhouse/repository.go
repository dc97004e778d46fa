// Package clickhouse stores the escrow transaction table, service state and
// notification log in ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/clock"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Repository is safe for concurrent reads. Writes assume a single writer, which the
// escrow service guarantees by serializing mutating calls.
type Repository struct {
	conn    clickhouse.Conn
	metrics Metrics

	mu           sync.Mutex
	stateVersion uint64
}

func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("clickhouse repository metrics is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

// WaitReady pings ClickHouse until it answers, the attempts run out or ctx ends.
func (r *Repository) WaitReady(ctx context.Context, attempts int, backoff time.Duration, logger *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = r.conn.Ping(ctx); err == nil {
			return nil
		}
		logger.Warn("clickhouse not ready",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Error(err))
		if sleepErr := clock.SleepWithContext(ctx, backoff); sleepErr != nil {
			return sleepErr
		}
	}
	return fmt.Errorf("clickhouse not ready after %d attempts: %w", attempts, err)
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}
