package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
	"github.com/goodnatureofminers/escrow7000-backend/pkg/safe"
)

const serviceStateName = "service"

// LoadState returns the most recent service state row.
func (r *Repository) LoadState(ctx context.Context) (state model.ServiceState, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("load_state", err, start)
	}()

	const query = `
SELECT
	argMax(escrow_duration_ns, version),
	argMax(escrow_fee, version),
	argMax(fee_balance, version),
	max(version),
	count()
FROM escrow_service_state
WHERE name = ?`

	rows, err := r.conn.Query(ctx, query, serviceStateName)
	if err != nil {
		return model.ServiceState{}, false, fmt.Errorf("query service state: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return model.ServiceState{}, false, fmt.Errorf("service state aggregate not found")
	}

	var (
		duration int64
		fee      uint64
		balance  uint64
		version  uint64
		count    uint64
	)
	if err = rows.Scan(&duration, &fee, &balance, &version, &count); err != nil {
		return model.ServiceState{}, false, fmt.Errorf("scan service state: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.ServiceState{}, false, fmt.Errorf("iterate service state: %w", err)
	}
	if count == 0 {
		return model.ServiceState{}, false, nil
	}

	r.mu.Lock()
	if version > r.stateVersion {
		r.stateVersion = version
	}
	r.mu.Unlock()

	return model.ServiceState{
		Config: model.Config{
			EscrowDuration: time.Duration(duration),
			EscrowFee:      fee,
		},
		FeeBalance: balance,
	}, true, nil
}

// SaveState appends a new state version.
func (r *Repository) SaveState(ctx context.Context, state model.ServiceState) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_state", err, start)
	}()

	version, err := r.nextStateVersion(time.Now())
	if err != nil {
		return err
	}

	batch, err := r.conn.PrepareBatch(ctx, `
INSERT INTO escrow_service_state (
	name,
	escrow_duration_ns,
	escrow_fee,
	fee_balance,
	version
) VALUES`)
	if err != nil {
		return fmt.Errorf("prepare service state batch: %w", err)
	}
	if err = batch.Append(
		serviceStateName,
		int64(state.Config.EscrowDuration),
		state.Config.EscrowFee,
		state.FeeBalance,
		version,
	); err != nil {
		return fmt.Errorf("append service state: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert service state: %w", err)
	}
	return nil
}

// nextStateVersion returns a version strictly above every version seen by this
// repository, preferring wall-clock nanoseconds so restarts keep increasing.
func (r *Repository) nextStateVersion(now time.Time) (uint64, error) {
	wall, err := safe.Uint64(now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("state version: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	version := r.stateVersion + 1
	if wall > version {
		version = wall
	}
	r.stateVersion = version
	return version, nil
}
