package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/clock"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
	"github.com/goodnatureofminers/escrow7000-backend/pkg/workerpool"
)

// unlockedAuditAttempts bounds how often Audit scans without the lock before
// falling back to a scan under the read lock.
const unlockedAuditAttempts = 3

// Audit checks that vault custody equals the amount held for open escrows plus the
// fee balance. The ledger is scanned outside the service lock so writers keep going;
// a scan raced by a write is discarded and retried.
func (s *EscrowService) Audit(ctx context.Context, workers int) (model.AuditReport, error) {
	for attempt := 1; attempt <= unlockedAuditAttempts; attempt++ {
		report, consistent, err := s.auditUnlocked(ctx, workers)
		if err != nil {
			return model.AuditReport{}, fmt.Errorf("audit: %w", err)
		}
		if consistent {
			return report, nil
		}
		s.logger.Debug("audit raced a write, rescanning", zap.Int("attempt", attempt))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, err := s.snapshot(ctx)
	if err != nil {
		return model.AuditReport{}, fmt.Errorf("audit: %w", err)
	}
	report, err := s.scanSnapshot(ctx, snap, workers)
	if err != nil {
		return model.AuditReport{}, fmt.Errorf("audit: %w", err)
	}
	return report, nil
}

type auditSnapshot struct {
	epoch      uint64
	count      uint64
	feeBalance uint64
	held       uint64
}

func (s *EscrowService) auditUnlocked(ctx context.Context, workers int) (model.AuditReport, bool, error) {
	s.mu.RLock()
	snap, err := s.snapshot(ctx)
	s.mu.RUnlock()
	if err != nil {
		return model.AuditReport{}, false, err
	}

	report, err := s.scanSnapshot(ctx, snap, workers)
	if err != nil {
		return model.AuditReport{}, false, err
	}

	s.mu.RLock()
	consistent := s.epoch == snap.epoch
	s.mu.RUnlock()
	return report, consistent, nil
}

// snapshot must run under the service lock.
func (s *EscrowService) snapshot(ctx context.Context) (auditSnapshot, error) {
	count, err := s.ledger.Count(ctx)
	if err != nil {
		return auditSnapshot{}, fmt.Errorf("count escrows: %w", err)
	}
	held, err := s.vault.Held(ctx)
	if err != nil {
		return auditSnapshot{}, fmt.Errorf("vault balance: %w", err)
	}
	return auditSnapshot{
		epoch:      s.epoch,
		count:      count,
		feeBalance: s.state.FeeBalance,
		held:       held,
	}, nil
}

func (s *EscrowService) scanSnapshot(ctx context.Context, snap auditSnapshot, workers int) (model.AuditReport, error) {
	byState, open, err := scanLedger(ctx, s.ledger, snap.count, workers)
	if err != nil {
		return model.AuditReport{}, err
	}
	return model.AuditReport{
		Transactions: snap.count,
		ByState:      byState,
		OpenAmount:   open,
		FeeBalance:   snap.feeBalance,
		Held:         snap.held,
		Balanced:     snap.held == open+snap.feeBalance,
	}, nil
}

// Liabilities returns what custody must hold for the persisted ledger: the amounts of
// every open escrow plus the fee balance. It is used to seed a vault on startup.
func Liabilities(ctx context.Context, ledger Ledger, store StateStore, workers int) (uint64, error) {
	count, err := ledger.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("liabilities: count escrows: %w", err)
	}
	_, open, err := scanLedger(ctx, ledger, count, workers)
	if err != nil {
		return 0, fmt.Errorf("liabilities: %w", err)
	}
	state, _, err := store.LoadState(ctx)
	if err != nil {
		return 0, fmt.Errorf("liabilities: load service state: %w", err)
	}
	if open > math.MaxUint64-state.FeeBalance {
		return 0, fmt.Errorf("liabilities: open amount %d plus fee balance %d overflows", open, state.FeeBalance)
	}
	return open + state.FeeBalance, nil
}

type idRange struct {
	from, to uint64
}

// splitIDs cuts [1, count] into at most parts contiguous ranges.
func splitIDs(count uint64, parts int) []idRange {
	if count == 0 {
		return nil
	}
	n := uint64(1)
	if parts > 1 {
		n = uint64(parts)
	}
	if n > count {
		n = count
	}

	size, rem := count/n, count%n
	ranges := make([]idRange, 0, n)
	from := uint64(1)
	for i := uint64(0); i < n; i++ {
		to := from + size - 1
		if i < rem {
			to++
		}
		ranges = append(ranges, idRange{from: from, to: to})
		from = to + 1
	}
	return ranges
}

// scanLedger reads ids 1..count, one range scan per worker, and tallies states and
// the amount still held for open escrows.
func scanLedger(ctx context.Context, ledger Ledger, count uint64, workers int) (map[model.State]uint64, uint64, error) {
	var (
		mu      sync.Mutex
		byState = make(map[model.State]uint64)
		open    uint64
	)
	err := workerpool.Process(ctx, workers, splitIDs(count, workers), func(ctx context.Context, r idRange) error {
		var (
			seen      uint64
			rangeOpen uint64
			states    = make(map[model.State]uint64)
		)
		err := ledger.Scan(ctx, r.from, r.to, func(tx model.Transaction) error {
			seen++
			states[tx.State]++
			if !tx.State.Terminal() {
				rangeOpen += tx.Amount
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan escrows %d..%d: %w", r.from, r.to, err)
		}
		if want := r.to - r.from + 1; seen != want {
			return fmt.Errorf("escrows %d..%d: %d of %d records missing from ledger", r.from, r.to, want-seen, want)
		}

		mu.Lock()
		defer mu.Unlock()
		for state, n := range states {
			byState[state] += n
		}
		open += rangeOpen
		return nil
	}, nil)
	if err != nil {
		return nil, 0, err
	}
	return byState, open, nil
}

// Auditor runs custody audits on a fixed interval.
type Auditor struct {
	source   Auditable
	metrics  AuditMetrics
	logger   *zap.Logger
	interval time.Duration
	workers  int
	sleep    func(context.Context, time.Duration) error
}

// NewAuditor builds an Auditor over source.
func NewAuditor(source Auditable, metrics AuditMetrics, interval time.Duration, workers int, logger *zap.Logger) (*Auditor, error) {
	if source == nil {
		return nil, errors.New("audit source is required")
	}
	if metrics == nil {
		return nil, errors.New("audit metrics is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("audit interval must be positive, got %s", interval)
	}
	return &Auditor{
		source:   source,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		workers:  workers,
		sleep:    clock.SleepWithContext,
	}, nil
}

// Run audits until the context is canceled. Failed audits are logged and retried on the next tick.
func (a *Auditor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.run(ctx)
		if err := a.sleep(ctx, a.interval); err != nil {
			return err
		}
	}
}

func (a *Auditor) run(ctx context.Context) {
	started := time.Now()
	report, err := a.source.Audit(ctx, a.workers)
	a.metrics.ObserveAudit(report, err, started)
	if err != nil {
		a.logger.Error("custody audit failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.Uint64("transactions", report.Transactions),
		zap.Stringer("open_amount", btcutil.Amount(report.OpenAmount)),
		zap.Stringer("fee_balance", btcutil.Amount(report.FeeBalance)),
		zap.Stringer("held", btcutil.Amount(report.Held)),
	}
	if !report.Balanced {
		a.logger.Warn("custody out of balance", fields...)
		return
	}
	a.logger.Debug("custody audit passed", fields...)
}
