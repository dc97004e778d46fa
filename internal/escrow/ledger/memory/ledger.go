// Package memory keeps the transaction table and service state in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

// Ledger stores records in a dense slice where id N lives at index N-1.
type Ledger struct {
	mu      sync.RWMutex
	records []model.Transaction
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Get returns the record for id and whether it exists.
func (l *Ledger) Get(_ context.Context, id uint64) (model.Transaction, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if id == 0 || id > uint64(len(l.records)) {
		return model.Transaction{}, false, nil
	}
	return l.records[id-1], true, nil
}

// InsertNext assigns the next sequential id, starting at 1.
func (l *Ledger) InsertNext(_ context.Context, tx model.Transaction) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uint64(len(l.records)) + 1
	tx.ID = id
	l.records = append(l.records, tx)
	return id, nil
}

// Update overwrites an existing record in place.
func (l *Ledger) Update(_ context.Context, id uint64, tx model.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == 0 || id > uint64(len(l.records)) {
		return fmt.Errorf("update escrow %d: no such record", id)
	}
	tx.ID = id
	l.records[id-1] = tx
	return nil
}

// Count returns the number of stored records.
func (l *Ledger) Count(_ context.Context) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return uint64(len(l.records)), nil
}

// Scan calls fn for every record with an id in [from, to], in id order. The range is
// copied first so fn may call back into the ledger.
func (l *Ledger) Scan(ctx context.Context, from, to uint64, fn func(model.Transaction) error) error {
	if from == 0 {
		from = 1
	}

	l.mu.RLock()
	if last := uint64(len(l.records)); to > last {
		to = last
	}
	var records []model.Transaction
	if from <= to {
		records = append(records, l.records[from-1:to]...)
	}
	l.mu.RUnlock()

	for _, tx := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			return err
		}
	}
	return nil
}
