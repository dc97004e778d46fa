// Package notify delivers escrow events to observers: an in-memory log, the
// process logger and a batched ClickHouse sink.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

// Log keeps every event in emission order.
type Log struct {
	mu     sync.RWMutex
	events []model.Event
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Notify(_ context.Context, event model.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns a copy of the log.
func (l *Log) Events() []model.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Event, len(l.events))
	copy(out, l.events)
	return out
}

// ForTransaction returns the events of one transaction in emission order.
func (l *Log) ForTransaction(id uint64) []model.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []model.Event
	for _, event := range l.events {
		if event.TransactionID == id {
			out = append(out, event)
		}
	}
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Logger writes each event to a zap logger.
type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.Named("events")}
}

func (l *Logger) Notify(_ context.Context, event model.Event) {
	fields := []zap.Field{
		zap.String("event_id", event.ID.String()),
		zap.Uint64("sequence", event.Sequence),
		zap.Uint64("id", event.TransactionID),
	}
	if event.Type == model.EventEscrowCreated {
		fields = append(fields,
			zap.String("buyer", string(event.Buyer)),
			zap.String("seller", string(event.Seller)),
			zap.Uint64("amount", event.Amount))
	}
	if event.ItemHash != nil {
		fields = append(fields, zap.Stringer("item_hash", event.ItemHash))
	}
	if event.DisputeResolved != nil {
		fields = append(fields, zap.Bool("dispute_resolved", *event.DisputeResolved))
	}
	l.logger.Info(string(event.Type), fields...)
}

// Fanout delivers every event to each notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, event model.Event) {
	for _, n := range f {
		n.Notify(ctx, event)
	}
}
