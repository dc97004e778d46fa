package notify

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
	"github.com/goodnatureofminers/escrow7000-backend/pkg/batcher"
)

// Publisher queues events and writes them to an EventWriter in batches.
// Delivery is at-least-once; Event.ID is the deduplication key.
type Publisher struct {
	batcher  *batcher.Batcher[model.Event]
	logger   *zap.Logger
	rejected atomic.Uint64
}

func NewPublisher(writer EventWriter, opts batcher.Options, logger *zap.Logger) (*Publisher, error) {
	if writer == nil {
		return nil, errors.New("event writer is required")
	}
	if logger == nil {
		return nil, errors.New("publisher logger is required")
	}
	logger = logger.Named("publisher")

	b, err := batcher.New[model.Event](logger, writer.InsertEvents, opts)
	if err != nil {
		return nil, fmt.Errorf("init event batcher: %w", err)
	}
	return &Publisher{batcher: b, logger: logger}, nil
}

func (p *Publisher) Start(ctx context.Context) {
	p.batcher.Start(ctx)
}

// Stop flushes queued events and waits for the writer.
func (p *Publisher) Stop() {
	p.batcher.Stop()
}

// Notify never blocks or fails the caller. An event that cannot be queued right away
// is logged and counted as dropped.
func (p *Publisher) Notify(_ context.Context, event model.Event) {
	if err := p.batcher.TryAdd(event); err != nil {
		p.rejected.Add(1)
		p.logger.Error("event not queued",
			zap.String("event_id", event.ID.String()),
			zap.String("type", string(event.Type)),
			zap.Uint64("id", event.TransactionID),
			zap.Error(err))
	}
}

// Published reports how many events reached the writer.
func (p *Publisher) Published() uint64 {
	return p.batcher.Flushed()
}

// Dropped reports how many events were rejected by a full queue or abandoned after failed writes.
func (p *Publisher) Dropped() uint64 {
	return p.rejected.Load() + p.batcher.Dropped()
}
