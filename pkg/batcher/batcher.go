// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/escrow7000-backend/internal/clock"
)

var (
	// ErrStopped is returned by Add once Stop has been called.
	ErrStopped = errors.New("batcher stopped")
	// ErrFull is returned by TryAdd when the queue has no room.
	ErrFull = errors.New("batcher queue full")
)

// FlushFunc writes one batch. The slice is reused after the call returns.
type FlushFunc[T any] func(context.Context, []T) error

// Options tune flushing. Zero values fall back to the defaults below.
type Options struct {
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
	// MaxAttempts bounds flush retries for a single batch.
	MaxAttempts  int
	RetryBackoff time.Duration
}

const (
	defaultFlushSize     = 100
	defaultFlushInterval = time.Second
	defaultRPS           = 10
	defaultMaxAttempts   = 3
	defaultRetryBackoff  = 100 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.FlushSize <= 0 {
		o.FlushSize = defaultFlushSize
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = defaultFlushInterval
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.RetryBackoff < 0 {
		o.RetryBackoff = defaultRetryBackoff
	}
	return o
}

// Batcher buffers items and flushes them either by size or interval.
type Batcher[T any] struct {
	flush   FlushFunc[T]
	itemsCh chan T
	opts    Options
	rl      ratelimit.Limiter
	logger  *zap.Logger

	flushed atomic.Uint64
	dropped atomic.Uint64

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, flush FlushFunc[T], opts Options) (*Batcher[T], error) {
	if logger == nil {
		return nil, errors.New("batcher logger is required")
	}
	if flush == nil {
		return nil, errors.New("batcher flush func is required")
	}
	opts = opts.withDefaults()

	return &Batcher[T]{
		logger:  logger,
		flush:   flush,
		itemsCh: make(chan T, opts.FlushSize*2),
		opts:    opts,
		rl:      ratelimit.New(opts.RPS),
		stop:    make(chan struct{}),
	}, nil
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered and waits for the loop to exit. It is safe to call
// more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.stop:
		return ErrStopped
	case b.itemsCh <- item:
		return nil
	}
}

// TryAdd queues an item without waiting. A full queue rejects the item with ErrFull.
func (b *Batcher[T]) TryAdd(item T) error {
	select {
	case <-b.stop:
		return ErrStopped
	default:
	}

	select {
	case b.itemsCh <- item:
		return nil
	default:
		return ErrFull
	}
}

// Flushed reports how many items were written successfully.
func (b *Batcher[T]) Flushed() uint64 {
	return b.flushed.Load()
}

// Dropped reports how many items were discarded after all flush attempts failed.
func (b *Batcher[T]) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.opts.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.opts.FlushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}
		b.write(ctx, buf)
		buf = buf[:0]
	}

	// drain writes whatever is still queued; the parent context may already be done.
	drain := func() {
		final := context.WithoutCancel(ctx)
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
				if len(buf) >= b.opts.FlushSize {
					flush(final)
				}
			default:
				flush(final)
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.opts.FlushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}

func (b *Batcher[T]) write(ctx context.Context, items []T) {
	var err error
	for attempt := 1; attempt <= b.opts.MaxAttempts; attempt++ {
		b.rl.Take()
		if err = b.flush(ctx, items); err == nil {
			b.flushed.Add(uint64(len(items)))
			b.logger.Debug("batch flushed", zap.Int("size", len(items)), zap.Int("attempt", attempt))
			return
		}

		b.logger.Warn("batch flush failed",
			zap.Int("size", len(items)),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == b.opts.MaxAttempts {
			break
		}
		if sleepErr := clock.SleepWithContext(ctx, b.opts.RetryBackoff); sleepErr != nil {
			err = errors.Join(err, sleepErr)
			break
		}
	}

	b.dropped.Add(uint64(len(items)))
	b.logger.Error("batch dropped", zap.Int("size", len(items)), zap.Error(err))
}
