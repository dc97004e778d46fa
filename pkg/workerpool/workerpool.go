// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Process fans items out to workerCount goroutines, invoking process for each.
// The first error cancels the remaining work, calls onCancel once and is returned.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onCancel func(),
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) && len(items) > 0 {
		workerCount = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		firstErr error
		once     sync.Once
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			if onCancel != nil {
				onCancel()
			}
			cancel()
		})
	}

	tasks := make(chan T, workerCount)
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					continue
				}
				if err := process(ctx, item); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
