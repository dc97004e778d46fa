package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

// InsertEvents appends notifications to the escrow_events log.
func (r *Repository) InsertEvents(ctx context.Context, events []model.Event) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, `
INSERT INTO escrow_events (
	id,
	sequence,
	type,
	transaction_id,
	buyer,
	seller,
	amount,
	item_hash,
	dispute_resolved,
	occurred_at
) VALUES`)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, event := range events {
		if err = batch.Append(eventValues(event)...); err != nil {
			return fmt.Errorf("append event %s: %w", event.ID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func eventValues(event model.Event) []any {
	var itemHash *string
	if event.ItemHash != nil {
		hash := event.ItemHash.String()
		itemHash = &hash
	}
	return []any{
		event.ID,
		event.Sequence,
		string(event.Type),
		event.TransactionID,
		string(event.Buyer),
		string(event.Seller),
		event.Amount,
		itemHash,
		event.DisputeResolved,
		event.OccurredAt.UTC(),
	}
}
