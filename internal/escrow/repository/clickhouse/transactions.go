package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

const insertTransactionQuery = `
INSERT INTO escrow_transactions (
	id,
	buyer,
	seller,
	amount,
	state,
	encrypted_item_metadata,
	item_hash,
	dispute_resolved,
	revision,
	created_at,
	updated_at
) VALUES`

// selectLatestTransactions resolves the newest revision of every id matched by the WHERE clause.
const selectLatestTransactions = `
SELECT
	id,
	argMax(buyer, revision),
	argMax(seller, revision),
	argMax(amount, revision),
	argMax(state, revision),
	argMax(encrypted_item_metadata, revision),
	argMax(item_hash, revision),
	argMax(dispute_resolved, revision),
	max(revision),
	argMax(created_at, revision),
	argMax(updated_at, revision)
FROM escrow_transactions
`

// Get returns the latest revision of a transaction.
func (r *Repository) Get(ctx context.Context, id uint64) (tx model.Transaction, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_transaction", err, start)
	}()

	err = r.queryTransactions(ctx, selectLatestTransactions+"WHERE id = ?\nGROUP BY id", func(t model.Transaction) error {
		tx, found = t, true
		return nil
	}, id)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, found, nil
}

// Scan calls fn with the latest revision of every transaction whose id lies in [from, to],
// in id order, using a single query.
func (r *Repository) Scan(ctx context.Context, from, to uint64, fn func(model.Transaction) error) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("scan_transactions", err, start)
	}()

	if from > to {
		return nil
	}
	err = r.queryTransactions(ctx, selectLatestTransactions+"WHERE id BETWEEN ? AND ?\nGROUP BY id\nORDER BY id", fn, from, to)
	if err != nil {
		return fmt.Errorf("scan transactions %d..%d: %w", from, to, err)
	}
	return nil
}

func (r *Repository) queryTransactions(ctx context.Context, query string, fn func(model.Transaction) error, args ...any) (err error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var row transactionRow
		if err = rows.Scan(
			&row.ID,
			&row.Buyer,
			&row.Seller,
			&row.Amount,
			&row.State,
			&row.EncryptedItemMetadata,
			&row.ItemHash,
			&row.DisputeResolved,
			&row.Revision,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		tx, err := row.toModel()
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			return err
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate rows: %w", err)
	}
	return nil
}

// InsertNext writes tx under max(id)+1.
func (r *Repository) InsertNext(ctx context.Context, tx model.Transaction) (id uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transaction", err, start)
	}()

	last, err := r.maxTransactionID(ctx)
	if err != nil {
		return 0, err
	}
	id = last + 1
	if err = r.writeTransaction(ctx, id, tx); err != nil {
		return 0, err
	}
	return id, nil
}

// Update appends a new revision of an existing transaction.
func (r *Repository) Update(ctx context.Context, id uint64, tx model.Transaction) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("update_transaction", err, start)
	}()

	last, err := r.maxTransactionID(ctx)
	if err != nil {
		return err
	}
	if id == 0 || id > last {
		return fmt.Errorf("update transaction %d: no such record", id)
	}
	return r.writeTransaction(ctx, id, tx)
}

// Count returns the highest id handed out, which equals the number of records.
func (r *Repository) Count(ctx context.Context) (count uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("count_transactions", err, start)
	}()

	return r.maxTransactionID(ctx)
}

func (r *Repository) maxTransactionID(ctx context.Context) (id uint64, err error) {
	const query = `
SELECT coalesce(max(id), toUInt64(0)) AS max_id
FROM escrow_transactions`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("query max transaction id: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, fmt.Errorf("max transaction id not found")
	}
	if err = rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("scan max transaction id: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate max transaction id: %w", err)
	}
	return id, nil
}

func (r *Repository) writeTransaction(ctx context.Context, id uint64, tx model.Transaction) error {
	batch, err := r.conn.PrepareBatch(ctx, insertTransactionQuery)
	if err != nil {
		return fmt.Errorf("prepare transaction batch: %w", err)
	}

	row := newTransactionRow(id, tx)
	if err := batch.Append(row.values()...); err != nil {
		return fmt.Errorf("append transaction %d: %w", id, err)
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("insert transaction %d: %w", id, err)
	}
	return nil
}

type transactionRow struct {
	ID                    uint64
	Buyer                 string
	Seller                string
	Amount                uint64
	State                 string
	EncryptedItemMetadata string
	ItemHash              string
	DisputeResolved       bool
	Revision              uint64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func newTransactionRow(id uint64, tx model.Transaction) transactionRow {
	return transactionRow{
		ID:                    id,
		Buyer:                 string(tx.Buyer),
		Seller:                string(tx.Seller),
		Amount:                tx.Amount,
		State:                 tx.State.String(),
		EncryptedItemMetadata: tx.EncryptedItemMetadata,
		ItemHash:              tx.ItemHash.String(),
		DisputeResolved:       tx.DisputeResolved,
		Revision:              tx.Revision,
		CreatedAt:             tx.CreatedAt.UTC(),
		UpdatedAt:             tx.UpdatedAt.UTC(),
	}
}

// values follows the column order of insertTransactionQuery.
func (r transactionRow) values() []any {
	return []any{
		r.ID,
		r.Buyer,
		r.Seller,
		r.Amount,
		r.State,
		r.EncryptedItemMetadata,
		r.ItemHash,
		r.DisputeResolved,
		r.Revision,
		r.CreatedAt,
		r.UpdatedAt,
	}
}

func (r transactionRow) toModel() (model.Transaction, error) {
	state, ok := model.ParseState(r.State)
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %d: unknown state %q", r.ID, r.State)
	}
	hash, err := chainhash.NewHashFromStr(r.ItemHash)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: item hash: %w", r.ID, err)
	}
	return model.Transaction{
		ID:                    r.ID,
		Buyer:                 model.Account(r.Buyer),
		Seller:                model.Account(r.Seller),
		Amount:                r.Amount,
		State:                 state,
		EncryptedItemMetadata: r.EncryptedItemMetadata,
		ItemHash:              *hash,
		DisputeResolved:       r.DisputeResolved,
		Revision:              r.Revision,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}, nil
}
