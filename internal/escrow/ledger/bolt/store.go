// Package bolt persists the transaction table and service state in a BoltDB file.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	bolt "go.etcd.io/bbolt"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

var (
	bucketTransactions = []byte("transactions")
	bucketState        = []byte("state")

	stateKey = []byte("service")
)

// Store implements both the ledger and the state store on a single Bolt database.
type Store struct {
	db *bolt.DB
}

type transactionRecord struct {
	Buyer                 string    `json:"buyer"`
	Seller                string    `json:"seller"`
	Amount                uint64    `json:"amount"`
	State                 string    `json:"state"`
	EncryptedItemMetadata string    `json:"encryptedItemMetadata"`
	ItemHash              string    `json:"itemHash"`
	DisputeResolved       bool      `json:"disputeResolved"`
	Revision              uint64    `json:"revision"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type stateRecord struct {
	EscrowDuration time.Duration `json:"escrowDuration"`
	EscrowFee      uint64        `json:"escrowFee"`
	FeeBalance     uint64        `json:"feeBalance"`
}

// Open opens (and creates) the Bolt file at path.
func Open(path string, options *bolt.Options) (*Store, error) {
	if path == "" {
		return nil, errors.New("bolt path is required")
	}
	if options == nil {
		options = &bolt.Options{Timeout: time.Second}
	} else if options.Timeout == 0 {
		options.Timeout = time.Second
	}
	db, err := bolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketTransactions, bucketState} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bolt buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the Bolt database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the record for id and whether it exists.
func (s *Store) Get(ctx context.Context, id uint64) (model.Transaction, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Transaction{}, false, err
	}
	var (
		tx    model.Transaction
		found bool
	)
	err := s.db.View(func(btx *bolt.Tx) error {
		raw := btx.Bucket(bucketTransactions).Get(idKey(id))
		if raw == nil {
			return nil
		}
		var rec transactionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode escrow %d: %w", id, err)
		}
		decoded, err := rec.toModel(id)
		if err != nil {
			return err
		}
		tx, found = decoded, true
		return nil
	})
	if err != nil {
		return model.Transaction{}, false, err
	}
	return tx, found, nil
}

// Scan calls fn for every record with an id in [from, to], in id order, in one cursor pass.
func (s *Store) Scan(ctx context.Context, from, to uint64, fn func(model.Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if from > to {
		return nil
	}
	return s.db.View(func(btx *bolt.Tx) error {
		cursor := btx.Bucket(bucketTransactions).Cursor()
		for key, raw := cursor.Seek(idKey(from)); key != nil; key, raw = cursor.Next() {
			id := binary.BigEndian.Uint64(key)
			if id > to {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec transactionRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("decode escrow %d: %w", id, err)
			}
			tx, err := rec.toModel(id)
			if err != nil {
				return err
			}
			if err := fn(tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertNext stores tx under the bucket's next sequence number.
func (s *Store) InsertNext(ctx context.Context, tx model.Transaction) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var id uint64
	err := s.db.Update(func(btx *bolt.Tx) error {
		bucket := btx.Bucket(bucketTransactions)
		next, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("next escrow id: %w", err)
		}
		encoded, err := json.Marshal(newTransactionRecord(tx))
		if err != nil {
			return err
		}
		if err := bucket.Put(idKey(next), encoded); err != nil {
			return err
		}
		id = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites an existing record.
func (s *Store) Update(ctx context.Context, id uint64, tx model.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		bucket := btx.Bucket(bucketTransactions)
		key := idKey(id)
		if bucket.Get(key) == nil {
			return fmt.Errorf("update escrow %d: no such record", id)
		}
		encoded, err := json.Marshal(newTransactionRecord(tx))
		if err != nil {
			return err
		}
		return bucket.Put(key, encoded)
	})
}

// Count returns the number of ids handed out so far.
func (s *Store) Count(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count uint64
	err := s.db.View(func(btx *bolt.Tx) error {
		count = btx.Bucket(bucketTransactions).Sequence()
		return nil
	})
	return count, err
}

func (s *Store) LoadState(ctx context.Context) (model.ServiceState, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.ServiceState{}, false, err
	}
	var (
		rec   stateRecord
		found bool
	)
	err := s.db.View(func(btx *bolt.Tx) error {
		raw := btx.Bucket(bucketState).Get(stateKey)
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &rec)
	})
	if err != nil {
		return model.ServiceState{}, false, fmt.Errorf("load service state: %w", err)
	}
	return model.ServiceState{
		Config: model.Config{
			EscrowDuration: rec.EscrowDuration,
			EscrowFee:      rec.EscrowFee,
		},
		FeeBalance: rec.FeeBalance,
	}, found, nil
}

func (s *Store) SaveState(ctx context.Context, state model.ServiceState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoded, err := json.Marshal(stateRecord{
		EscrowDuration: state.Config.EscrowDuration,
		EscrowFee:      state.Config.EscrowFee,
		FeeBalance:     state.FeeBalance,
	})
	if err != nil {
		return err
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketState).Put(stateKey, encoded)
	})
}

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func newTransactionRecord(tx model.Transaction) transactionRecord {
	return transactionRecord{
		Buyer:                 string(tx.Buyer),
		Seller:                string(tx.Seller),
		Amount:                tx.Amount,
		State:                 tx.State.String(),
		EncryptedItemMetadata: tx.EncryptedItemMetadata,
		ItemHash:              tx.ItemHash.String(),
		DisputeResolved:       tx.DisputeResolved,
		Revision:              tx.Revision,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}

func (r transactionRecord) toModel(id uint64) (model.Transaction, error) {
	state, ok := model.ParseState(r.State)
	if !ok {
		return model.Transaction{}, fmt.Errorf("escrow %d: unknown state %q", id, r.State)
	}
	hash, err := chainhash.NewHashFromStr(r.ItemHash)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("escrow %d: item hash: %w", id, err)
	}
	return model.Transaction{
		ID:                    id,
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
