// Package transport exposes the escrow service over gRPC and REST.
package transport

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

type (
	EscrowAPI interface {
		Create(ctx context.Context, caller, seller model.Account, encryptedItemMetadata string, itemHash chainhash.Hash, deposit uint64) (uint64, error)
		Complete(ctx context.Context, caller model.Account, id uint64) error
		Refund(ctx context.Context, caller model.Account, id uint64) error
		Dispute(ctx context.Context, caller model.Account, id uint64) error
		ResolveDispute(ctx context.Context, caller model.Account, id uint64, isResolved bool) error
		SetEscrowDuration(ctx context.Context, caller model.Account, duration time.Duration) error
		SetEscrowFee(ctx context.Context, caller model.Account, fee uint64) error
		WithdrawBalance(ctx context.Context, caller model.Account) (uint64, error)
		TransactionMetadata(ctx context.Context, id uint64) (string, error)
		ItemHash(ctx context.Context, id uint64) (chainhash.Hash, error)
		Transaction(ctx context.Context, id uint64) (model.Transaction, bool, error)
		TransactionCount(ctx context.Context) (uint64, error)
		Audit(ctx context.Context, workers int) (model.AuditReport, error)
		Owner() model.Account
		Config() model.Config
		FeeBalance() uint64
	}
)
