package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		Get(ctx context.Context, id uint64) (model.Transaction, bool, error)
		InsertNext(ctx context.Context, tx model.Transaction) (uint64, error)
		Update(ctx context.Context, id uint64, tx model.Transaction) error
		Count(ctx context.Context) (uint64, error)
		// Scan visits the records with ids in [from, to] in id order.
		Scan(ctx context.Context, from, to uint64, fn func(model.Transaction) error) error
	}
	StateStore interface {
		LoadState(ctx context.Context) (model.ServiceState, bool, error)
		SaveState(ctx context.Context, state model.ServiceState) error
	}
	Vault interface {
		Deposit(ctx context.Context, from model.Account, amount uint64) error
		Transfer(ctx context.Context, to model.Account, amount uint64) error
		Held(ctx context.Context) (uint64, error)
	}
	Notifier interface {
		Notify(ctx context.Context, event model.Event)
	}
	Authorizer interface {
		AuthorizeOwner(owner, caller model.Account) error
	}
	EscrowMetrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveTransition(from, to model.State)
	}
	Auditable interface {
		Audit(ctx context.Context, workers int) (model.AuditReport, error)
	}
	AuditMetrics interface {
		ObserveAudit(report model.AuditReport, err error, started time.Time)
	}
)
