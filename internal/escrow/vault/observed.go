package vault

import (
	"context"
	"time"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

type ObservedVault struct {
	vault   Vault
	metrics Metrics
}

func NewObservedVault(vault Vault, metrics Metrics) *ObservedVault {
	return &ObservedVault{
		vault:   vault,
		metrics: metrics,
	}
}

func (v *ObservedVault) Deposit(ctx context.Context, from model.Account, amount uint64) (err error) {
	started := time.Now()
	defer func() {
		v.metrics.Observe("deposit", amount, err, started)
	}()
	return v.vault.Deposit(ctx, from, amount)
}

func (v *ObservedVault) Transfer(ctx context.Context, to model.Account, amount uint64) (err error) {
	started := time.Now()
	defer func() {
		v.metrics.Observe("transfer", amount, err, started)
	}()
	return v.vault.Transfer(ctx, to, amount)
}

func (v *ObservedVault) Held(ctx context.Context) (held uint64, err error) {
	started := time.Now()
	defer func() {
		v.metrics.Observe("held", 0, err, started)
	}()
	return v.vault.Held(ctx)
}
