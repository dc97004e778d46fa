package vault

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

type (
	Vault interface {
		Deposit(ctx context.Context, from model.Account, amount uint64) error
		Transfer(ctx context.Context, to model.Account, amount uint64) error
		Held(ctx context.Context) (uint64, error)
	}
	Metrics interface {
		Observe(operation string, amount uint64, err error, started time.Time)
	}
)
