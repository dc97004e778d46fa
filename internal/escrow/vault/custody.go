// Package vault holds deposited value on behalf of the escrow service and pays it
// out to accounts.
package vault

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

var (
	ErrInsufficientCustody = errors.New("insufficient custody")
	ErrOverflow            = errors.New("custody overflow")
	ErrEmptyAccount        = errors.New("account is required")
)

// Custody is an in-process vault. Paid-out amounts accumulate per account so
// operators and tests can see where value went.
type Custody struct {
	mu        sync.Mutex
	held      uint64
	deposited map[model.Account]uint64
	credited  map[model.Account]uint64
}

func NewCustody() *Custody {
	return NewCustodyHolding(0)
}

// NewCustodyHolding returns a Custody that already holds held, such as the
// liabilities of a ledger persisted by an earlier run.
func NewCustodyHolding(held uint64) *Custody {
	return &Custody{
		held:      held,
		deposited: make(map[model.Account]uint64),
		credited:  make(map[model.Account]uint64),
	}
}

func (c *Custody) Deposit(ctx context.Context, from model.Account, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if from == "" {
		return fmt.Errorf("deposit: %w", ErrEmptyAccount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if amount > math.MaxUint64-c.held {
		return fmt.Errorf("deposit %d from %s: %w", amount, from, ErrOverflow)
	}
	c.held += amount
	c.deposited[from] += amount
	return nil
}

func (c *Custody) Transfer(ctx context.Context, to model.Account, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("transfer: %w", ErrEmptyAccount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if amount > c.held {
		return fmt.Errorf("transfer %d to %s, holding %d: %w", amount, to, c.held, ErrInsufficientCustody)
	}
	c.held -= amount
	c.credited[to] += amount
	return nil
}

func (c *Custody) Held(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held, nil
}

// Credited returns the total paid out to account.
func (c *Custody) Credited(account model.Account) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credited[account]
}

// Deposited returns the total received from account.
func (c *Custody) Deposited(account model.Account) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deposited[account]
}
