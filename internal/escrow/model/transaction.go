// Package model defines domain models for escrow custody.
package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Account identifies a buyer, seller or the service owner.
type Account string

// State describes where a transaction is in its lifecycle.
type State uint8

const (
	// StateInProgress marks a funded escrow awaiting completion, refund or dispute.
	StateInProgress State = iota
	// StateCompleted marks an escrow paid out to the seller.
	StateCompleted
	// StateRefunded marks an escrow paid back to the buyer.
	StateRefunded
	// StateDisputed marks an escrow waiting for the arbiter.
	StateDisputed
)

var stateNames = map[State]string{
	StateInProgress: "in_progress",
	StateCompleted:  "completed",
	StateRefunded:   "refunded",
	StateDisputed:   "disputed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, bool) {
	for state, n := range stateNames {
		if n == name {
			return state, true
		}
	}
	return 0, false
}

// Valid reports whether the value is one of the known states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// Terminal reports whether funds have left custody for this state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateRefunded
}

// CanTransition reports whether the lifecycle graph has an edge from s to next.
func (s State) CanTransition(next State) bool {
	switch s {
	case StateInProgress:
		return next == StateCompleted || next == StateRefunded || next == StateDisputed
	case StateDisputed:
		return next == StateCompleted || next == StateRefunded
	default:
		return false
	}
}

// Transaction is a single escrow deal between one buyer and one seller.
type Transaction struct {
	ID                    uint64
	Buyer                 Account
	Seller                Account
	Amount                uint64
	State                 State
	EncryptedItemMetadata string
	ItemHash              chainhash.Hash
	DisputeResolved       bool
	// Revision increases with every write of the record.
	Revision  uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsParty reports whether the account is the buyer or the seller.
func (t Transaction) IsParty(account Account) bool {
	return account == t.Buyer || account == t.Seller
}
