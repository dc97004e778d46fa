package model

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"
)

// EventType names a notification emitted after a successful transition.
type EventType string

const (
	EventEscrowCreated         EventType = "EscrowCreated"
	EventEscrowCompleted       EventType = "EscrowCompleted"
	EventEscrowRefunded        EventType = "EscrowRefunded"
	EventEscrowDisputed        EventType = "EscrowDisputed"
	EventEscrowDisputeResolved EventType = "EscrowDisputeResolved"
)

// Event is a single entry of the notification log.
type Event struct {
	ID            uuid.UUID
	Sequence      uint64
	Type          EventType
	TransactionID uint64
	Buyer         Account
	Seller        Account
	Amount        uint64
	// ItemHash is set for EscrowDisputed.
	ItemHash *chainhash.Hash
	// DisputeResolved carries the verdict for EscrowDisputeResolved.
	DisputeResolved *bool
	OccurredAt      time.Time
}
