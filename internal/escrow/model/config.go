package model

import "time"

// Config holds owner-adjustable service settings.
type Config struct {
	// EscrowDuration is informational; no transition enforces it.
	EscrowDuration time.Duration
	// EscrowFee is the flat fee in satoshis retained on creation.
	EscrowFee uint64
}

// ServiceState is the persisted service-wide state next to the transaction table.
type ServiceState struct {
	Config     Config
	FeeBalance uint64
}

// AuditReport summarises custody across the whole ledger.
type AuditReport struct {
	Transactions uint64
	ByState      map[State]uint64
	// OpenAmount is the sum of amounts still held for in-progress and disputed escrows.
	OpenAmount uint64
	FeeBalance uint64
	Held       uint64
	Balanced   bool
}
