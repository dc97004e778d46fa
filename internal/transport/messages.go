package transport

import "time"

type CreateEscrowRequest struct {
	Seller                string `json:"seller"`
	EncryptedItemMetadata string `json:"encryptedItemMetadata"`
	// ItemHash is the hex form of a 32-byte hash.
	ItemHash string `json:"itemHash"`
	Deposit  uint64 `json:"deposit"`
}

type CreateEscrowResponse struct {
	ID uint64 `json:"id"`
}

type EscrowIDRequest struct {
	ID uint64 `json:"id"`
}

type ResolveDisputeRequest struct {
	ID         uint64 `json:"id"`
	IsResolved bool   `json:"isResolved"`
}

type SetEscrowDurationRequest struct {
	// Duration uses time.ParseDuration syntax, e.g. "720h".
	Duration string `json:"duration"`
}

type SetEscrowFeeRequest struct {
	Fee uint64 `json:"fee"`
}

type Empty struct{}

type TransactionMetadataResponse struct {
	EncryptedItemMetadata string `json:"encryptedItemMetadata"`
}

type ItemHashResponse struct {
	ItemHash string `json:"itemHash"`
}

type WithdrawBalanceResponse struct {
	Amount uint64 `json:"amount"`
}

type Escrow struct {
	ID                    uint64    `json:"id"`
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

type ConfigResponse struct {
	Owner            string `json:"owner"`
	EscrowDuration   string `json:"escrowDuration"`
	EscrowFee        uint64 `json:"escrowFee"`
	FeeBalance       uint64 `json:"feeBalance"`
	TransactionCount uint64 `json:"transactionCount"`
}

type AuditResponse struct {
	Transactions uint64            `json:"transactions"`
	ByState      map[string]uint64 `json:"byState"`
	OpenAmount   uint64            `json:"openAmount"`
	FeeBalance   uint64            `json:"feeBalance"`
	Held         uint64            `json:"held"`
	Balanced     bool              `json:"balanced"`
}
