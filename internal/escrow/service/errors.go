package service

import "errors"

var (
	// ErrUnauthorized is returned when the caller is not a required party or the owner.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidState is returned when the transaction is in the wrong lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrInsufficientDeposit is returned when the deposit does not exceed the fee.
	ErrInsufficientDeposit = errors.New("insufficient deposit")
	// ErrNothingToWithdraw is returned when no fees have accumulated.
	ErrNothingToWithdraw = errors.New("nothing to withdraw")
	// ErrNotFound is returned by mutating calls on an unknown transaction id.
	ErrNotFound = errors.New("escrow not found")
)
