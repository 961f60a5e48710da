package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"

	// Pool errors
	ErrMsgPoolNotFound = "pool not found"
	ErrMsgPoolEmpty    = "pool has no drawable entries"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Draw errors
	ErrMsgDrawFailed = "draw produced no outcome"

	// Inventory errors
	ErrMsgInstanceNotFound = "equipment instance not found"
	ErrMsgInstanceEquipped = "equipment instance is equipped"

	// Template errors
	ErrMsgTemplateNotFound = "item template not found"

	// Oversized batch errors
	ErrMsgDrawSlotBusy = "an oversized draw is already in progress"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrPoolNotFound      = errors.New(ErrMsgPoolNotFound)
	ErrPoolEmpty         = errors.New(ErrMsgPoolEmpty)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrDrawFailed        = errors.New(ErrMsgDrawFailed)
	ErrInstanceNotFound  = errors.New(ErrMsgInstanceNotFound)
	ErrInstanceEquipped  = errors.New(ErrMsgInstanceEquipped)
	ErrTemplateNotFound  = errors.New(ErrMsgTemplateNotFound)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
)

// Store errors distinguish constraint violations (not retryable) from
// transient I/O failures (retryable once via the batch fallback path).
var (
	ErrStoreConstraint = errors.New("store constraint violation")
	ErrStoreTransient  = errors.New("transient store error")
)

// InsufficientFundsError reports how much currency the operation required.
type InsufficientFundsError struct {
	Required int
	Balance  int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: need %d coins, have %d", ErrMsgInsufficientFunds, e.Required, e.Balance)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// BusyError is returned when the oversized-draw admission slot is held.
// It names the current holder so callers can surface it.
type BusyError struct {
	HolderID   string
	HolderName string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s (held by %s)", ErrMsgDrawSlotBusy, e.HolderName)
}

// BatchPartialError signals that a batch store operation fell back to
// item-by-item mode and reports how many items ultimately succeeded.
type BatchPartialError struct {
	Succeeded int
	Attempted int
	Cause     error
}

func (e *BatchPartialError) Error() string {
	return fmt.Sprintf("batch fell back to individual writes: %d/%d succeeded: %v",
		e.Succeeded, e.Attempted, e.Cause)
}

func (e *BatchPartialError) Unwrap() error { return e.Cause }
