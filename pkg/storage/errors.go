package storage

import "errors"

// ErrWalletNotFound is returned when no wallet exists for the given id.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrWalletInactive is returned when a mutation targets a suspended wallet.
var ErrWalletInactive = errors.New("wallet is not active")

// ErrInsufficientBalance is returned when a debit or block exceeds the covered
// balance. No state is changed.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrWalletCreationConflict is returned only when the atomic get-or-create
// truly cannot resolve to a single wallet row.
var ErrWalletCreationConflict = errors.New("wallet creation conflict")

// ErrSubaccountNotConfigured is returned when an owner has no settlement
// identity yet.
var ErrSubaccountNotConfigured = errors.New("subaccount not configured")

// ErrRateLimitExceeded is returned when the daily completed-withdrawal cap for
// a driver is already met.
var ErrRateLimitExceeded = errors.New("withdrawal rate limit exceeded")

// ErrInvalidAmount is returned when an amount is non-positive, below the
// minimum or above the maximum allowed.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrReconciliationNotFound is returned when a webhook references a charge or
// withdrawal unknown to us. It is logged, never retried.
var ErrReconciliationNotFound = errors.New("referenced record not found")

// ErrAlreadyProcessed signals an idempotent no-op: the referenced record is
// already in the requested terminal state. It is not a failure.
var ErrAlreadyProcessed = errors.New("already processed")

// ErrConcurrentUpdate is returned internally when an optimistic write loses
// the version race after exhausting retries.
var ErrConcurrentUpdate = errors.New("concurrent wallet update")
