package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEntry is returned when a ledger record with the same id was already written.
var ErrDuplicateEntry = errors.New("duplicate ledger entry")

// ErrConflict is returned when an optimistic version check fails.
var ErrConflict = errors.New("version conflict")

// ErrLockHeld is returned when a payout lock for the same handover already exists.
var ErrLockHeld = errors.New("payout already claimed")

// ErrRequestNotPending is returned when a decided request is approved or rejected again.
var ErrRequestNotPending = errors.New("request is not pending")
