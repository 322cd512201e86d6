package storage

import (
	"context"
	"time"
)

// PayoutLockStatus defines the possible states of a payout lock.
type PayoutLockStatus string

const (
	WORKING PayoutLockStatus = "WORKING"
	DONE    PayoutLockStatus = "DONE"
)

// PayoutLock records that the cascade for one handover has been claimed.
type PayoutLock struct {
	Key       string           `json:"key" dynamodbav:"key"`
	OrderId   string           `json:"order_id" dynamodbav:"order_id"`
	Status    PayoutLockStatus `json:"status" dynamodbav:"status"`
	CreatedAt time.Time        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" dynamodbav:"updated_at"`
}

// PayoutLockStore guards the commission cascade against repeated delivery.
type PayoutLockStore interface {
	// AcquirePayoutLock claims key. It returns ErrLockHeld if it was claimed before.
	AcquirePayoutLock(ctx context.Context, key, orderID string) error

	// ReleasePayoutLock deletes a claim whose cascade wrote nothing, so the
	// event can be delivered again.
	ReleasePayoutLock(ctx context.Context, key string) error

	// CompletePayoutLock marks a claimed key as DONE.
	CompletePayoutLock(ctx context.Context, key string) error

	// ListStuckPayoutLocks retrieves locks still WORKING that were claimed before cutoff.
	ListStuckPayoutLocks(ctx context.Context, cutoff time.Time) ([]PayoutLock, error)
}
