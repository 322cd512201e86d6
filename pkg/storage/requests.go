package storage

import (
	"context"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

// RequestStore persists fund and withdrawal requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, r *models.Request) error
	GetRequest(ctx context.Context, id string) (*models.Request, error)

	// ListPendingRequests retrieves requests still PENDING that were created before cutoff.
	ListPendingRequests(ctx context.Context, cutoff time.Time) ([]models.Request, error)

	// DecideRequest moves a PENDING request to its final status. When tx is
	// non-nil it is appended to the ledger in the same atomic write. It
	// returns ErrRequestNotPending if the request was already decided.
	DecideRequest(ctx context.Context, r *models.Request, tx *models.Transaction) error
}
