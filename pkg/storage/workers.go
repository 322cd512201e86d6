package storage

import (
	"context"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

// WorkerReader is the read side of the worker table used by the hierarchy index.
type WorkerReader interface {
	// GetWorker retrieves a worker by id. It returns ErrNotFound when absent.
	GetWorker(ctx context.Context, id string) (*models.Worker, error)

	// ListDirects retrieves the workers whose upline is sponsorID.
	ListDirects(ctx context.Context, sponsorID string) ([]models.Worker, error)

	// ListMagicDirects retrieves the workers whose magic upline is sponsorID.
	ListMagicDirects(ctx context.Context, sponsorID string) ([]models.Worker, error)
}

// WorkerStore defines the interface for managing workers.
type WorkerStore interface {
	WorkerReader

	// PutWorker creates or replaces a worker.
	PutWorker(ctx context.Context, w *models.Worker) error

	// ListWorkersByRole retrieves the active and blocked workers holding role.
	ListWorkersByRole(ctx context.Context, role models.Role) ([]models.Worker, error)
}
