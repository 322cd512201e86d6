package storage

import (
	"context"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

// OrderStore persists work units.
type OrderStore interface {
	// GetOrder retrieves an order by id. It returns ErrNotFound when absent.
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// CreateOrder stores a new order. It fails if the id is taken.
	CreateOrder(ctx context.Context, o *models.Order) error

	// UpdateOrder replaces an order if its stored version equals o.Version,
	// then increments o.Version. It returns ErrConflict otherwise.
	UpdateOrder(ctx context.Context, o *models.Order) error

	// ListOrdersByHolder retrieves the orders currently assigned to a worker.
	ListOrdersByHolder(ctx context.Context, workerID string) ([]models.Order, error)

	// ListOrdersByBill retrieves the orders booked under a bill number.
	ListOrdersByBill(ctx context.Context, billNumber string) ([]models.Order, error)
}
