package storage

import (
	"context"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

// LedgerAppender is the sole write path for money. Records are never updated or deleted.
type LedgerAppender interface {
	// AppendTransaction persists tx. It returns ErrDuplicateEntry if tx.Id already exists.
	AppendTransaction(ctx context.Context, tx *models.Transaction) error
}

// LedgerReader defines the interface for reading ledger data.
type LedgerReader interface {
	// ListTransactionsByOwner retrieves every transaction owned by a worker, oldest first.
	ListTransactionsByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error)

	// ListRecentTransactions retrieves the most recent transactions across all owners.
	ListRecentTransactions(ctx context.Context, limit int32) ([]models.Transaction, error)
}

// LedgerStore combines the ledger reader and appender.
type LedgerStore interface {
	LedgerAppender
	LedgerReader
}
