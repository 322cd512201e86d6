// Package ledger is the only write path for money and the fold that turns
// records back into wallet balances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/money"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned for a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidEntry is returned when an entry misses its owner or carries an unknown tag.
	ErrInvalidEntry = errors.New("invalid ledger entry")
)

// Entry is a ledger write request.
type Entry struct {
	// Id is optional. A caller that retries a write should pass the same id.
	Id              string
	OwnerId         string
	Amount          decimal.Decimal
	Direction       models.Direction
	WalletType      models.WalletType
	Description     string
	RelatedOrderId  string
	RelatedWorkerId string
	Level           string
}

// Recorder is implemented by Writer and consumed by the distributor and services.
type Recorder interface {
	Record(ctx context.Context, e Entry) (string, error)
}

// Writer appends validated, rounded records to the ledger.
type Writer struct {
	store storage.LedgerAppender
	now   func() time.Time
	// OnRecord is called after every successful append.
	OnRecord func(tx *models.Transaction)
}

// NewWriter creates a Writer on top of a ledger appender.
func NewWriter(store storage.LedgerAppender) *Writer {
	return &Writer{store: store, now: time.Now}
}

// Record validates e and appends it as one immutable transaction. It returns
// the id of the written record.
func (w *Writer) Record(ctx context.Context, e Entry) (string, error) {
	tx, err := w.build(e)
	if err != nil {
		return "", err
	}

	if err := w.store.AppendTransaction(ctx, tx); err != nil {
		return "", fmt.Errorf("failed to append %s %s for %s: %w", tx.Direction, tx.WalletType, tx.OwnerId, err)
	}

	slog.Debug("ledger record written",
		"id", tx.Id,
		"owner_id", tx.OwnerId,
		"wallet_type", tx.WalletType,
		"direction", tx.Direction,
		"amount", tx.Amount.String(),
	)
	if w.OnRecord != nil {
		w.OnRecord(tx)
	}
	return tx.Id, nil
}

// RecordOK is the pass/fail form of Record. Failures are logged.
func (w *Writer) RecordOK(ctx context.Context, e Entry) bool {
	if _, err := w.Record(ctx, e); err != nil {
		slog.Warn("ledger write rejected", "owner_id", e.OwnerId, "error", err)
		return false
	}
	return true
}

// Build validates e and returns the transaction Record would write, without writing it.
func (w *Writer) Build(e Entry) (*models.Transaction, error) {
	return w.build(e)
}

// Committed reports that a transaction from Build was appended by the caller,
// for example inside a store transaction. It runs the OnRecord hook.
func (w *Writer) Committed(tx *models.Transaction) {
	if w.OnRecord != nil {
		w.OnRecord(tx)
	}
}

func (w *Writer) build(e Entry) (*models.Transaction, error) {
	if !e.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if e.OwnerId == "" {
		return nil, fmt.Errorf("%w: missing owner", ErrInvalidEntry)
	}
	if !e.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidEntry, e.Direction)
	}
	if !e.WalletType.Valid() {
		return nil, fmt.Errorf("%w: wallet type %q", ErrInvalidEntry, e.WalletType)
	}

	amount := money.Round5(e.Amount)
	if !amount.IsPositive() {
		// below the stored precision
		return nil, ErrInvalidAmount
	}

	id := e.Id
	if id == "" {
		id = uuid.NewString()
	}

	return &models.Transaction{
		Id:              id,
		OwnerId:         e.OwnerId,
		Amount:          amount,
		Direction:       e.Direction,
		WalletType:      e.WalletType,
		Description:     e.Description,
		RelatedOrderId:  e.RelatedOrderId,
		RelatedWorkerId: e.RelatedWorkerId,
		Level:           e.Level,
		CreatedAt:       w.now(),
	}, nil
}
