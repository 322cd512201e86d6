// Package payout consumes handover events from the queue and runs the
// commission cascade at most once per handover.
package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/commission"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/metrics"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/money"
	"github.com/chris/tailorshop-ledger/pkg/scheduler"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/shopspring/decimal"
)

// Distributor is the cascade the service guards.
type Distributor interface {
	Distribute(ctx context.Context, ev models.PayoutEvent) (*commission.Payout, error)
}

// Store is the persistence the service needs.
type Store interface {
	storage.PayoutLockStore
	storage.LedgerReader
}

// Service implements scheduler.Processor.
type Service struct {
	store       Store
	distributor Distributor
	publisher   websockets.Publisher
}

var _ scheduler.Processor = (*Service)(nil)

// New creates a Service. A nil publisher disables wallet update messages.
func New(store Store, d Distributor, pub websockets.Publisher) *Service {
	if pub == nil {
		pub = &websockets.NoOpPublisher{}
	}
	return &Service{store: store, distributor: d, publisher: pub}
}

// Process claims the handover and distributes it. A handover that was
// claimed before is skipped without error.
func (s *Service) Process(ctx context.Context, ev models.PayoutEvent) error {
	key := ev.Key()
	if err := s.store.AcquirePayoutLock(ctx, key, ev.OrderId); err != nil {
		if errors.Is(err, storage.ErrLockHeld) {
			slog.Info("payout already claimed, skipping", "key", key)
			metrics.PayoutsProcessed.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil
		}
		return fmt.Errorf("failed to claim payout %s: %w", key, err)
	}

	start := time.Now()
	p, err := s.distributor.Distribute(ctx, ev)
	metrics.CascadeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PayoutsProcessed.WithLabelValues(metrics.OutcomeFailed).Inc()

		var cerr *commission.CascadeError
		if errors.As(err, &cerr) {
			metrics.CascadeFailures.WithLabelValues(string(cerr.Step)).Inc()
		}
		if cerr != nil && p != nil && len(p.Written) > 0 {
			// Part of the cascade is durable. The lock stays WORKING for the
			// reconciliation job to report.
			s.publish(ctx, p.Paid)
			return err
		}

		if rerr := s.store.ReleasePayoutLock(ctx, key); rerr != nil {
			slog.Error("failed to release payout lock", "key", key, "error", rerr)
		}
		return err
	}

	if err := s.store.CompletePayoutLock(ctx, key); err != nil {
		slog.Error("payout written but lock not completed", "key", key, "error", err)
	}
	metrics.PayoutsProcessed.WithLabelValues(metrics.OutcomePaid).Inc()

	s.publish(ctx, p.Paid)
	return nil
}

// publish sends one wallet update per written record. Failures are logged.
func (s *Service) publish(ctx context.Context, paid []commission.PlannedEntry) {
	balances := make(map[string]map[models.WalletType]decimal.Decimal)
	for _, pe := range paid {
		e := pe.Entry

		owner, ok := balances[e.OwnerId]
		if !ok {
			txs, err := s.store.ListTransactionsByOwner(ctx, e.OwnerId)
			if err != nil {
				slog.Warn("skipping wallet update", "owner_id", e.OwnerId, "error", err)
				continue
			}
			owner = ledger.Balances(txs, e.OwnerId)
			balances[e.OwnerId] = owner
		}

		msg := websockets.Message{
			Type: websockets.MessageTypeWalletUpdate,
			Payload: websockets.WalletUpdatePayload{
				UserID:        e.OwnerId,
				TransactionID: e.Id,
				WalletType:    string(e.WalletType),
				Change:        e.Direction.Signed(money.Round5(e.Amount)),
				NewBalance:    owner[e.WalletType],
			},
		}
		if err := s.publisher.Publish(ctx, msg); err != nil {
			slog.Error("failed to publish wallet update", "owner_id", e.OwnerId, "error", err)
		}
	}
}
