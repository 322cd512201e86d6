package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/tailorshop-ledger/pkg/app"
	"github.com/chris/tailorshop-ledger/pkg/config"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

type sweepStore interface {
	ListStuckPayoutLocks(ctx context.Context, cutoff time.Time) ([]storage.PayoutLock, error)
	ListPendingRequests(ctx context.Context, cutoff time.Time) ([]models.Request, error)
}

var (
	store                 sweepStore
	stuckPayoutThreshold  time.Duration
	staleRequestThreshold time.Duration
	now                   = time.Now
)

// Report is the outcome of one sweep.
type Report struct {
	StuckPayouts  int
	StaleRequests int
}

// HandleRequest is triggered by an EventBridge Schedule. It reports payouts
// whose cascade stopped part way and requests nobody has decided. Neither is
// retried automatically: a stuck payout has written some records already and
// needs an operator.
func HandleRequest(ctx context.Context) (Report, error) {
	log.Println("Starting reconciliation sweep...")

	var report Report

	locks, err := store.ListStuckPayoutLocks(ctx, now().Add(-stuckPayoutThreshold))
	if err != nil {
		log.Printf("ERROR: failed to list stuck payouts: %v", err)
		return report, err
	}
	for _, l := range locks {
		log.Printf("STUCK: payout %s for order %s claimed at %s", l.Key, l.OrderId, l.CreatedAt.Format(time.RFC3339))
	}
	report.StuckPayouts = len(locks)

	pending, err := store.ListPendingRequests(ctx, now().Add(-staleRequestThreshold))
	if err != nil {
		log.Printf("ERROR: failed to list pending requests: %v", err)
		return report, err
	}
	for _, r := range pending {
		log.Printf("STALE: %s request %s from %s for %s waiting since %s", r.Type, r.Id, r.UserId, r.Amount, r.CreatedAt.Format(time.RFC3339))
	}
	report.StaleRequests = len(pending)

	log.Printf("Reconciliation finished: %d stuck payouts, %d stale requests.", report.StuckPayouts, report.StaleRequests)
	return report, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	store, err = app.OpenStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	stuckPayoutThreshold = cfg.StuckPayoutThreshold
	staleRequestThreshold = cfg.StaleRequestThreshold

	lambda.Start(HandleRequest)
}
