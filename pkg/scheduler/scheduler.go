package scheduler

import (
	"context"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

//go:generate mockery --name Scheduler --output ./mocks

// Scheduler defines the interface for a component that queues a handover payout for processing.
type Scheduler interface {
	// SchedulePayout enqueues a payout event for asynchronous processing.
	SchedulePayout(ctx context.Context, ev *models.PayoutEvent) error
}

// Processor consumes payout events. The payout service implements it.
type Processor interface {
	Process(ctx context.Context, ev models.PayoutEvent) error
}

// InlineScheduler runs the processor in the caller's goroutine. It backs
// the in-memory driver, where there is no queue.
type InlineScheduler struct {
	Processor Processor
}

// NewInlineScheduler creates an InlineScheduler.
func NewInlineScheduler(p Processor) *InlineScheduler {
	return &InlineScheduler{Processor: p}
}

var _ Scheduler = (*InlineScheduler)(nil)

// SchedulePayout processes ev immediately.
func (s *InlineScheduler) SchedulePayout(ctx context.Context, ev *models.PayoutEvent) error {
	return s.Processor.Process(ctx, *ev)
}
