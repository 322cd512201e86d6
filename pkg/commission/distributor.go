package commission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/rates"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// CascadeError reports the write that stopped a cascade. Writes before it
// are durable and are not reversed.
type CascadeError struct {
	Step    Step
	Level   int
	OwnerId string
	Err     error
}

func (e *CascadeError) Error() string {
	if e.Step == StepLevel {
		return fmt.Sprintf("cascade stopped at level %d (%s): %v", e.Level, e.OwnerId, e.Err)
	}
	return fmt.Sprintf("cascade stopped at %s credit (%s): %v", e.Step, e.OwnerId, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }

// Payout is the outcome of one cascade.
type Payout struct {
	Plan
	// Written holds the ids of the records that were appended, in order.
	Written []string
	// Beneficiaries are the owners of the written records, in order.
	Beneficiaries []string
	// Paid are the planned entries that were written, each with its record id.
	Paid []PlannedEntry
}

// Distributor runs the commission cascade for a handover.
type Distributor struct {
	ledger    ledger.Recorder
	history   storage.LedgerReader
	hierarchy *hierarchy.Service
	settings  *settings.Service
	rates     *rates.Resolver
}

// NewDistributor creates a Distributor from its collaborators. history is
// read only when the income eligibility rule is active.
func NewDistributor(rec ledger.Recorder, history storage.LedgerReader, h *hierarchy.Service, s *settings.Service, r *rates.Resolver) *Distributor {
	return &Distributor{ledger: rec, history: history, hierarchy: h, settings: s, rates: r}
}

// Prepare resolves the rate, settings and both sponsor chains for ev and
// returns the cascade that Distribute would write.
func (d *Distributor) Prepare(ctx context.Context, ev models.PayoutEvent) (Plan, error) {
	st, err := d.settings.Get(ctx)
	if err != nil {
		return Plan{}, err
	}

	base, err := d.rates.BasePayout(ctx, ev.GarmentType, ev.WorkerRole, ev.Quality, ev.Price)
	if err != nil {
		return Plan{}, err
	}

	magic, _, err := d.hierarchy.MagicUplineOf(ctx, ev.WorkerId)
	if err != nil {
		return Plan{}, err
	}

	chain, err := d.hierarchy.Ancestors(ctx, ev.WorkerId, models.LevelCount)
	if err != nil {
		return Plan{}, err
	}
	at := ev.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	ancestors, err := d.annotate(ctx, chain, st, at)
	if err != nil {
		return Plan{}, err
	}

	return Build(Input{
		Event:       ev,
		BasePayout:  base,
		Settings:    st,
		MagicUpline: magic,
		Ancestors:   ancestors,
	}), nil
}

// Distribute writes the cascade for ev one record at a time. Running it
// twice for the same event pays twice; callers that need at-most-once
// semantics must guard it. On a failed write it returns the partial Payout
// together with a *CascadeError.
func (d *Distributor) Distribute(ctx context.Context, ev models.PayoutEvent) (*Payout, error) {
	plan, err := d.Prepare(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare payout for order %s: %w", ev.OrderId, err)
	}

	out := &Payout{Plan: plan}
	for _, pe := range plan.Entries {
		id, err := d.ledger.Record(ctx, pe.Entry)
		if errors.Is(err, ledger.ErrInvalidAmount) {
			// rounds to nothing at five places
			continue
		}
		if err != nil {
			cerr := &CascadeError{Step: pe.Step, Level: pe.Level, OwnerId: pe.Entry.OwnerId, Err: err}
			slog.Error("commission cascade interrupted",
				"order_id", ev.OrderId,
				"worker_id", ev.WorkerId,
				"written", len(out.Written),
				"error", cerr,
			)
			return out, cerr
		}
		pe.Entry.Id = id
		out.Written = append(out.Written, id)
		out.Beneficiaries = append(out.Beneficiaries, pe.Entry.OwnerId)
		out.Paid = append(out.Paid, pe)
	}

	slog.Info("commission cascade complete",
		"order_id", ev.OrderId,
		"stage", ev.Stage,
		"worker_id", ev.WorkerId,
		"base_payout", plan.BasePayout.String(),
		"records", len(out.Written),
	)
	return out, nil
}

// annotate attaches direct-recruit counts, fetched only for levels that
// require them, and each ancestor's monthly work when eligibility is active.
func (d *Distributor) annotate(ctx context.Context, chain []string, st *models.Settings, at time.Time) ([]Ancestor, error) {
	out := make([]Ancestor, len(chain))
	for i, id := range chain {
		out[i] = Ancestor{WorkerId: id}
		if i >= models.LevelCount {
			continue
		}
		if st.LevelRequirements[i].RequiredDirects > 0 {
			n, err := d.hierarchy.Directs(ctx, id)
			if err != nil {
				return nil, err
			}
			out[i].Directs = n
		}
		if st.IncomeEligibility.IsActive {
			txs, err := d.history.ListTransactionsByOwner(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to read work history of %s: %w", id, err)
			}
			out[i].MonthlyWork = ledger.MonthlyWork(txs, id, at)
		}
	}
	return out, nil
}

// Total is the sum of everything the plan pays out.
func (p *Plan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Entries {
		total = total.Add(e.Entry.Amount)
	}
	return total
}
