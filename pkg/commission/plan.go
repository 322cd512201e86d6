// Package commission splits a released work payout between the worker, the
// magic sponsor and up to ten upline levels.
package commission

import (
	"fmt"

	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/money"
	"github.com/shopspring/decimal"
)

// Step names one ledger write of a cascade.
type Step string

const (
	StepWorker Step = "worker"
	StepMagic  Step = "magic"
	StepLevel  Step = "level"
)

// Ancestor is one upline hop with the count of its direct recruits and its
// released work this month.
type Ancestor struct {
	WorkerId    string
	Directs     int
	MonthlyWork decimal.Decimal
}

// Input is everything the split depends on, already resolved.
type Input struct {
	Event       models.PayoutEvent
	BasePayout  decimal.Decimal
	Settings    *models.Settings
	MagicUpline string
	// Ancestors lists the upline chain nearest first, at most ten entries.
	Ancestors []Ancestor
}

// PlannedEntry is one write of the cascade.
type PlannedEntry struct {
	Step  Step
	Level int
	Entry ledger.Entry
}

// Plan is the ordered list of writes for one payout together with the amounts.
type Plan struct {
	BasePayout  decimal.Decimal
	Pool        decimal.Decimal
	WorkerNet   decimal.Decimal
	MagicShare  decimal.Decimal
	LevelPool   decimal.Decimal
	LevelShares [models.LevelCount]decimal.Decimal
	Entries     []PlannedEntry
}

// Build computes the cascade without writing anything.
func Build(in Input) Plan {
	ev := in.Event
	st := in.Settings

	p := Plan{BasePayout: in.BasePayout}
	p.Pool = money.Percent(in.BasePayout, st.Deductions.WorkDeductionPercent)
	p.WorkerNet = in.BasePayout.Sub(p.Pool)
	p.MagicShare = money.Percent(p.Pool, st.Deductions.MagicFundPercent)
	p.LevelPool = p.Pool.Sub(p.MagicShare)

	p.Entries = append(p.Entries, PlannedEntry{
		Step: StepWorker,
		Entry: ledger.Entry{
			OwnerId:        ev.WorkerId,
			Amount:         p.WorkerNet,
			Direction:      models.Credit,
			WalletType:     models.WalletDaily,
			Description:    "Released Work Payout: " + ev.BillNumber,
			RelatedOrderId: ev.OrderId,
		},
	})

	if in.MagicUpline != "" {
		p.Entries = append(p.Entries, PlannedEntry{
			Step: StepMagic,
			Entry: ledger.Entry{
				OwnerId:         in.MagicUpline,
				Amount:          p.MagicShare,
				Direction:       models.Credit,
				WalletType:      models.WalletMagic,
				Description:     fmt.Sprintf("Magic Income from %s (%s)", ev.WorkerId, ev.BillNumber),
				RelatedOrderId:  ev.OrderId,
				RelatedWorkerId: ev.WorkerId,
			},
		})
	}

	for i, anc := range in.Ancestors {
		if i >= models.LevelCount {
			break
		}
		if !levelEligible(st.LevelRequirements[i], anc.Directs) {
			continue
		}
		if !incomeEligible(st.IncomeEligibility, anc.MonthlyWork) {
			continue
		}
		share := money.Percent(p.LevelPool, st.LevelDistributionRates[i])
		if !share.IsPositive() {
			continue
		}
		p.LevelShares[i] = share

		wallet := models.WalletDownline
		if i == 0 {
			wallet = models.WalletUpline
		}
		p.Entries = append(p.Entries, PlannedEntry{
			Step:  StepLevel,
			Level: i + 1,
			Entry: ledger.Entry{
				OwnerId:         anc.WorkerId,
				Amount:          share,
				Direction:       models.Credit,
				WalletType:      wallet,
				Description:     fmt.Sprintf("Level %d Income from %s (%s)", i+1, ev.WorkerId, ev.BillNumber),
				RelatedOrderId:  ev.OrderId,
				RelatedWorkerId: ev.WorkerId,
				Level:           fmt.Sprintf("L%d", i+1),
			},
		})
	}

	return p
}

// levelEligible applies the level requirement. A zero requirement, as in
// settings saved before requirements existed, counts as open.
func levelEligible(req models.LevelRequirement, directs int) bool {
	if req.Level != 0 && !req.IsOpen {
		return false
	}
	return directs >= req.RequiredDirects
}

// incomeEligible applies the minimum monthly work rule when it is active.
func incomeEligible(rule models.IncomeEligibility, monthlyWork decimal.Decimal) bool {
	return !rule.IsActive || !monthlyWork.LessThan(rule.MinMonthlyWorkAmount)
}
