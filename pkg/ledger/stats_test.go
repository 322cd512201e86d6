package ledger

import (
	"testing"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func tx(owner string, amount string, dir models.Direction, wallet models.WalletType, at time.Time) models.Transaction {
	return models.Transaction{
		OwnerId:    owner,
		Amount:     decimal.RequireFromString(amount),
		Direction:  dir,
		WalletType: wallet,
		CreatedAt:  at,
	}
}

func TestFold(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)

	txs := []models.Transaction{
		tx("w1", "1000", models.Credit, models.WalletBooking, earlier),
		tx("w1", "250", models.Debit, models.WalletBooking, earlier),
		tx("w1", "3.5625", models.Credit, models.WalletUpline, earlier),
		tx("w1", "2.1375", models.Credit, models.WalletDownline, earlier),
		tx("w1", "0.75", models.Credit, models.WalletMagic, earlier),
		tx("w1", "85", models.Credit, models.WalletDaily, earlier),
		tx("w1", "5", models.Credit, models.WalletPerformance, earlier),
		tx("w2", "999", models.Credit, models.WalletBooking, earlier),
		tx("w1", "50", models.Credit, models.WalletDaily, now.Add(time.Minute)),
	}

	s := Fold(txs, "w1", now)

	assert.Equal(t, "w1", s.WorkerId)
	assert.Equal(t, "750", s.BookingWallet.String())
	assert.Equal(t, "3.5625", s.UplineWallet.String())
	assert.Equal(t, "2.1375", s.DownlineWallet.String())
	assert.Equal(t, "0.75", s.MagicIncome.String())
	assert.Equal(t, "85", s.TodaysWallet.String())
	assert.Equal(t, "5", s.PerformanceWallet.String())
	assert.Equal(t, "846.45", s.TotalIncome.String())
}

func TestFoldEmpty(t *testing.T) {
	s := Fold(nil, "nobody", time.Now())

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.BookingWallet.IsZero())
}

func TestBalancesIgnoresTime(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	b := Balances([]models.Transaction{tx("w1", "10", models.Credit, models.WalletDaily, future)}, "w1")

	assert.Equal(t, "10", b[models.WalletDaily].String())
}

func TestMonthlyWork(t *testing.T) {
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	work := func(amount string, when time.Time) models.Transaction {
		w := tx("w1", amount, models.Credit, models.WalletDaily, when)
		w.RelatedOrderId = "o1"
		return w
	}

	txs := []models.Transaction{
		work("85", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		work("40", time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)),
		work("500", time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)),
		work("500", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		tx("w1", "1000", models.Credit, models.WalletDaily, at),
		tx("w1", "3.5625", models.Credit, models.WalletUpline, at),
		work("7", at),
	}
	txs[len(txs)-1].OwnerId = "w2"

	assert.Equal(t, "125", MonthlyWork(txs, "w1", at).String())
	assert.True(t, MonthlyWork(nil, "w1", at).IsZero())
}
