package ledger

import (
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// Balances sums the signed amounts of ownerID's records per wallet type.
func Balances(txs []models.Transaction, ownerID string) map[models.WalletType]decimal.Decimal {
	return balances(txs, ownerID, time.Time{})
}

// Fold computes the wallet stats of workerID as of now. Records stamped
// after now are left out so a fold is a stable snapshot.
func Fold(txs []models.Transaction, workerID string, now time.Time) models.Stats {
	b := balances(txs, workerID, now)

	total := decimal.Zero
	for _, t := range models.WalletTypes {
		total = total.Add(b[t])
	}

	return models.Stats{
		WorkerId:          workerID,
		BookingWallet:     b[models.WalletBooking],
		UplineWallet:      b[models.WalletUpline],
		DownlineWallet:    b[models.WalletDownline],
		MagicIncome:       b[models.WalletMagic],
		TodaysWallet:      b[models.WalletDaily],
		PerformanceWallet: b[models.WalletPerformance],
		TotalIncome:       total,
	}
}

// MonthlyWork sums ownerID's released work payouts, the Daily credits tied
// to an order, in the calendar month containing at.
func MonthlyWork(txs []models.Transaction, ownerID string, at time.Time) decimal.Decimal {
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	end := start.AddDate(0, 1, 0)

	total := decimal.Zero
	for i := range txs {
		tx := &txs[i]
		if tx.OwnerId != ownerID || tx.WalletType != models.WalletDaily || tx.Direction != models.Credit {
			continue
		}
		if tx.RelatedOrderId == "" || tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

func balances(txs []models.Transaction, ownerID string, asOf time.Time) map[models.WalletType]decimal.Decimal {
	totals := make(map[models.WalletType]decimal.Decimal, len(models.WalletTypes))
	for _, t := range models.WalletTypes {
		totals[t] = decimal.Zero
	}
	for i := range txs {
		tx := &txs[i]
		if tx.OwnerId != ownerID {
			continue
		}
		if !asOf.IsZero() && tx.CreatedAt.After(asOf) {
			continue
		}
		totals[tx.WalletType] = totals[tx.WalletType].Add(tx.Signed())
	}
	return totals
}
