// Package money holds the rounding rules shared by every ledger write.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the fixed precision of stored amounts.
const Places = 5

var hundred = decimal.NewFromInt(100)

// Round5 rounds half away from zero at the fifth decimal place.
func Round5(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns base * pct / 100 without rounding.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// ParseAmount parses a decimal string and rounds it to Places.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Round5(d), nil
}

// Sum adds amounts.
func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
