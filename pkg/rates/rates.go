// Package rates resolves the base payout of a handover from the rate table.
package rates

import (
	"context"
	"fmt"
	"strings"

	"github.com/chris/tailorshop-ledger/pkg/cache"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/money"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// FallbackPercent is the share of the price paid when no rate matches.
// The business owner has not confirmed this value.
var FallbackPercent = decimal.NewFromInt(10)

const cacheKey = "rates"

// Resolver looks up rates, optionally through a cache.
type Resolver struct {
	store storage.RateStore
	cache *cache.Cache
}

// NewResolver creates a Resolver. c may be nil.
func NewResolver(store storage.RateStore, c *cache.Cache) *Resolver {
	return &Resolver{store: store, cache: c}
}

// List returns every rate.
func (r *Resolver) List(ctx context.Context) ([]models.Rate, error) {
	var out []models.Rate
	err := r.cache.FetchJSON(ctx, cacheKey, &out, func(ctx context.Context) (any, error) {
		return r.store.ListRates(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return out, nil
}

// Put stores a rate and drops the cached table.
func (r *Resolver) Put(ctx context.Context, rate *models.Rate) error {
	if err := r.store.PutRate(ctx, rate); err != nil {
		return fmt.Errorf("failed to save rate %s: %w", rate.Id, err)
	}
	return r.cache.Invalidate(ctx, cacheKey)
}

// Find returns the rate for a garment type and role. A rate naming both
// wins, then one naming only the garment type, then one naming only the role.
func (r *Resolver) Find(ctx context.Context, garmentType string, role models.Role) (*models.Rate, bool, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	if rate := match(all, garmentType, role); rate != nil {
		return rate, true, nil
	}
	return nil, false, nil
}

// BasePayout computes the payout for one handover before deductions.
// A Percentage rate pays price*rate/100, a Fixed rate pays the rate, and a
// miss pays FallbackPercent of the price.
func (r *Resolver) BasePayout(ctx context.Context, garmentType string, role models.Role, quality models.Quality, price decimal.Decimal) (decimal.Decimal, error) {
	rate, ok, err := r.Find(ctx, garmentType, role)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return money.Percent(price, FallbackPercent), nil
	}
	return Apply(rate, quality, price), nil
}

// Apply evaluates a rate record for one quality tier and price.
func Apply(rate *models.Rate, quality models.Quality, price decimal.Decimal) decimal.Decimal {
	value := rate.For(quality)
	if rate.RateType == models.RatePercentage {
		return money.Percent(price, value)
	}
	return value
}

func match(all []models.Rate, garmentType string, role models.Role) *models.Rate {
	var byGarment, byRole *models.Rate
	for i := range all {
		rate := &all[i]
		sameGarment := rate.GarmentType != "" && strings.EqualFold(rate.GarmentType, garmentType)
		sameRole := rate.Role != "" && rate.Role == role
		switch {
		case sameGarment && sameRole:
			return rate
		case sameGarment && rate.Role == "" && byGarment == nil:
			byGarment = rate
		case sameRole && rate.GarmentType == "" && byRole == nil:
			byRole = rate
		}
	}
	if byGarment != nil {
		return byGarment
	}
	return byRole
}
