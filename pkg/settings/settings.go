// Package settings serves the configuration singleton read by every payout.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/cache"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

const cacheKey = "settings"

// ErrInvalidSettings is returned by Update for out-of-range values.
var ErrInvalidSettings = errors.New("invalid settings")

var hundred = decimal.NewFromInt(100)

// Service reads settings through a short-lived cache. Readers may see a
// value up to one TTL old after an update on another instance.
type Service struct {
	store storage.SettingsStore
	cache *cache.Cache
	now   func() time.Time
}

// New creates a Service. c may be nil.
func New(store storage.SettingsStore, c *cache.Cache) *Service {
	return &Service{store: store, cache: c, now: time.Now}
}

// Get returns the current settings, or the defaults when none were saved.
func (s *Service) Get(ctx context.Context) (*models.Settings, error) {
	var out models.Settings
	err := s.cache.FetchJSON(ctx, cacheKey, &out, func(ctx context.Context) (any, error) {
		stored, err := s.store.GetSettings(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return models.DefaultSettings(), nil
		}
		if err != nil {
			return nil, err
		}
		return stored, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &out, nil
}

// Update validates and stores next, then drops the cached copy.
func (s *Service) Update(ctx context.Context, next models.Settings) (*models.Settings, error) {
	if err := Validate(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()

	if err := s.store.PutSettings(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		return nil, err
	}
	return &next, nil
}

// SetLevelRates replaces only the ten distribution rates.
func (s *Service) SetLevelRates(ctx context.Context, rates [models.LevelCount]decimal.Decimal) (*models.Settings, error) {
	cur, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	cur.LevelDistributionRates = rates
	return s.Update(ctx, *cur)
}

// Validate checks percentages and the level rate table.
func Validate(st *models.Settings) error {
	percents := map[string]decimal.Decimal{
		"work deduction":   st.Deductions.WorkDeductionPercent,
		"downline support": st.Deductions.DownlineSupportPercent,
		"magic fund":       st.Deductions.MagicFundPercent,
		"investment order": st.InvestmentOrderPercent,
	}
	for name, p := range percents {
		if p.IsNegative() || p.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s percent %s outside 0..100", ErrInvalidSettings, name, p)
		}
	}

	sum := decimal.Zero
	for i, r := range st.LevelDistributionRates {
		if r.IsNegative() {
			return fmt.Errorf("%w: level %d rate %s is negative", ErrInvalidSettings, i+1, r)
		}
		sum = sum.Add(r)
	}
	if sum.GreaterThan(hundred) {
		return fmt.Errorf("%w: level rates sum to %s", ErrInvalidSettings, sum)
	}

	for i, req := range st.LevelRequirements {
		if req.RequiredDirects < 0 {
			return fmt.Errorf("%w: level %d requires %d directs", ErrInvalidSettings, i+1, req.RequiredDirects)
		}
	}
	if st.WithdrawalMinimum.IsNegative() {
		return fmt.Errorf("%w: negative withdrawal minimum", ErrInvalidSettings)
	}
	return nil
}
