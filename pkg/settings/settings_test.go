package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chris/tailorshop-ledger/pkg/cache"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/storage/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, "ledger", 30*time.Second), mr
}

func TestGetDefaults(t *testing.T) {
	c, _ := newCache(t)
	svc := New(memory.New(), c)

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "15", got.Deductions.WorkDeductionPercent.String())
	assert.Equal(t, "5", got.Deductions.MagicFundPercent.String())
	assert.Equal(t, "25", got.LevelDistributionRates[0].String())
	assert.True(t, got.LevelRequirements[9].IsOpen)
}

func TestGetIsCached(t *testing.T) {
	c, _ := newCache(t)
	store := new(mocks.Storage)
	stored := models.DefaultSettings()
	stored.Deductions.WorkDeductionPercent = decimal.NewFromInt(20)
	store.On("GetSettings", mock.Anything).Once().Return(&stored, nil)
	svc := New(store, c)

	for i := 0; i < 3; i++ {
		got, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "20", got.Deductions.WorkDeductionPercent.String())
	}
	store.AssertExpectations(t)
}

func TestGetStorageError(t *testing.T) {
	store := new(mocks.Storage)
	store.On("GetSettings", mock.Anything).Return(nil, errors.New("db error"))

	_, err := New(store, nil).Get(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load settings")
}

func TestUpdateInvalidatesCache(t *testing.T) {
	c, _ := newCache(t)
	store := memory.New()
	svc := New(store, c)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.NoError(t, err)

	next := models.DefaultSettings()
	next.Deductions.MagicFundPercent = decimal.NewFromInt(8)
	_, err = svc.Update(ctx, next)
	require.NoError(t, err)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "8", got.Deductions.MagicFundPercent.String())
}

func TestSetLevelRates(t *testing.T) {
	svc := New(memory.New(), nil)
	var rates [models.LevelCount]decimal.Decimal
	for i := range rates {
		rates[i] = decimal.NewFromInt(10)
	}

	got, err := svc.SetLevelRates(context.Background(), rates)

	require.NoError(t, err)
	assert.Equal(t, "10", got.LevelDistributionRates[0].String())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(s *models.Settings){
		"Negative Rate": func(s *models.Settings) {
			s.LevelDistributionRates[3] = decimal.NewFromInt(-1)
		},
		"Rates Over 100": func(s *models.Settings) {
			s.LevelDistributionRates[0] = decimal.NewFromInt(26 + 75)
		},
		"Deduction Over 100": func(s *models.Settings) {
			s.Deductions.WorkDeductionPercent = decimal.NewFromInt(101)
		},
		"Negative Magic": func(s *models.Settings) {
			s.Deductions.MagicFundPercent = decimal.NewFromInt(-5)
		},
		"Negative Directs": func(s *models.Settings) {
			s.LevelRequirements[2].RequiredDirects = -1
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := models.DefaultSettings()
			mutate(&s)
			assert.ErrorIs(t, Validate(&s), ErrInvalidSettings)
		})
	}

	t.Run("Defaults", func(t *testing.T) {
		s := models.DefaultSettings()
		assert.NoError(t, Validate(&s))
	})
}
