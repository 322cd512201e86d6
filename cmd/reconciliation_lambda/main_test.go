package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/storage/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleRequest(t *testing.T) {
	stuckPayoutThreshold = 20 * time.Minute
	staleRequestThreshold = 72 * time.Hour

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		mem := memory.New()
		store = mem

		require.NoError(t, mem.AcquirePayoutLock(ctx, "o1#Cutting#W", "o1"))
		require.NoError(t, mem.AcquirePayoutLock(ctx, "o2#Cutting#W", "o2"))
		require.NoError(t, mem.CompletePayoutLock(ctx, "o2#Cutting#W"))

		start := time.Now()
		require.NoError(t, mem.CreateRequest(ctx, &models.Request{Id: "r-old", UserId: "A", Type: models.WITHDRAW, Amount: decimal.NewFromInt(500), Status: models.PENDING, CreatedAt: start.Add(-100 * time.Hour)}))
		require.NoError(t, mem.CreateRequest(ctx, &models.Request{Id: "r-new", UserId: "A", Type: models.ADD_FUNDS, Amount: decimal.NewFromInt(500), Status: models.PENDING, CreatedAt: start}))

		now = func() time.Time { return start.Add(time.Hour) }
		defer func() { now = time.Now }()

		report, err := HandleRequest(ctx)
		require.NoError(t, err)
		assert.Equal(t, Report{StuckPayouts: 1, StaleRequests: 1}, report)
	})

	t.Run("Storage Error", func(t *testing.T) {
		m := new(mocks.Storage)
		m.On("ListStuckPayoutLocks", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down"))
		store = m

		_, err := HandleRequest(context.Background())
		assert.Error(t, err)
		m.AssertExpectations(t)
	})
}
