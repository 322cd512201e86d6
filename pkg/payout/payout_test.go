package payout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/commission"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/rates"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/storage/mocks"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []websockets.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, m websockets.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, m)
	return nil
}

type failingDistributor struct {
	calls int
}

func (d *failingDistributor) Distribute(ctx context.Context, ev models.PayoutEvent) (*commission.Payout, error) {
	d.calls++
	return nil, errors.New("settings unavailable")
}

func setup(t *testing.T) (*memory.Store, *commission.Distributor) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "W", Role: models.RoleCutting, UplineId: "U", MagicUplineId: "M"}))
	require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "U"}))
	require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "M"}))
	require.NoError(t, store.PutRate(ctx, &models.Rate{
		Id:          "suit",
		GarmentType: "Suit",
		Normal:      decimal.NewFromInt(40),
		Medium:      decimal.NewFromInt(60),
		Regular:     decimal.NewFromInt(80),
		VIP:         decimal.NewFromInt(100),
		RateType:    models.RateFixed,
	}))
	dist := commission.NewDistributor(
		ledger.NewWriter(store),
		store,
		hierarchy.New(store),
		settings.New(store, nil),
		rates.NewResolver(store, nil),
	)
	return store, dist
}

func event() models.PayoutEvent {
	return models.PayoutEvent{
		OrderId:     "o1",
		BillNumber:  "B-7",
		Stage:       models.StageCutting,
		WorkerId:    "W",
		WorkerRole:  models.RoleCutting,
		GarmentType: "Suit",
		Price:       decimal.NewFromInt(1000),
		Quality:     models.QualityVIP,
	}
}

func stuck(t *testing.T, store *memory.Store) int {
	t.Helper()
	locks, err := store.ListStuckPayoutLocks(context.Background(), time.Now().Add(time.Minute))
	require.NoError(t, err)
	return len(locks)
}

func TestProcess(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, dist := setup(t)
		pub := &recordingPublisher{}
		svc := New(store, dist, pub)

		require.NoError(t, svc.Process(context.Background(), event()))

		txs := store.AllTransactions()
		assert.Len(t, txs, 3)
		assert.Equal(t, 0, stuck(t, store))
		require.Len(t, pub.messages, 3)

		first := pub.messages[0].Payload.(websockets.WalletUpdatePayload)
		assert.Equal(t, "W", first.UserID)
		assert.Equal(t, "Daily", first.WalletType)
		assert.Equal(t, "85", first.Change.String())
		assert.Equal(t, "85", first.NewBalance.String())
	})

	t.Run("Duplicate Delivery Skipped", func(t *testing.T) {
		store, dist := setup(t)
		svc := New(store, dist, nil)

		require.NoError(t, svc.Process(context.Background(), event()))
		require.NoError(t, svc.Process(context.Background(), event()))

		stats := ledger.Fold(store.AllTransactions(), "W", time.Now())
		assert.Equal(t, "85", stats.TodaysWallet.String())
		assert.Len(t, store.AllTransactions(), 3)
	})

	t.Run("Other Stage Pays Again", func(t *testing.T) {
		store, dist := setup(t)
		svc := New(store, dist, nil)

		ev := event()
		require.NoError(t, svc.Process(context.Background(), ev))
		ev.Stage = models.StageSewing
		require.NoError(t, svc.Process(context.Background(), ev))

		assert.Len(t, store.AllTransactions(), 6)
	})

	t.Run("Partial Cascade Keeps Lock", func(t *testing.T) {
		store, dist := setup(t)
		store.FailAppendAfter = 1
		pub := &recordingPublisher{}
		svc := New(store, dist, pub)

		err := svc.Process(context.Background(), event())

		var cerr *commission.CascadeError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, commission.StepMagic, cerr.Step)
		assert.Len(t, store.AllTransactions(), 1)
		assert.Len(t, pub.messages, 1)
		assert.Equal(t, 1, stuck(t, store))

		require.NoError(t, svc.Process(context.Background(), event()))
		assert.Len(t, store.AllTransactions(), 1)
	})

	t.Run("Nothing Written Releases Lock", func(t *testing.T) {
		store, dist := setup(t)
		failing := &failingDistributor{}

		err := New(store, failing, nil).Process(context.Background(), event())
		assert.Error(t, err)
		assert.Equal(t, 0, stuck(t, store))

		require.NoError(t, New(store, dist, nil).Process(context.Background(), event()))
		assert.Len(t, store.AllTransactions(), 3)
	})

	t.Run("First Write Failure Releases Lock", func(t *testing.T) {
		store, dist := setup(t)
		store.AppendErr = errors.New("throttled")
		pub := &recordingPublisher{}
		svc := New(store, dist, pub)

		err := svc.Process(context.Background(), event())

		var cerr *commission.CascadeError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, commission.StepWorker, cerr.Step)
		assert.Empty(t, store.AllTransactions())
		assert.Empty(t, pub.messages)
		assert.Equal(t, 0, stuck(t, store))

		store.AppendErr = nil
		require.NoError(t, svc.Process(context.Background(), event()))
		stats := ledger.Fold(store.AllTransactions(), "W", time.Now())
		assert.Equal(t, "85", stats.TodaysWallet.String())
	})

	t.Run("Lock Store Error", func(t *testing.T) {
		store := new(mocks.Storage)
		store.On("AcquirePayoutLock", mock.Anything, "o1#Cutting#W", "o1").Return(errors.New("db error"))
		failing := &failingDistributor{}

		err := New(store, failing, nil).Process(context.Background(), event())

		assert.Error(t, err)
		assert.Equal(t, 0, failing.calls)
		store.AssertExpectations(t)
	})
}
