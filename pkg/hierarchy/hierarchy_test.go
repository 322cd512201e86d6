package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedChain(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		w := &models.Worker{Id: fmt.Sprintf("w%d", i), Role: models.RoleCutting}
		if i+1 < n {
			w.UplineId = fmt.Sprintf("w%d", i+1)
		}
		require.NoError(t, store.PutWorker(context.Background(), w))
	}
}

func TestUplineOf(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "a", UplineId: "b", MagicUplineId: "m"}))
	require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "b"}))
	svc := New(store)

	up, ok, err := svc.UplineOf(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", up)

	magic, ok, err := svc.MagicUplineOf(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "m", magic)

	_, ok, err = svc.UplineOf(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = svc.MagicUplineOf(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAncestors(t *testing.T) {
	t.Run("Bounded To Ten", func(t *testing.T) {
		store := memory.New()
		seedChain(t, store, 15)

		chain, err := New(store).Ancestors(context.Background(), "w0", 0)

		require.NoError(t, err)
		assert.Len(t, chain, MaxDepth)
		assert.Equal(t, "w1", chain[0])
		assert.Equal(t, "w10", chain[9])
	})

	t.Run("Short Chain", func(t *testing.T) {
		store := memory.New()
		seedChain(t, store, 4)

		chain, err := New(store).Ancestors(context.Background(), "w0", MaxDepth)

		require.NoError(t, err)
		assert.Equal(t, []string{"w1", "w2", "w3"}, chain)
	})

	t.Run("Cycle Stops At Depth", func(t *testing.T) {
		store := memory.New()
		ctx := context.Background()
		require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "x", UplineId: "y"}))
		require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "y", UplineId: "x"}))

		chain, err := New(store).Ancestors(ctx, "x", 3)

		require.NoError(t, err)
		assert.Equal(t, []string{"y", "x", "y"}, chain)
	})

	t.Run("Storage Error", func(t *testing.T) {
		store := new(mocks.Storage)
		store.On("GetWorker", mock.Anything, "w0").Return(&models.Worker{Id: "w0", UplineId: "w1"}, nil)
		store.On("GetWorker", mock.Anything, "w1").Return(nil, errors.New("db error"))

		chain, err := New(store).Ancestors(context.Background(), "w0", 5)

		assert.Error(t, err)
		assert.Equal(t, []string{"w1"}, chain)
		store.AssertExpectations(t)
	})
}

func TestDirects(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: id, UplineId: "s"}))
	}

	n, err := New(store).Directs(ctx, "s")

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func ids(ws []models.Worker) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Id
	}
	return out
}

func TestTree(t *testing.T) {
	ctx := context.Background()

	t.Run("Upline Levels", func(t *testing.T) {
		store := memory.New()
		for _, w := range []models.Worker{
			{Id: "root"},
			{Id: "a", UplineId: "root"},
			{Id: "b", UplineId: "root"},
			{Id: "a1", UplineId: "a", MagicUplineId: "root"},
			{Id: "b1", UplineId: "b"},
			{Id: "a11", UplineId: "a1"},
		} {
			w := w
			require.NoError(t, store.PutWorker(ctx, &w))
		}

		levels, err := New(store).Tree(ctx, "root", TreeUpline, 0)

		require.NoError(t, err)
		require.Len(t, levels, MaxDepth)
		assert.Equal(t, 1, levels[0].Level)
		assert.Equal(t, []string{"a", "b"}, ids(levels[0].Members))
		assert.Equal(t, []string{"a1", "b1"}, ids(levels[1].Members))
		assert.Equal(t, []string{"a11"}, ids(levels[2].Members))
		assert.Empty(t, levels[3].Members)

		magic, err := New(store).Tree(ctx, "root", TreeMagic, 2)
		require.NoError(t, err)
		require.Len(t, magic, 2)
		assert.Equal(t, []string{"a1"}, ids(magic[0].Members))
		assert.Empty(t, magic[1].Members)
	})

	t.Run("Cycle Listed Once", func(t *testing.T) {
		store := memory.New()
		require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "x", UplineId: "y"}))
		require.NoError(t, store.PutWorker(ctx, &models.Worker{Id: "y", UplineId: "x"}))

		levels, err := New(store).Tree(ctx, "x", TreeUpline, 4)

		require.NoError(t, err)
		assert.Equal(t, []string{"y"}, ids(levels[0].Members))
		for _, l := range levels[1:] {
			assert.Empty(t, l.Members)
		}
	})

	t.Run("Store Error", func(t *testing.T) {
		store := new(mocks.Storage)
		store.On("ListMagicDirects", mock.Anything, "root").Return(nil, errors.New("db error"))

		_, err := New(store).Tree(ctx, "root", TreeMagic, 1)

		assert.ErrorContains(t, err, "failed to list magic team of root")
		store.AssertExpectations(t)
	})
}
