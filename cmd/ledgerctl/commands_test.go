package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/app"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, store *memory.Store, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(func(ctx context.Context) (*app.Core, error) {
		return app.NewCore(store, nil), nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.PutWorker(context.Background(), &models.Worker{Id: "W"}))
	return store
}

func TestReleaseAndStats(t *testing.T) {
	store := seeded(t)

	out, err := run(t, store, "release", "W", "250.5", "Performance", "--note", "Diwali bonus")
	require.NoError(t, err)
	assert.Contains(t, out, "released 250.5 to W Performance")

	out, err = run(t, store, "stats", "W")
	require.NoError(t, err)
	assert.Regexp(t, `Performance\s+250.5`, out)
	assert.Regexp(t, `Total\s+250.5`, out)

	out, err = run(t, store, "history", "W")
	require.NoError(t, err)
	assert.Contains(t, out, "Diwali bonus")

	out, err = run(t, store, "stats", "W", "--as-of", time.Now().Add(-time.Hour).Format(time.RFC3339))
	require.NoError(t, err)
	assert.Regexp(t, `Total\s+0`, out)
}

func TestReleaseRejectsUnknownWallet(t *testing.T) {
	_, err := run(t, seeded(t), "release", "W", "10", "Savings")
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	store := seeded(t)

	_, err := run(t, store, "settings", "set-rates", "30", "20", "10", "10", "10", "5", "5", "5", "3", "2")
	require.NoError(t, err)

	out, err := run(t, store, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"30"`)

	_, err = run(t, store, "settings", "set-rates", "60", "60", "0", "0", "0", "0", "0", "0", "0", "0")
	assert.Error(t, err, "rates over 100 percent")

	_, err = run(t, store, "settings", "set-rates", "1", "2")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := seeded(t)
		_, err := run(t, store, "release", "W", "100", "Daily")
		require.NoError(t, err)

		out, err := run(t, store, "verify", "W")
		require.NoError(t, err)
		assert.Contains(t, out, "Daily 100")
		assert.Contains(t, out, "1 records ok")
	})

	t.Run("Bad Record", func(t *testing.T) {
		store := seeded(t)
		require.NoError(t, store.AppendTransaction(context.Background(), &models.Transaction{
			Id:         "tx-bad",
			OwnerId:    "W",
			Amount:     decimal.RequireFromString("1.1234567"),
			Direction:  models.Credit,
			WalletType: models.WalletDaily,
		}))

		out, err := run(t, store, "verify", "W")
		assert.Error(t, err)
		assert.Contains(t, out, "BAD tx-bad")
	})

	t.Run("Unknown Worker", func(t *testing.T) {
		_, err := run(t, memory.New(), "verify", "nobody")
		assert.Error(t, err)
	})
}

func TestOpenFailure(t *testing.T) {
	cmd := newRootCmd(func(ctx context.Context) (*app.Core, error) {
		return nil, errors.New("no credentials")
	})
	cmd.SetArgs([]string{"stats", "W"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestAddWorker(t *testing.T) {
	store := seeded(t)

	out, err := run(t, store, "workers", "add", "Owner", "9876543210", "Admin", "--id", "ADMIN")
	require.NoError(t, err)
	assert.Contains(t, out, "added Admin Owner: ADMIN")

	_, err = run(t, store, "workers", "add", "Cutter", "9876543211", "Cutting", "--id", "CUT", "--upline", "ADMIN")
	require.NoError(t, err)
	cut, err := store.GetWorker(context.Background(), "CUT")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", cut.UplineId)

	_, err = run(t, store, "workers", "add", "Ghost", "9876543212", "Cutting", "--upline", "NOBODY")
	assert.Error(t, err)

	_, err = run(t, store, "workers", "add", "Dup", "9876543213", "Cutting", "--id", "CUT")
	assert.Error(t, err)
}
