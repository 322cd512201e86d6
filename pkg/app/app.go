// Package app assembles the store and the domain services shared by the
// server, the lambdas and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/tailorshop-ledger/pkg/cache"
	"github.com/chris/tailorshop-ledger/pkg/commission"
	"github.com/chris/tailorshop-ledger/pkg/config"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/metrics"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/rates"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	dydbstore "github.com/chris/tailorshop-ledger/pkg/storage/dynamodb"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
)

const cachePrefix = "tailorshop"

// NewLogger returns a JSON logger at the named level. Unknown levels mean info.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

// OpenStore opens the configured storage driver. The memory store starts
// with the default rate table.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == config.DriverMemory {
		store := memory.New()
		for _, r := range rates.Defaults() {
			r := r
			if err := store.PutRate(ctx, &r); err != nil {
				return nil, fmt.Errorf("failed to seed rate %s: %w", r.Id, err)
			}
		}
		return store, nil
	}

	if err := cfg.RequireTables(); err != nil {
		return nil, err
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables()), nil
}

// OpenCache connects to Redis. It returns a nil Cache, which reads through,
// when no address is configured.
func OpenCache(ctx context.Context, cfg *config.Config) (*cache.Cache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client, err := cache.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	return cache.New(client, cachePrefix, cfg.CacheTTL), nil
}

// Core holds the services every entry point needs.
type Core struct {
	Store       storage.Storage
	Writer      *ledger.Writer
	Settings    *settings.Service
	Rates       *rates.Resolver
	Hierarchy   *hierarchy.Service
	Distributor *commission.Distributor
}

// NewCore wires the services over store. c may be nil.
func NewCore(store storage.Storage, c *cache.Cache) *Core {
	writer := ledger.NewWriter(store)
	writer.OnRecord = func(tx *models.Transaction) {
		metrics.LedgerRecords.WithLabelValues(string(tx.WalletType), string(tx.Direction)).Inc()
	}

	core := &Core{
		Store:     store,
		Writer:    writer,
		Settings:  settings.New(store, c),
		Rates:     rates.NewResolver(store, c),
		Hierarchy: hierarchy.New(store),
	}
	core.Distributor = commission.NewDistributor(core.Writer, store, core.Hierarchy, core.Settings, core.Rates)
	return core
}
