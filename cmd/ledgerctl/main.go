// Command ledgerctl inspects and adjusts the ledger from an operator shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chris/tailorshop-ledger/pkg/app"
	"github.com/chris/tailorshop-ledger/pkg/config"
)

func openCore(ctx context.Context) (*app.Core, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c, err := app.OpenCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.NewCore(store, c), nil
}

func main() {
	if err := newRootCmd(openCore).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
