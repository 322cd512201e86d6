package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/app"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/money"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type opener func(ctx context.Context) (*app.Core, error)

type cli struct {
	open opener
	core *app.Core
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Inspect and adjust the tailoring shop ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open ledger: %w", err)
			}
			c.core = core
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats WORKER",
		Short: "Print the wallet balances of a worker",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runStats,
	}
	statsCmd.Flags().String("as-of", "", "RFC3339 time to fold the ledger at")

	historyCmd := &cobra.Command{
		Use:   "history WORKER",
		Short: "List the ledger records of a worker in write order",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runHistory,
	}
	historyCmd.Flags().Int("limit", 0, "Show only the last N records")

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the commission settings",
	}
	settingsCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings as JSON",
			Args:  cobra.NoArgs,
			RunE:  c.runSettingsShow,
		},
		&cobra.Command{
			Use:   "set-rates R1 R2 R3 R4 R5 R6 R7 R8 R9 R10",
			Short: "Replace the ten level distribution rates",
			Args:  cobra.ExactArgs(models.LevelCount),
			RunE:  c.runSetRates,
		},
	)

	releaseCmd := &cobra.Command{
		Use:   "release WORKER AMOUNT WALLET",
		Short: "Credit a worker's wallet by hand",
		Args:  cobra.ExactArgs(3),
		RunE:  c.runRelease,
	}
	releaseCmd.Flags().String("note", "", "Reason recorded in the description")

	verifyCmd := &cobra.Command{
		Use:   "verify WORKER",
		Short: "Recompute a worker's balances from the ledger and check every record",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runVerify,
	}

	workersCmd := &cobra.Command{
		Use:   "workers",
		Short: "Manage staff accounts",
	}
	addWorkerCmd := &cobra.Command{
		Use:   "add NAME MOBILE ROLE",
		Short: "Create a worker with any role, including Admin and Manager",
		Args:  cobra.ExactArgs(3),
		RunE:  c.runAddWorker,
	}
	addWorkerCmd.Flags().String("id", "", "Worker id, generated when empty")
	addWorkerCmd.Flags().String("upline", "", "Sponsor id")
	addWorkerCmd.Flags().String("magic-upline", "", "Magic sponsor id")
	workersCmd.AddCommand(addWorkerCmd)

	root.AddCommand(statsCmd, historyCmd, settingsCmd, releaseCmd, verifyCmd, workersCmd)
	return root
}

func (c *cli) runStats(cmd *cobra.Command, args []string) error {
	workerID := args[0]
	asOf := time.Now()
	if raw, _ := cmd.Flags().GetString("as-of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("invalid --as-of: %w", err)
		}
		asOf = t
	}

	txs, err := c.core.Store.ListTransactionsByOwner(cmd.Context(), workerID)
	if err != nil {
		return err
	}
	s := ledger.Fold(txs, workerID, asOf)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Booking\t%s\n", s.BookingWallet)
	fmt.Fprintf(w, "Upline\t%s\n", s.UplineWallet)
	fmt.Fprintf(w, "Downline\t%s\n", s.DownlineWallet)
	fmt.Fprintf(w, "Magic\t%s\n", s.MagicIncome)
	fmt.Fprintf(w, "Daily\t%s\n", s.TodaysWallet)
	fmt.Fprintf(w, "Performance\t%s\n", s.PerformanceWallet)
	fmt.Fprintf(w, "Total\t%s\n", s.TotalIncome)
	return w.Flush()
}

func (c *cli) runHistory(cmd *cobra.Command, args []string) error {
	txs, err := c.core.Store.ListTransactionsByOwner(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit > 0 && len(txs) > limit {
		txs = txs[len(txs)-limit:]
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, tx := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tx.CreatedAt.Format(time.RFC3339), tx.WalletType, tx.Direction, tx.Amount, tx.Description)
	}
	return w.Flush()
}

func (c *cli) runSettingsShow(cmd *cobra.Command, args []string) error {
	st, err := c.core.Settings.Get(cmd.Context())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func (c *cli) runSetRates(cmd *cobra.Command, args []string) error {
	var rates [models.LevelCount]decimal.Decimal
	for i, raw := range args {
		d, err := money.ParseAmount(raw)
		if err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
		rates[i] = d
	}
	if _, err := c.core.Settings.SetLevelRates(cmd.Context(), rates); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "level rates updated")
	return nil
}

func (c *cli) runRelease(cmd *cobra.Command, args []string) error {
	amount, err := money.ParseAmount(args[1])
	if err != nil {
		return err
	}
	wallet := models.WalletType(args[2])
	if !wallet.Valid() {
		return fmt.Errorf("unknown wallet %q", args[2])
	}
	note, _ := cmd.Flags().GetString("note")

	svc := requests.New(c.core.Store, c.core.Writer, c.core.Settings)
	id, err := svc.ManualRelease(cmd.Context(), args[0], amount, wallet, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "released %s to %s %s: %s\n", amount, args[0], wallet, id)
	return nil
}

func (c *cli) runAddWorker(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	upline, _ := cmd.Flags().GetString("upline")
	magic, _ := cmd.Flags().GetString("magic-upline")

	w, err := workers.New(c.core.Store).Add(cmd.Context(), workers.Registration{
		Id:            id,
		Name:          args[0],
		Mobile:        args[1],
		Role:          models.Role(args[2]),
		UplineId:      upline,
		MagicUplineId: magic,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added %s %s: %s\n", w.Role, w.Name, w.Id)
	return nil
}

// runVerify reports records that a ledger write would have rejected and
// prints the balances folded from the rest.
func (c *cli) runVerify(cmd *cobra.Command, args []string) error {
	workerID := args[0]

	var (
		worker *models.Worker
		txs    []models.Transaction
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		w, err := c.core.Hierarchy.Worker(ctx, workerID)
		worker = w
		return err
	})
	g.Go(func() error {
		all, err := c.core.Store.ListTransactionsByOwner(ctx, workerID)
		txs = all
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bad := 0
	for _, tx := range txs {
		if problem := checkRecord(&tx); problem != "" {
			bad++
			fmt.Fprintf(out, "BAD %s: %s\n", tx.Id, problem)
		}
	}

	balances := ledger.Balances(txs, worker.Id)
	for _, t := range models.WalletTypes {
		fmt.Fprintf(out, "%s %s\n", t, balances[t])
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d records failed verification", bad, len(txs))
	}
	fmt.Fprintf(out, "%d records ok\n", len(txs))
	return nil
}

func checkRecord(tx *models.Transaction) string {
	switch {
	case !tx.Amount.IsPositive():
		return "amount is not positive"
	case !tx.Amount.Equal(money.Round5(tx.Amount)):
		return "amount has more than five decimal places"
	case !tx.Direction.Valid():
		return fmt.Sprintf("unknown direction %q", tx.Direction)
	case !tx.WalletType.Valid():
		return fmt.Sprintf("unknown wallet %q", tx.WalletType)
	}
	return ""
}
