package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/ledger"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	output   string
	search   string
	txType   string
	status   string
	currency string
	sort     string
}

func exportCmd() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transaction history as CSV",
		Long: `Write the transaction history to a CSV file. The same filters as
'billfold history' apply; all matching rows are exported regardless of
pagination.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "transactions.csv", "output file path")
	cmd.Flags().StringVar(&flags.search, "search", "", "search description, counterparty, and id")
	cmd.Flags().StringVar(&flags.txType, "type", ledger.FilterAll, "filter by type")
	cmd.Flags().StringVar(&flags.status, "status", ledger.FilterAll, "filter by status")
	cmd.Flags().StringVar(&flags.currency, "currency", ledger.FilterAll, "filter by currency")
	cmd.Flags().StringVar(&flags.sort, "sort", string(ledger.SortDateDesc), "sort order")

	return cmd
}

func runExport(cmd *cobra.Command, flags *exportFlags) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}
	transactions, err := store.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	view := ledger.NewView(transactions)
	view.SetSearch(flags.search)
	view.SetTypeFilter(flags.txType)
	view.SetStatusFilter(flags.status)
	view.SetCurrencyFilter(flags.currency)

	sortKey := ledger.SortKey(flags.sort)
	if !sortKey.Valid() {
		return fmt.Errorf("invalid sort key %q", flags.sort)
	}
	view.SetSort(sortKey)

	f, err := os.Create(flags.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", flags.output, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close export file", "error", closeErr)
		}
	}()

	if err := view.ExportCSV(f); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", view.FilteredCount(), flags.output))) //nolint:forbidigo // User-facing output
	return nil
}
