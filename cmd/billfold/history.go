package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/ledger"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/tui"
	"github.com/spf13/cobra"
)

type historyFlags struct {
	search      string
	txType      string
	status      string
	currency    string
	sort        string
	page        int
	analytics   bool
	interactive bool
}

func historyCmd() *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and filter your transaction history",
		Long: `List transactions with search, filtering, sorting, and pagination.
Use --interactive for the full-screen browser, or --analytics for the
aggregate summary panel.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.search, "search", "", "search description, counterparty, and id")
	cmd.Flags().StringVar(&flags.txType, "type", ledger.FilterAll, "filter by type (send, receive, deposit, withdrawal)")
	cmd.Flags().StringVar(&flags.status, "status", ledger.FilterAll, "filter by status (completed, pending, failed)")
	cmd.Flags().StringVar(&flags.currency, "currency", ledger.FilterAll, "filter by currency (USD, BTC, ETH)")
	cmd.Flags().StringVar(&flags.sort, "sort", string(ledger.SortDateDesc), "sort order (date-desc, date-asc, amount-desc, amount-asc, type)")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page number")
	cmd.Flags().BoolVar(&flags.analytics, "analytics", false, "show the analytics summary")
	cmd.Flags().BoolVar(&flags.interactive, "interactive", false, "open the interactive browser")

	return cmd
}

func runHistory(cmd *cobra.Command, flags *historyFlags) error {
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
	view.SetPage(flags.page)

	if flags.interactive {
		return tui.RunHistory(ctx, view)
	}

	if flags.analytics {
		printAnalytics(view.Analytics())
		return nil
	}

	return printHistoryPage(view)
}

func printHistoryPage(view *ledger.View) error {
	rows := view.Rows()
	if len(rows) == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions match the current filters.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Transaction History")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("Date"),
		cli.BoldStyle.Render("Type"),
		cli.BoldStyle.Render("Status"),
		cli.BoldStyle.Render("Amount"),
		cli.BoldStyle.Render("Counterparty"),
		cli.BoldStyle.Render("Description")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 8),
		strings.Repeat("─", 16),
		strings.Repeat("─", 10),
		strings.Repeat("─", 9),
		strings.Repeat("─", 12),
		strings.Repeat("─", 16),
		strings.Repeat("─", 24)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, tx := range rows {
		amount := tx.Currency.Format(tx.Amount)
		if tx.Type == model.TypeSend || tx.Type == model.TypeWithdrawal {
			amount = "-" + amount
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Date.Format("2006-01-02 15:04"),
			tx.Type,
			tx.Status,
			amount,
			tx.Counterparty(),
			tx.Description); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", tx.ID, err)
		}
	}

	if _, err := fmt.Fprintf(w, "\npage %d of %d (%d transactions)\n",
		view.Page(), view.TotalPages(), view.FilteredCount()); err != nil {
		return fmt.Errorf("failed to write footer: %w", err)
	}

	return nil
}

func printAnalytics(a ledger.Analytics) {
	var counts []string
	for _, t := range model.TransactionTypes() {
		counts = append(counts, fmt.Sprintf("%s: %d", t, a.ByType[t]))
	}

	content := fmt.Sprintf("Total sent (completed): %s\nTotal received (completed): %s\nTotal fees (completed): %s\n\nBy type: %s",
		a.TotalSent.StringFixed(2),
		a.TotalReceived.StringFixed(2),
		a.TotalFees.StringFixed(2),
		strings.Join(counts, ", "))

	fmt.Println(cli.RenderBox(cli.ChartIcon+" Analytics", content)) //nolint:forbidigo // User-facing output
}
