package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/ledger"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const recentActivityCount = 5

func dashboardCmd() *cobra.Command {
	var hideBalances bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show balances and recent activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, hideBalances)
		},
	}

	cmd.Flags().BoolVar(&hideBalances, "hide-balances", false, "mask balance amounts")

	return cmd
}

func runDashboard(cmd *cobra.Command, hideBalances bool) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}

	balances, err := store.Balances(ctx)
	if err != nil {
		return fmt.Errorf("failed to load balances: %w", err)
	}

	fmt.Println(cli.FormatTitle("Dashboard")) //nolint:forbidigo // User-facing output

	var lines []string
	totalUSD := decimal.Zero
	currencies := make([]model.Currency, 0, len(balances))
	for c := range balances {
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })

	for _, c := range currencies {
		balance := balances[c]
		rate, rateErr := store.ExchangeRate(ctx, c)
		if rateErr != nil {
			return fmt.Errorf("failed to load exchange rate: %w", rateErr)
		}
		usd := balance.Mul(rate)
		totalUSD = totalUSD.Add(usd)

		if hideBalances {
			lines = append(lines, fmt.Sprintf("%s  ••••••", c))
			continue
		}
		line := fmt.Sprintf("%s  %s", c, c.Format(balance))
		if c.IsCrypto() {
			line += cli.SubtleStyle.Render(fmt.Sprintf("  ≈ $%s", usd.StringFixed(2)))
		}
		lines = append(lines, line)
	}

	if hideBalances {
		lines = append(lines, "", "Total  ••••••")
	} else {
		lines = append(lines, "", cli.BoldStyle.Render(fmt.Sprintf("Total  $%s", totalUSD.StringFixed(2))))
	}
	fmt.Println(cli.RenderBox("Balances", strings.Join(lines, "\n"))) //nolint:forbidigo // User-facing output

	return printRecentActivity(ctx, store)
}

func printRecentActivity(ctx context.Context, store service.DataProvider) error {
	transactions, err := store.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	view := ledger.NewView(transactions)
	recent := view.Filtered()
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}

	var lines []string
	for _, tx := range recent {
		icon := cli.ReceiveIcon
		amount := tx.Currency.Format(tx.Amount)
		switch tx.Type {
		case model.TypeSend, model.TypeWithdrawal:
			icon = cli.SendIcon
			amount = cli.AmountOutStyle.Render("-" + amount)
		default:
			amount = cli.AmountInStyle.Render("+" + amount)
		}

		label := tx.Description
		if cp := tx.Counterparty(); cp != "" {
			label = fmt.Sprintf("%s · %s", cp, tx.Description)
		}
		lines = append(lines, fmt.Sprintf("%s %s  %-10s %s  %s",
			icon, tx.Date.Format("Jan 02"), tx.Type, amount, label))
	}
	if len(lines) == 0 {
		lines = append(lines, cli.SubtleStyle.Render("No activity yet"))
	}

	fmt.Println(cli.RenderBox("Recent Activity", strings.Join(lines, "\n"))) //nolint:forbidigo // User-facing output
	return nil
}
