package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func receiveCmd() *cobra.Command {
	var (
		currencyFlag string
		amountFlag   string
	)

	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Show deposit addresses and build a payment request",
		Long: `Show your deposit addresses, or build a shareable payment-request link
with --amount:

  billfold receive --currency BTC
  billfold receive --amount 25 --currency USD`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReceive(cmd, currencyFlag, amountFlag)
		},
	}

	cmd.Flags().StringVar(&currencyFlag, "currency", "", "limit to one currency")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "request a specific amount")

	return cmd
}

func runReceive(cmd *cobra.Command, currencyFlag, amountFlag string) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}

	currencies := model.Currencies()
	if currencyFlag != "" {
		currency, parseErr := model.ParseCurrency(currencyFlag)
		if parseErr != nil {
			return parseErr
		}
		currencies = []model.Currency{currency}
	}

	fmt.Println(cli.FormatTitle("Receive Money")) //nolint:forbidigo // User-facing output

	var lines []string
	for _, c := range currencies {
		addr, addrErr := store.DepositAddress(ctx, c)
		if addrErr != nil {
			if errors.Is(addrErr, common.ErrNotFound) {
				continue
			}
			return addrErr
		}
		lines = append(lines, fmt.Sprintf("%s  %s", c, addr))
	}
	if len(lines) > 0 {
		fmt.Println(cli.RenderBox("Deposit Addresses", strings.Join(lines, "\n"))) //nolint:forbidigo // User-facing output
	}

	if amountFlag == "" {
		fmt.Println(cli.FormatInfo("Use --amount to build a shareable payment request")) //nolint:forbidigo // User-facing output
		return nil
	}

	amount, err := decimal.NewFromString(amountFlag)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountFlag, err)
	}
	requestCurrency := model.USD
	if currencyFlag != "" {
		requestCurrency, _ = model.ParseCurrency(currencyFlag)
	}

	link, err := paymentRequestLink(amount, requestCurrency)
	if err != nil {
		return err
	}
	fmt.Println(cli.RenderBox("Payment Request", link)) //nolint:forbidigo // User-facing output
	return nil
}

// paymentRequestLink encodes the request the way the share action does:
// a JSON payload in the link's data parameter.
func paymentRequestLink(amount decimal.Decimal, currency model.Currency) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"amount":   amount.String(),
		"currency": string(currency),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode payment request: %w", err)
	}

	return "https://wallet.app/pay?data=" + url.QueryEscape(string(payload)), nil
}
