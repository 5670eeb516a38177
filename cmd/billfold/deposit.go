package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type depositFlags struct {
	method   string
	amount   string
	currency string

	routingNumber string
	accountNumber string
	accountType   string

	cardNumber     string
	expiryMonth    string
	expiryYear     string
	cvv            string
	cardholderName string

	cryptoCurrency string

	swiftCode         string
	bankName          string
	bankAddress       string
	accountHolderName string

	listMethods bool
}

func depositCmd() *cobra.Command {
	flags := &depositFlags{}

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Add funds to your wallet",
		Long: `Add funds via bank transfer, card, crypto deposit, wire, or a digital
wallet. Each method has its own required fields, limits, and fee:

  billfold deposit --method bank --amount 500 --routing-number 021000021 \
      --account-number 12345678
  billfold deposit --method card --amount 150 --card-number 4242424242424242 \
      --expiry-month 12 --expiry-year 2027 --cvv 123 --cardholder-name "Jane Doe"

Use --list to see all methods with fees and limits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.listMethods {
				printDepositMethods()
				return nil
			}
			return runDeposit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.method, "method", "bank", "funding method (bank, card, crypto, wire, digital)")
	cmd.Flags().StringVar(&flags.amount, "amount", "", "amount to deposit")
	cmd.Flags().StringVar(&flags.currency, "currency", "USD", "currency (USD, BTC, ETH)")
	cmd.Flags().StringVar(&flags.routingNumber, "routing-number", "", "bank routing number (9 digits)")
	cmd.Flags().StringVar(&flags.accountNumber, "account-number", "", "bank account number")
	cmd.Flags().StringVar(&flags.accountType, "account-type", "checking", "bank account type")
	cmd.Flags().StringVar(&flags.cardNumber, "card-number", "", "card number")
	cmd.Flags().StringVar(&flags.expiryMonth, "expiry-month", "", "card expiry month")
	cmd.Flags().StringVar(&flags.expiryYear, "expiry-year", "", "card expiry year")
	cmd.Flags().StringVar(&flags.cvv, "cvv", "", "card CVV")
	cmd.Flags().StringVar(&flags.cardholderName, "cardholder-name", "", "name on the card")
	cmd.Flags().StringVar(&flags.cryptoCurrency, "crypto-currency", "BTC", "crypto currency to deposit")
	cmd.Flags().StringVar(&flags.swiftCode, "swift-code", "", "SWIFT/BIC code")
	cmd.Flags().StringVar(&flags.bankName, "bank-name", "", "bank name")
	cmd.Flags().StringVar(&flags.bankAddress, "bank-address", "", "bank address")
	cmd.Flags().StringVar(&flags.accountHolderName, "account-holder-name", "", "account holder name")
	cmd.Flags().BoolVar(&flags.listMethods, "list", false, "list funding methods")

	return cmd
}

func printDepositMethods() {
	fmt.Println(cli.FormatTitle("Funding Methods")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("Method"),
		cli.BoldStyle.Render("Name"),
		cli.BoldStyle.Render("Processing"),
		cli.BoldStyle.Render("Fee"),
		cli.BoldStyle.Render("Limits"))

	for _, m := range model.DepositMethods() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%s – $%s\n",
			m.ID, m.Name, m.ProcessingTime, m.FeeLabel,
			m.MinAmount.StringFixed(0), m.MaxAmount.StringFixed(0))
	}
}

func runDeposit(cmd *cobra.Command, flags *depositFlags) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}
	gw, err := initGateway(store)
	if err != nil {
		return err
	}

	amount := decimal.Zero
	if flags.amount != "" {
		amount, err = decimal.NewFromString(flags.amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", flags.amount, err)
		}
	}
	currency, err := model.ParseCurrency(flags.currency)
	if err != nil {
		return err
	}

	request := model.DepositRequest{
		Method:            model.DepositMethodID(flags.method),
		Amount:            amount,
		Currency:          currency,
		RoutingNumber:     flags.routingNumber,
		AccountNumber:     flags.accountNumber,
		AccountType:       flags.accountType,
		CardNumber:        flags.cardNumber,
		ExpiryMonth:       flags.expiryMonth,
		ExpiryYear:        flags.expiryYear,
		CVV:               flags.cvv,
		CardholderName:    flags.cardholderName,
		CryptoCurrency:    flags.cryptoCurrency,
		SwiftCode:         flags.swiftCode,
		BankName:          flags.bankName,
		BankAddress:       flags.bankAddress,
		AccountHolderName: flags.accountHolderName,
	}

	if fieldErrs := request.Validate(); len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for f := range fieldErrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %s", f, fieldErrs[f]))) //nolint:forbidigo // User-facing output
		}
		return fmt.Errorf("deposit request is invalid")
	}

	// Check remaining funding limits before submitting.
	limits, err := store.Limits(ctx)
	if err != nil {
		return fmt.Errorf("failed to load account limits: %w", err)
	}
	if request.Currency == model.USD {
		if request.Amount.GreaterThan(limits.RemainingDaily()) {
			return fmt.Errorf("amount exceeds remaining daily limit of $%s", limits.RemainingDaily().StringFixed(2))
		}
		if request.Amount.GreaterThan(limits.RemainingMonthly()) {
			return fmt.Errorf("amount exceeds remaining monthly limit of $%s", limits.RemainingMonthly().StringFixed(2))
		}
	}

	var receipt model.DepositReceipt
	err = runWithProgress("Processing deposit", func() error {
		var submitErr error
		receipt, submitErr = gw.SubmitDeposit(ctx, request)
		return submitErr
	})
	if err != nil {
		return err
	}

	method, _ := model.DepositMethodByID(receipt.Method)
	tx := model.Transaction{
		ID:          receipt.ReferenceID,
		Type:        model.TypeDeposit,
		Amount:      receipt.Amount,
		Currency:    receipt.Currency,
		Status:      model.StatusPending,
		Date:        receipt.SubmittedAt,
		Description: method.Name + " deposit",
		Fee:         receipt.Fee,
		Category:    "Deposit",
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if err := store.AppendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to record deposit: %w", err)
	}

	details := fmt.Sprintf("Reference: %s\nMethod: %s\nAmount: %s\nFee: $%s\nTotal: $%s\nProcessing time: %s",
		receipt.ReferenceID,
		method.Name,
		receipt.Currency.Format(receipt.Amount),
		receipt.Fee.StringFixed(2),
		receipt.Total.StringFixed(2),
		receipt.ProcessingTime)

	fmt.Println(cli.FormatSuccess("Deposit initiated successfully!")) //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderBox("Deposit", details))                    //nolint:forbidigo // User-facing output
	if method.ProcessingTime != "Instant" {
		fmt.Println(cli.FormatWarning("Funds will be available after " + method.ProcessingTime)) //nolint:forbidigo // User-facing output
	}
	return nil
}
