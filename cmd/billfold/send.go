package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/provider"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/tui"
	"github.com/billfold/billfold/internal/wizard"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type sendFlags struct {
	to          string
	method      string
	value       string
	name        string
	amount      string
	currency    string
	description string
	pin         string
	acceptTerms bool
	maxAmount   bool
}

func sendCmd() *cobra.Command {
	flags := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send money to a contact or a new recipient",
		Long: `Walk through the three-step transfer wizard: pick a recipient, enter an
amount, and confirm with your PIN.

Runs interactively by default. Supplying --amount together with --to (a saved
contact name) or --value (an ad-hoc recipient) runs the whole flow from flags:

  billfold send --to "Sarah Wilson" --amount 100 --pin 1234 --accept-terms
  billfold send --method wallet --value 0x742d... --amount 0.5 --currency ETH \
      --pin 1234 --accept-terms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.to, "to", "", "saved contact name or id")
	cmd.Flags().StringVar(&flags.method, "method", "email", "ad-hoc recipient method (email, phone, wallet)")
	cmd.Flags().StringVar(&flags.value, "value", "", "ad-hoc recipient address")
	cmd.Flags().StringVar(&flags.name, "name", "", "ad-hoc recipient display name")
	cmd.Flags().StringVar(&flags.amount, "amount", "", "amount to send")
	cmd.Flags().StringVar(&flags.currency, "currency", "USD", "currency (USD, BTC, ETH)")
	cmd.Flags().StringVar(&flags.description, "description", "", "optional note")
	cmd.Flags().StringVar(&flags.pin, "pin", "", "4-digit confirmation PIN")
	cmd.Flags().BoolVar(&flags.acceptTerms, "accept-terms", false, "accept the terms and conditions")
	cmd.Flags().BoolVar(&flags.maxAmount, "max", false, "send the maximum available amount")

	return cmd
}

func runSend(cmd *cobra.Command, flags *sendFlags) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}
	gw, err := initGateway(store)
	if err != nil {
		return err
	}
	wiz, err := wizard.New(store, gw)
	if err != nil {
		return fmt.Errorf("failed to create wizard: %w", err)
	}

	scripted := flags.amount != "" || flags.maxAmount
	if !scripted {
		return runSendInteractive(ctx, store, wiz)
	}

	receipt, err := runSendScripted(ctx, store, wiz, flags)
	if err != nil {
		return err
	}

	if err := appendTransferTransaction(ctx, store, receipt); err != nil {
		return err
	}

	printReceipt(receipt)
	return nil
}

func runSendInteractive(ctx context.Context, store *provider.Memory, wiz *wizard.Wizard) error {
	contacts, err := store.Contacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	receipts, err := tui.RunSendFlow(ctx, wiz, contacts)
	if err != nil {
		return err
	}

	// The user may settle several transfers before quitting; record each one.
	for _, receipt := range receipts {
		if err := appendTransferTransaction(ctx, store, receipt); err != nil {
			return err
		}
	}
	return nil
}

func runSendScripted(ctx context.Context, store *provider.Memory, wiz *wizard.Wizard, flags *sendFlags) (model.Receipt, error) {
	// Step 1: recipient.
	if flags.to != "" {
		contact, err := findContact(ctx, store, flags.to)
		if err != nil {
			return model.Receipt{}, err
		}
		wiz.SelectRecipient(contact)
	} else if flags.value != "" {
		method, err := model.ParseContactMethod(flags.method)
		if err != nil {
			return model.Receipt{}, err
		}
		if err := wiz.DraftRecipient(method, flags.value, flags.name); err != nil {
			return model.Receipt{}, err
		}
	}
	if err := wiz.Advance(ctx); err != nil {
		return model.Receipt{}, err
	}

	// Step 2: amount.
	currency, err := model.ParseCurrency(flags.currency)
	if err != nil {
		return model.Receipt{}, err
	}
	if flags.maxAmount {
		if err := wiz.SetAmount(ctx, decimal.Zero, currency); err != nil {
			return model.Receipt{}, err
		}
		if err := wiz.SetMaxAmount(ctx); err != nil {
			return model.Receipt{}, err
		}
	} else {
		amount, parseErr := decimal.NewFromString(flags.amount)
		if parseErr != nil {
			return model.Receipt{}, fmt.Errorf("invalid amount %q: %w", flags.amount, parseErr)
		}
		if err := wiz.SetAmount(ctx, amount, currency); err != nil {
			return model.Receipt{}, err
		}
	}
	wiz.SetDescription(flags.description)
	if err := wiz.Advance(ctx); err != nil {
		return model.Receipt{}, err
	}

	// Step 3: confirm and submit.
	var receipt model.Receipt
	err = runWithProgress("Processing transfer", func() error {
		var submitErr error
		receipt, submitErr = wiz.Submit(ctx, flags.pin, flags.acceptTerms)
		return submitErr
	})
	if err != nil {
		return model.Receipt{}, err
	}
	return receipt, nil
}

// appendTransferTransaction records the settled transfer in the ledger so
// it shows up in history and on the dashboard.
func appendTransferTransaction(ctx context.Context, store service.TransactionAppender, receipt model.Receipt) error {
	tx := model.Transaction{
		ID:          receipt.TransactionID,
		Type:        model.TypeSend,
		Amount:      receipt.Amount,
		Currency:    receipt.Currency,
		Status:      model.StatusPending,
		Date:        receipt.SubmittedAt,
		Recipient:   receipt.RecipientName,
		Description: receipt.Description,
		Fee:         receipt.Fee,
		Category:    "Transfer",
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if err := store.AppendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}

	slog.Debug("recorded transfer in ledger", "transaction_id", receipt.TransactionID)
	return nil
}

func findContact(ctx context.Context, store *provider.Memory, query string) (model.Contact, error) {
	contacts, err := store.Contacts(ctx)
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to load contacts: %w", err)
	}

	for _, c := range contacts {
		if c.ID == query || strings.EqualFold(c.Name, query) {
			return c, nil
		}
	}
	return model.Contact{}, common.NewUserError(
		fmt.Sprintf("no saved contact matches %q, check 'billfold contacts'", query),
		common.ErrContactNotFound)
}

func printReceipt(receipt model.Receipt) {
	currency := receipt.Currency

	details := fmt.Sprintf("Transaction ID: %s\nAmount: %s\nFee: %s\nTotal: %s\nRecipient: %s",
		receipt.TransactionID,
		currency.Format(receipt.Amount),
		currency.Format(receipt.Fee),
		currency.Format(receipt.Total),
		receipt.RecipientName)
	if currency.IsCrypto() {
		details += fmt.Sprintf("\n≈ $%s USD", receipt.USDValue.StringFixed(2))
	}

	fmt.Println(cli.FormatSuccess("Money sent successfully!")) //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderBox("Receipt", details))             //nolint:forbidigo // User-facing output
}
