package main

import (
	"fmt"
	"sort"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/model"
	"github.com/spf13/cobra"
)

func supportCmd() *cobra.Command {
	var (
		category string
		subject  string
		message  string
	)

	cmd := &cobra.Command{
		Use:   "support",
		Short: "Submit a support ticket",
		Long: `Send a help request. Like every other backend call, submission is
simulated; the ticket is acknowledged with a reference id:

  billfold support --category technical --subject "Transfer stuck" \
      --message "My transfer to Sarah has been pending for a week."`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSupport(cmd, category, subject, message)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "ticket category (technical, billing, account, feature, other)")
	cmd.Flags().StringVar(&subject, "subject", "", "brief description of the issue")
	cmd.Flags().StringVar(&message, "message", "", "detailed description")

	return cmd
}

func runSupport(cmd *cobra.Command, category, subject, message string) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}
	gw, err := initGateway(store)
	if err != nil {
		return err
	}

	ticket := model.SupportTicket{
		Category: model.SupportCategory(category),
		Subject:  subject,
		Message:  message,
	}
	if fieldErrs := ticket.Validate(); len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for f := range fieldErrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %s", f, fieldErrs[f]))) //nolint:forbidigo // User-facing output
		}
		return fmt.Errorf("support ticket is invalid")
	}

	var receipt model.TicketReceipt
	err = runWithProgress("Submitting ticket", func() error {
		var submitErr error
		receipt, submitErr = gw.SubmitSupportTicket(ctx, ticket)
		return submitErr
	})
	if err != nil {
		return err
	}

	details := fmt.Sprintf("Ticket: %s\nCategory: %s\nSubject: %s\nExpected response: %s",
		receipt.TicketID, receipt.Category, receipt.Subject, receipt.ResponseTime)

	fmt.Println(cli.FormatSuccess("Support ticket submitted successfully!")) //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderBox("Support", details))                           //nolint:forbidigo // User-facing output
	return nil
}
