// Package wizard implements the three-step send-money workflow: pick a
// recipient, enter an amount, confirm with a PIN. It owns all validation;
// the settlement side effect is delegated to the transfer gateway.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
	"github.com/shopspring/decimal"
)

// Step is the wizard's current position in the flow.
type Step int

// Wizard steps, in order.
const (
	StepRecipient Step = iota + 1
	StepAmount
	StepConfirm
	StepDone
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepRecipient:
		return "Recipient"
	case StepAmount:
		return "Amount"
	case StepConfirm:
		return "Confirm"
	case StepDone:
		return "Done"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// ErrAlreadySubmitted is returned when a terminal wizard is driven further.
var ErrAlreadySubmitted = errors.New("transfer already submitted")

// Wizard drives the send-money flow. It is not safe for concurrent use;
// each flow instance belongs to a single interaction.
type Wizard struct {
	provider service.DataProvider
	gateway  service.TransferGateway

	step        Step
	recipient   model.Recipient
	draft       *model.AdHocRecipient
	currency    model.Currency
	description string
	amount      decimal.Decimal
	fee         decimal.Decimal
	total       decimal.Decimal
	usdValue    decimal.Decimal
	receipt     *model.Receipt
}

// New creates a wizard at the recipient step with USD selected.
func New(provider service.DataProvider, gateway service.TransferGateway) (*Wizard, error) {
	if provider == nil {
		return nil, errors.New("data provider is required")
	}
	if gateway == nil {
		return nil, errors.New("transfer gateway is required")
	}

	w := &Wizard{provider: provider, gateway: gateway}
	w.Reset()
	return w, nil
}

// Step returns the wizard's current step.
func (w *Wizard) Step() Step { return w.step }

// Recipient returns the active recipient, or nil before one is chosen.
func (w *Wizard) Recipient() model.Recipient { return w.recipient }

// Draft returns the staged ad-hoc recipient, or nil.
func (w *Wizard) Draft() *model.AdHocRecipient {
	if w.draft == nil {
		return nil
	}
	draft := *w.draft
	return &draft
}

// Amount returns the entered amount.
func (w *Wizard) Amount() decimal.Decimal { return w.amount }

// Currency returns the selected currency.
func (w *Wizard) Currency() model.Currency { return w.currency }

// Description returns the optional transfer note.
func (w *Wizard) Description() string { return w.description }

// Fee returns the fixed fee for the selected currency.
func (w *Wizard) Fee() decimal.Decimal { return w.fee }

// Total returns amount plus fee.
func (w *Wizard) Total() decimal.Decimal { return w.total }

// USDValue returns the amount converted at the fixed exchange rate.
func (w *Wizard) USDValue() decimal.Decimal { return w.usdValue }

// Receipt returns the terminal receipt after a successful submission.
func (w *Wizard) Receipt() *model.Receipt { return w.receipt }

// SelectRecipient sets an existing contact as the active recipient and
// discards any in-progress ad-hoc draft.
func (w *Wizard) SelectRecipient(contact model.Contact) {
	w.recipient = model.SavedRecipient{Contact: contact}
	w.draft = nil
}

// DraftRecipient stages an ad-hoc recipient. It becomes the active
// recipient only on a successful advance from the recipient step.
func (w *Wizard) DraftRecipient(method model.ContactMethod, value, name string) error {
	draft := model.AdHocRecipient{Method: method, Value: value, Name: name}
	if err := draft.Validate(); err != nil {
		return common.NewValidationError("recipient", err.Error())
	}

	w.draft = &draft
	return nil
}

// SetDescription records the optional transfer note.
func (w *Wizard) SetDescription(description string) {
	w.description = description
}

// SetAmount updates the amount and currency and recomputes the fee, the
// total, and the USD equivalent from the provider's fixed tables.
func (w *Wizard) SetAmount(ctx context.Context, amount decimal.Decimal, currency model.Currency) error {
	if !currency.Valid() {
		return common.NewValidationError("currency", fmt.Sprintf("unsupported currency %q", currency))
	}

	fee, err := w.provider.Fee(ctx, currency)
	if err != nil {
		return fmt.Errorf("failed to look up fee: %w", err)
	}
	rate, err := w.provider.ExchangeRate(ctx, currency)
	if err != nil {
		return fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	w.amount = amount
	w.currency = currency
	w.fee = fee
	w.total = amount.Add(fee)
	w.usdValue = amount.Mul(rate)
	return nil
}

// SetMaxAmount sets the amount to max(0, balance - fee) for the selected
// currency.
func (w *Wizard) SetMaxAmount(ctx context.Context) error {
	balance, err := w.provider.Balance(ctx, w.currency)
	if err != nil {
		return fmt.Errorf("failed to look up balance: %w", err)
	}
	fee, err := w.provider.Fee(ctx, w.currency)
	if err != nil {
		return fmt.Errorf("failed to look up fee: %w", err)
	}

	maxAmount := balance.Sub(fee)
	if maxAmount.IsNegative() {
		maxAmount = decimal.Zero
	}
	return w.SetAmount(ctx, maxAmount, w.currency)
}

// Advance validates the current step and moves forward. On a validation
// failure the wizard stays where it is and the error names the offending
// field.
func (w *Wizard) Advance(ctx context.Context) error {
	switch w.step {
	case StepRecipient:
		if w.recipient == nil {
			if w.draft == nil {
				return common.NewValidationError("recipient", "please select or enter a recipient")
			}
			// Promote the staged draft to the active recipient.
			w.recipient = *w.draft
			w.draft = nil
		}
		w.step = StepAmount
		return nil

	case StepAmount:
		if w.amount.LessThanOrEqual(decimal.Zero) {
			return common.NewValidationError("amount", "please enter a valid amount")
		}
		balance, err := w.provider.Balance(ctx, w.currency)
		if err != nil {
			return fmt.Errorf("failed to look up balance: %w", err)
		}
		// The bound is the raw amount, not amount plus fee. The fee is
		// charged on top, so a transfer of the full balance is accepted
		// here even though settlement would overdraw by the fee.
		if w.amount.GreaterThan(balance) {
			return common.NewValidationError("amount", "amount exceeds available balance")
		}
		w.step = StepConfirm
		return nil

	case StepConfirm:
		return common.NewValidationError("step", "confirm the transfer with submit")

	default:
		return ErrAlreadySubmitted
	}
}

// Back moves one step toward the recipient step, preserving entered data.
func (w *Wizard) Back() {
	switch w.step {
	case StepAmount:
		w.step = StepRecipient
	case StepConfirm:
		w.step = StepAmount
	}
}

// Submit performs the terminal transition. It is valid only from the
// confirm step, requires a 4-digit PIN and accepted terms, and hands the
// assembled transfer to the gateway. On success the wizard is terminal and
// the receipt is retained.
func (w *Wizard) Submit(ctx context.Context, pin string, termsAccepted bool) (model.Receipt, error) {
	switch w.step {
	case StepDone:
		return model.Receipt{}, ErrAlreadySubmitted
	case StepConfirm:
	default:
		return model.Receipt{}, common.NewValidationError("step", "complete the previous steps first")
	}

	if !model.ValidPIN(pin) {
		return model.Receipt{}, common.NewValidationError("pin", "please enter your 4-digit PIN")
	}
	if !termsAccepted {
		return model.Receipt{}, common.NewValidationError("terms", "please accept the terms and conditions")
	}

	transfer := model.PendingTransfer{
		Recipient:     w.recipient,
		Amount:        w.amount,
		Currency:      w.currency,
		Description:   w.description,
		PIN:           pin,
		TermsAccepted: termsAccepted,
	}

	receipt, err := w.gateway.SubmitTransfer(ctx, transfer)
	if err != nil {
		return model.Receipt{}, err
	}

	w.step = StepDone
	w.receipt = &receipt
	return receipt, nil
}

// Reset clears every field and returns to the recipient step. Callable
// from any state, including after a submission.
func (w *Wizard) Reset() {
	w.step = StepRecipient
	w.recipient = nil
	w.draft = nil
	w.currency = model.USD
	w.description = ""
	w.amount = decimal.Zero
	w.fee = decimal.Zero
	w.total = decimal.Zero
	w.usdValue = decimal.Zero
	w.receipt = nil
}
