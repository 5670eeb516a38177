package model

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// ValidPIN reports whether the confirmation PIN is exactly 4 digits.
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// PendingTransfer is the working state assembled by the send-money wizard
// and consumed exactly once by a successful submission.
type PendingTransfer struct {
	Recipient     Recipient
	Currency      Currency
	Description   string
	PIN           string
	Amount        decimal.Decimal
	TermsAccepted bool
}

// Receipt is the terminal result of a successful transfer submission.
type Receipt struct {
	SubmittedAt   time.Time
	TransactionID string
	Currency      Currency
	RecipientName string
	Description   string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Total         decimal.Decimal
	USDValue      decimal.Decimal
}
