package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DepositMethodID identifies one of the supported funding methods.
type DepositMethodID string

// Funding methods.
const (
	DepositBank    DepositMethodID = "bank"
	DepositCard    DepositMethodID = "card"
	DepositCrypto  DepositMethodID = "crypto"
	DepositWire    DepositMethodID = "wire"
	DepositDigital DepositMethodID = "digital"
)

// DepositMethod describes a funding method's limits and fee rule.
type DepositMethod struct {
	ID             DepositMethodID
	Name           string
	ProcessingTime string
	FeeLabel       string
	Description    string
	MinAmount      decimal.Decimal
	MaxAmount      decimal.Decimal
}

// DepositMethods returns the supported funding methods in display order.
func DepositMethods() []DepositMethod {
	return []DepositMethod{
		{
			ID:             DepositBank,
			Name:           "Bank Transfer (ACH)",
			ProcessingTime: "3-5 business days",
			FeeLabel:       "Free",
			Description:    "Transfer funds directly from your bank account",
			MinAmount:      decimal.NewFromInt(10),
			MaxAmount:      decimal.NewFromInt(25000),
		},
		{
			ID:             DepositCard,
			Name:           "Debit/Credit Card",
			ProcessingTime: "Instant",
			FeeLabel:       "2.9% + $0.30",
			Description:    "Add funds instantly with your card",
			MinAmount:      decimal.NewFromInt(1),
			MaxAmount:      decimal.NewFromInt(5000),
		},
		{
			ID:             DepositCrypto,
			Name:           "Crypto Deposit",
			ProcessingTime: "1-6 confirmations",
			FeeLabel:       "Network fees apply",
			Description:    "Deposit cryptocurrency to your wallet",
			MinAmount:      decimal.NewFromInt(5),
			MaxAmount:      decimal.NewFromInt(100000),
		},
		{
			ID:             DepositWire,
			Name:           "Wire Transfer",
			ProcessingTime: "1-2 business days",
			FeeLabel:       "$25",
			Description:    "For large amounts and international transfers",
			MinAmount:      decimal.NewFromInt(1000),
			MaxAmount:      decimal.NewFromInt(1000000),
		},
		{
			ID:             DepositDigital,
			Name:           "Apple Pay / Google Pay",
			ProcessingTime: "Instant",
			FeeLabel:       "2.9%",
			Description:    "Quick and secure digital wallet payment",
			MinAmount:      decimal.NewFromInt(1),
			MaxAmount:      decimal.NewFromInt(2000),
		},
	}
}

// DepositMethodByID looks up a funding method by identifier.
func DepositMethodByID(id DepositMethodID) (DepositMethod, bool) {
	for _, m := range DepositMethods() {
		if m.ID == id {
			return m, true
		}
	}
	return DepositMethod{}, false
}

var (
	cardFeeRate    = decimal.RequireFromString("0.029")
	cardFeeFixed   = decimal.RequireFromString("0.30")
	wireFeeFlat    = decimal.NewFromInt(25)
	digitalFeeRate = decimal.RequireFromString("0.029")
)

// DepositFee computes the fee charged for funding the given amount.
// Bank and crypto deposits are free; network fees on crypto are external.
func DepositFee(id DepositMethodID, amount decimal.Decimal) decimal.Decimal {
	switch id {
	case DepositCard:
		return amount.Mul(cardFeeRate).Add(cardFeeFixed)
	case DepositWire:
		return wireFeeFlat
	case DepositDigital:
		return amount.Mul(digitalFeeRate)
	default:
		return decimal.Zero
	}
}

// AccountLimits tracks funding limits and how much of them has been used.
type AccountLimits struct {
	Daily       decimal.Decimal
	Monthly     decimal.Decimal
	DailyUsed   decimal.Decimal
	MonthlyUsed decimal.Decimal
}

// RemainingDaily returns the unused portion of the daily limit.
func (l AccountLimits) RemainingDaily() decimal.Decimal {
	return l.Daily.Sub(l.DailyUsed)
}

// RemainingMonthly returns the unused portion of the monthly limit.
func (l AccountLimits) RemainingMonthly() decimal.Decimal {
	return l.Monthly.Sub(l.MonthlyUsed)
}

// DepositRequest carries the add-funds form. Only the field group matching
// the selected method is validated.
type DepositRequest struct {
	Method   DepositMethodID
	Currency Currency
	Amount   decimal.Decimal

	// Bank transfer fields.
	RoutingNumber string
	AccountNumber string
	AccountType   string

	// Card fields.
	CardNumber     string
	ExpiryMonth    string
	ExpiryYear     string
	CVV            string
	CardholderName string

	// Crypto fields.
	CryptoCurrency string

	// Wire fields.
	SwiftCode         string
	BankName          string
	BankAddress       string
	AccountHolderName string
}

// DepositReceipt is the result of a successfully submitted deposit.
type DepositReceipt struct {
	SubmittedAt    time.Time
	ReferenceID    string
	Method         DepositMethodID
	Currency       Currency
	ProcessingTime string
	Amount         decimal.Decimal
	Fee            decimal.Decimal
	Total          decimal.Decimal
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FieldErrors maps form field names to rejection messages.
type FieldErrors map[string]string

// Validate checks the request against its method's rules and returns one
// message per offending field. An empty map means the request is valid.
func (r DepositRequest) Validate() FieldErrors {
	errs := make(FieldErrors)

	method, ok := DepositMethodByID(r.Method)
	if !ok {
		errs["method"] = "please select a payment method"
		return errs
	}

	switch {
	case r.Amount.LessThanOrEqual(decimal.Zero):
		errs["amount"] = "please enter a valid amount"
	case r.Amount.LessThan(method.MinAmount) || r.Amount.GreaterThan(method.MaxAmount):
		errs["amount"] = "amount must be between $" + method.MinAmount.StringFixed(0) +
			" and $" + method.MaxAmount.StringFixed(0)
	}

	switch r.Method {
	case DepositBank:
		if len(digitsOnly(r.RoutingNumber)) != 9 {
			errs["routing_number"] = "routing number must be 9 digits"
		}
		if len(r.AccountNumber) < 4 {
			errs["account_number"] = "please enter a valid account number"
		}
	case DepositCard:
		if len(digitsOnly(r.CardNumber)) < 13 {
			errs["card_number"] = "please enter a valid card number"
		}
		if r.ExpiryMonth == "" || r.ExpiryYear == "" {
			errs["expiry"] = "please enter card expiry date"
		}
		if len(r.CVV) < 3 {
			errs["cvv"] = "please enter a valid CVV"
		}
		if strings.TrimSpace(r.CardholderName) == "" {
			errs["cardholder_name"] = "please enter the cardholder name"
		}
	case DepositWire:
		if strings.TrimSpace(r.SwiftCode) == "" {
			errs["swift_code"] = "please enter SWIFT code"
		}
		if strings.TrimSpace(r.BankName) == "" {
			errs["bank_name"] = "please enter bank name"
		}
		if strings.TrimSpace(r.AccountHolderName) == "" {
			errs["account_holder_name"] = "please enter account holder name"
		}
	}

	return errs
}
