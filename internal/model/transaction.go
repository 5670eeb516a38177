package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a ledger entry.
type TransactionType string

// Transaction types.
const (
	TypeSend       TransactionType = "send"
	TypeReceive    TransactionType = "receive"
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
)

// TransactionTypes lists every type in display order.
func TransactionTypes() []TransactionType {
	return []TransactionType{TypeSend, TypeReceive, TypeDeposit, TypeWithdrawal}
}

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

// Transaction statuses.
const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

// TransactionStatuses lists every status in display order.
func TransactionStatuses() []TransactionStatus {
	return []TransactionStatus{StatusCompleted, StatusPending, StatusFailed}
}

// Transaction is a single immutable ledger entry. Recipient and Sender are
// mutually exclusive: outgoing entries carry a recipient, incoming ones a
// sender, deposits may carry neither.
type Transaction struct {
	Date        time.Time
	ID          string
	Type        TransactionType
	Status      TransactionStatus
	Currency    Currency
	Recipient   string
	Sender      string
	Description string
	Hash        string // optional on-chain hash
	Category    string
	Amount      decimal.Decimal
	Fee         decimal.Decimal
}

// Counterparty returns whichever of recipient or sender is set.
func (t Transaction) Counterparty() string {
	if t.Recipient != "" {
		return t.Recipient
	}
	return t.Sender
}

// Validate checks structural invariants on a new ledger entry.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	switch t.Type {
	case TypeSend, TypeReceive, TypeDeposit, TypeWithdrawal:
	default:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	switch t.Status {
	case StatusCompleted, StatusPending, StatusFailed:
	default:
		return fmt.Errorf("unknown transaction status %q", t.Status)
	}
	if !t.Currency.Valid() {
		return fmt.Errorf("unknown currency %q", t.Currency)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if t.Recipient != "" && t.Sender != "" {
		return fmt.Errorf("recipient and sender are mutually exclusive")
	}
	return nil
}
