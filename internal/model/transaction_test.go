package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() Transaction {
	return Transaction{
		ID:       "txn_test",
		Type:     TypeSend,
		Status:   StatusCompleted,
		Currency: USD,
		Amount:   decimal.NewFromInt(100),
		Date:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		mutate  func(tx *Transaction)
		name    string
		wantErr string
	}{
		{name: "valid", mutate: func(_ *Transaction) {}},
		{name: "missing id", mutate: func(tx *Transaction) { tx.ID = "" }, wantErr: "id is required"},
		{name: "unknown type", mutate: func(tx *Transaction) { tx.Type = "teleport" }, wantErr: "unknown transaction type"},
		{name: "unknown status", mutate: func(tx *Transaction) { tx.Status = "maybe" }, wantErr: "unknown transaction status"},
		{name: "unknown currency", mutate: func(tx *Transaction) { tx.Currency = "DOGE" }, wantErr: "unknown currency"},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, wantErr: "must not be negative"},
		{
			name: "recipient and sender together",
			mutate: func(tx *Transaction) {
				tx.Recipient = "a"
				tx.Sender = "b"
			},
			wantErr: "mutually exclusive",
		},
		{
			name:   "deposit with neither party",
			mutate: func(tx *Transaction) { tx.Type = TypeDeposit },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)

			err := tx.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCounterparty(t *testing.T) {
	tx := validTransaction()
	tx.Recipient = "Bob Smith"
	assert.Equal(t, "Bob Smith", tx.Counterparty())

	tx = validTransaction()
	tx.Sender = "Alice Johnson"
	assert.Equal(t, "Alice Johnson", tx.Counterparty())

	tx = validTransaction()
	assert.Empty(t, tx.Counterparty())
}
