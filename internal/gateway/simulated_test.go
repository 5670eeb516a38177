package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, opts ...Option) *Simulated {
	t.Helper()

	store, err := provider.NewMemory()
	require.NoError(t, err)

	opts = append([]Option{WithTransferDelay(0), WithDepositDelay(0), WithSupportDelay(0)}, opts...)
	g, err := NewSimulated(store, opts...)
	require.NoError(t, err)
	return g
}

func testTransfer(amount string, currency model.Currency) model.PendingTransfer {
	return model.PendingTransfer{
		Recipient:     model.AdHocRecipient{Method: model.MethodEmail, Value: "pat@example.com", Name: "Pat"},
		Amount:        decimal.RequireFromString(amount),
		Currency:      currency,
		Description:   "test transfer",
		PIN:           "1234",
		TermsAccepted: true,
	}
}

func TestNewSimulated(t *testing.T) {
	_, err := NewSimulated(nil)
	assert.Error(t, err)
}

func TestSubmitSupportTicket(t *testing.T) {
	t.Run("rejects an invalid ticket", func(t *testing.T) {
		g := newTestGateway(t)

		_, err := g.SubmitSupportTicket(context.Background(), model.SupportTicket{})
		assert.Error(t, err)
	})

	t.Run("acknowledges a valid ticket", func(t *testing.T) {
		now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
		g := newTestGateway(t, WithClock(func() time.Time { return now }))

		receipt, err := g.SubmitSupportTicket(context.Background(), model.SupportTicket{
			Category: model.SupportBilling,
			Subject:  "Double fee",
			Message:  "I was charged the transfer fee twice.",
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(receipt.TicketID, "TKT-"), "id = %s", receipt.TicketID)
		assert.Equal(t, model.SupportBilling, receipt.Category)
		assert.Equal(t, "Double fee", receipt.Subject)
		assert.Equal(t, "within 24 hours", receipt.ResponseTime)
		assert.Equal(t, now, receipt.SubmittedAt)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		g := newTestGateway(t, WithSupportDelay(time.Minute))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := g.SubmitSupportTicket(ctx, model.SupportTicket{
			Category: model.SupportOther,
			Subject:  "Slow app",
			Message:  "The dashboard takes a long time to load.",
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestSubmitTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a missing recipient", func(t *testing.T) {
		g := newTestGateway(t)
		transfer := testTransfer("10", model.USD)
		transfer.Recipient = nil

		_, err := g.SubmitTransfer(ctx, transfer)
		assert.Error(t, err)
	})

	t.Run("receipt carries fee total and usd value", func(t *testing.T) {
		now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
		g := newTestGateway(t, WithClock(func() time.Time { return now }))

		receipt, err := g.SubmitTransfer(ctx, testTransfer("0.1", model.BTC))
		require.NoError(t, err)

		assert.True(t, receipt.Amount.Equal(decimal.RequireFromString("0.1")))
		assert.True(t, receipt.Fee.Equal(decimal.RequireFromString("0.0001")))
		assert.True(t, receipt.Total.Equal(decimal.RequireFromString("0.1001")), "total = %s", receipt.Total)
		assert.True(t, receipt.USDValue.Equal(decimal.NewFromInt(4250)), "usd = %s", receipt.USDValue)
		assert.Equal(t, "Pat", receipt.RecipientName)
		assert.Equal(t, "test transfer", receipt.Description)
		assert.Equal(t, now, receipt.SubmittedAt)
	})

	t.Run("ids are unique and prefixed", func(t *testing.T) {
		g := newTestGateway(t)

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			receipt, err := g.SubmitTransfer(ctx, testTransfer("1", model.USD))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(receipt.TransactionID, "TX-"), "id %q", receipt.TransactionID)
			assert.Len(t, receipt.TransactionID, len("TX-")+8)
			assert.False(t, seen[receipt.TransactionID], "duplicate id %q", receipt.TransactionID)
			seen[receipt.TransactionID] = true
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		store, err := provider.NewMemory()
		require.NoError(t, err)
		g, err := NewSimulated(store, WithTransferDelay(time.Minute))
		require.NoError(t, err)

		cancelCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		_, err = g.SubmitTransfer(cancelCtx, testTransfer("10", model.USD))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("decline rule wraps the sentinel", func(t *testing.T) {
		cause := errors.New("insufficient funds at settlement")
		g := newTestGateway(t, WithDeclineRule(func(model.PendingTransfer) error {
			return cause
		}))

		_, err := g.SubmitTransfer(ctx, testTransfer("10", model.USD))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrTransferDeclined)
		assert.Contains(t, err.Error(), cause.Error())
	})

	t.Run("unknown currency fails after the delay", func(t *testing.T) {
		g := newTestGateway(t)

		_, err := g.SubmitTransfer(ctx, testTransfer("10", "DOGE"))
		assert.ErrorIs(t, err, common.ErrUnknownCurrency)
	})
}

func TestSubmitDeposit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		amount  string
		wantFee string
		method  model.DepositMethodID
	}{
		{name: "bank is free", method: model.DepositBank, amount: "500", wantFee: "0"},
		{name: "card pays rate plus fixed", method: model.DepositCard, amount: "100", wantFee: "3.20"},
		{name: "wire pays a flat fee", method: model.DepositWire, amount: "5000", wantFee: "25"},
		{name: "digital pays the rate", method: model.DepositDigital, amount: "100", wantFee: "2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t)

			receipt, err := g.SubmitDeposit(ctx, model.DepositRequest{
				Method:   tt.method,
				Amount:   decimal.RequireFromString(tt.amount),
				Currency: model.USD,
			})
			require.NoError(t, err)

			wantFee := decimal.RequireFromString(tt.wantFee)
			assert.True(t, receipt.Fee.Equal(wantFee), "fee = %s", receipt.Fee)
			assert.True(t, receipt.Total.Equal(receipt.Amount.Add(wantFee)))
			assert.True(t, strings.HasPrefix(receipt.ReferenceID, "DEP-"), "id %q", receipt.ReferenceID)
			assert.NotEmpty(t, receipt.ProcessingTime)
		})
	}

	t.Run("decline rule wraps the sentinel", func(t *testing.T) {
		g := newTestGateway(t, WithDepositDeclineRule(func(model.DepositRequest) error {
			return errors.New("issuer rejected the card")
		}))

		_, err := g.SubmitDeposit(ctx, model.DepositRequest{
			Method:   model.DepositCard,
			Amount:   decimal.NewFromInt(100),
			Currency: model.USD,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrDepositDeclined)
	})

	t.Run("unknown method", func(t *testing.T) {
		g := newTestGateway(t)

		_, err := g.SubmitDeposit(ctx, model.DepositRequest{
			Method: "cheque",
			Amount: decimal.NewFromInt(100),
		})
		assert.Error(t, err)
	})
}
