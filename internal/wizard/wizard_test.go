package wizard

import (
	"context"
	"testing"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/gateway"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(t *testing.T, opts ...gateway.Option) (*Wizard, *provider.Memory) {
	t.Helper()

	store, err := provider.NewMemory()
	require.NoError(t, err)

	opts = append([]gateway.Option{
		gateway.WithTransferDelay(0),
		gateway.WithDepositDelay(0),
	}, opts...)
	gw, err := gateway.NewSimulated(store, opts...)
	require.NoError(t, err)

	w, err := New(store, gw)
	require.NoError(t, err)
	return w, store
}

func sarahWilson(t *testing.T, store *provider.Memory) model.Contact {
	t.Helper()

	contacts, err := store.Contacts(context.Background())
	require.NoError(t, err)
	for _, c := range contacts {
		if c.Name == "Sarah Wilson" {
			return c
		}
	}
	t.Fatal("Sarah Wilson not in seeded contacts")
	return model.Contact{}
}

func TestNew(t *testing.T) {
	store, err := provider.NewMemory()
	require.NoError(t, err)
	gw, err := gateway.NewSimulated(store)
	require.NoError(t, err)

	t.Run("valid collaborators", func(t *testing.T) {
		w, newErr := New(store, gw)
		require.NoError(t, newErr)
		assert.Equal(t, StepRecipient, w.Step())
		assert.Equal(t, model.USD, w.Currency())
	})

	t.Run("nil provider", func(t *testing.T) {
		_, newErr := New(nil, gw)
		assert.Error(t, newErr)
	})

	t.Run("nil gateway", func(t *testing.T) {
		_, newErr := New(store, nil)
		assert.Error(t, newErr)
	})
}

func TestAdvanceRecipientStep(t *testing.T) {
	ctx := context.Background()

	t.Run("fails without a recipient", func(t *testing.T) {
		w, _ := newTestWizard(t)

		err := w.Advance(ctx)
		require.Error(t, err)

		verr, ok := common.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "recipient", verr.Field)
		assert.Equal(t, StepRecipient, w.Step())
	})

	t.Run("advances with a saved contact", func(t *testing.T) {
		w, store := newTestWizard(t)
		w.SelectRecipient(sarahWilson(t, store))

		require.NoError(t, w.Advance(ctx))
		assert.Equal(t, StepAmount, w.Step())
		assert.Equal(t, "Sarah Wilson", w.Recipient().DisplayName())
	})

	t.Run("promotes a staged draft", func(t *testing.T) {
		w, _ := newTestWizard(t)
		require.NoError(t, w.DraftRecipient(model.MethodEmail, "new@example.com", ""))

		require.NoError(t, w.Advance(ctx))
		assert.Equal(t, StepAmount, w.Step())
		assert.Nil(t, w.Draft())
		assert.Equal(t, "new@example.com", w.Recipient().DisplayName())
	})

	t.Run("selecting a contact discards the draft", func(t *testing.T) {
		w, store := newTestWizard(t)
		require.NoError(t, w.DraftRecipient(model.MethodPhone, "+15551234567", "Someone"))
		w.SelectRecipient(sarahWilson(t, store))

		assert.Nil(t, w.Draft())
		require.NoError(t, w.Advance(ctx))
		assert.Equal(t, "Sarah Wilson", w.Recipient().DisplayName())
	})
}

func TestDraftRecipient(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		method  model.ContactMethod
		wantErr bool
	}{
		{name: "valid email", method: model.MethodEmail, value: "a@b.com"},
		{name: "valid wallet", method: model.MethodWallet, value: "0xabc"},
		{name: "empty value", method: model.MethodEmail, value: "  ", wantErr: true},
		{name: "unknown method", method: "carrier-pigeon", value: "coop 4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newTestWizard(t)
			err := w.DraftRecipient(tt.method, tt.value, "")

			if tt.wantErr {
				require.Error(t, err)
				verr, ok := common.AsValidation(err)
				require.True(t, ok)
				assert.Equal(t, "recipient", verr.Field)
				assert.Nil(t, w.Draft())
				return
			}
			require.NoError(t, err)
			require.NotNil(t, w.Draft())
			assert.Equal(t, tt.value, w.Draft().Value)
		})
	}
}

func TestSetAmount(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes fee total and usd value", func(t *testing.T) {
		w, _ := newTestWizard(t)

		require.NoError(t, w.SetAmount(ctx, decimal.NewFromInt(100), model.USD))
		assert.True(t, w.Fee().Equal(decimal.RequireFromString("1.50")), "fee = %s", w.Fee())
		assert.True(t, w.Total().Equal(decimal.RequireFromString("101.50")), "total = %s", w.Total())
		assert.True(t, w.USDValue().Equal(decimal.NewFromInt(100)), "usd = %s", w.USDValue())
	})

	t.Run("converts crypto at the fixed rate", func(t *testing.T) {
		w, _ := newTestWizard(t)

		require.NoError(t, w.SetAmount(ctx, decimal.RequireFromString("0.1"), model.BTC))
		assert.True(t, w.Fee().Equal(decimal.RequireFromString("0.0001")))
		assert.True(t, w.USDValue().Equal(decimal.NewFromInt(4250)), "usd = %s", w.USDValue())
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		w, _ := newTestWizard(t)

		err := w.SetAmount(ctx, decimal.NewFromInt(5), "DOGE")
		verr, ok := common.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "currency", verr.Field)
	})
}

func TestSetMaxAmount(t *testing.T) {
	ctx := context.Background()

	t.Run("is balance minus fee", func(t *testing.T) {
		w, _ := newTestWizard(t)

		require.NoError(t, w.SetMaxAmount(ctx))
		assert.True(t, w.Amount().Equal(decimal.RequireFromString("2499.00")), "amount = %s", w.Amount())
	})

	t.Run("clamps to zero when the fee exceeds the balance", func(t *testing.T) {
		store, err := provider.NewMemory(provider.WithBalances(map[model.Currency]decimal.Decimal{
			model.USD: decimal.RequireFromString("1.00"),
		}))
		require.NoError(t, err)
		gw, err := gateway.NewSimulated(store, gateway.WithTransferDelay(0))
		require.NoError(t, err)
		w, err := New(store, gw)
		require.NoError(t, err)

		require.NoError(t, w.SetMaxAmount(ctx))
		assert.True(t, w.Amount().IsZero(), "amount = %s", w.Amount())
	})
}

func TestAdvanceAmountStep(t *testing.T) {
	ctx := context.Background()

	toAmountStep := func(t *testing.T) (*Wizard, *provider.Memory) {
		t.Helper()
		w, store := newTestWizard(t)
		w.SelectRecipient(sarahWilson(t, store))
		require.NoError(t, w.Advance(ctx))
		return w, store
	}

	tests := []struct {
		name      string
		amount    string
		wantField string
	}{
		{name: "zero amount", amount: "0", wantField: "amount"},
		{name: "negative amount", amount: "-10", wantField: "amount"},
		{name: "over balance", amount: "2500.51", wantField: "amount"},
		{name: "exactly the balance", amount: "2500.50"},
		{name: "ordinary amount", amount: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := toAmountStep(t)
			require.NoError(t, w.SetAmount(ctx, decimal.RequireFromString(tt.amount), model.USD))

			err := w.Advance(ctx)
			if tt.wantField != "" {
				require.Error(t, err)
				verr, ok := common.AsValidation(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, verr.Field)
				assert.Equal(t, StepAmount, w.Step())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StepConfirm, w.Step())
		})
	}
}

func TestBackPreservesEnteredData(t *testing.T) {
	ctx := context.Background()

	w, store := newTestWizard(t)
	w.SelectRecipient(sarahWilson(t, store))
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.SetAmount(ctx, decimal.NewFromInt(100), model.USD))
	w.SetDescription("lunch")
	require.NoError(t, w.Advance(ctx))
	require.Equal(t, StepConfirm, w.Step())

	w.Back()
	assert.Equal(t, StepAmount, w.Step())
	w.Back()
	assert.Equal(t, StepRecipient, w.Step())
	w.Back()
	assert.Equal(t, StepRecipient, w.Step(), "backing past the first step is a no-op")

	assert.Equal(t, "Sarah Wilson", w.Recipient().DisplayName())
	assert.True(t, w.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "lunch", w.Description())

	// The flow can be replayed forward without re-entering anything.
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, StepConfirm, w.Step())
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	toConfirmStep := func(t *testing.T, opts ...gateway.Option) *Wizard {
		t.Helper()
		w, store := newTestWizard(t, opts...)
		w.SelectRecipient(sarahWilson(t, store))
		require.NoError(t, w.Advance(ctx))
		require.NoError(t, w.SetAmount(ctx, decimal.NewFromInt(100), model.USD))
		require.NoError(t, w.Advance(ctx))
		return w
	}

	t.Run("rejected before the confirm step", func(t *testing.T) {
		w, _ := newTestWizard(t)

		_, err := w.Submit(ctx, "1234", true)
		verr, ok := common.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "step", verr.Field)
	})

	t.Run("requires a four digit pin", func(t *testing.T) {
		for _, pin := range []string{"", "12", "12345", "abcd", "12a4"} {
			w := toConfirmStep(t)
			_, err := w.Submit(ctx, pin, true)
			verr, ok := common.AsValidation(err)
			require.True(t, ok, "pin %q", pin)
			assert.Equal(t, "pin", verr.Field)
			assert.Equal(t, StepConfirm, w.Step())
		}
	})

	t.Run("requires accepted terms", func(t *testing.T) {
		w := toConfirmStep(t)

		_, err := w.Submit(ctx, "1234", false)
		verr, ok := common.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "terms", verr.Field)
	})

	t.Run("success is terminal with a retained receipt", func(t *testing.T) {
		w := toConfirmStep(t)

		receipt, err := w.Submit(ctx, "1234", true)
		require.NoError(t, err)

		assert.Equal(t, StepDone, w.Step())
		assert.Equal(t, "Sarah Wilson", receipt.RecipientName)
		assert.True(t, receipt.Amount.Equal(decimal.NewFromInt(100)))
		assert.True(t, receipt.Fee.Equal(decimal.RequireFromString("1.50")))
		assert.True(t, receipt.Total.Equal(decimal.RequireFromString("101.50")))
		assert.NotEmpty(t, receipt.TransactionID)

		require.NotNil(t, w.Receipt())
		assert.Equal(t, receipt.TransactionID, w.Receipt().TransactionID)
	})

	t.Run("double submission fails", func(t *testing.T) {
		w := toConfirmStep(t)

		_, err := w.Submit(ctx, "1234", true)
		require.NoError(t, err)

		_, err = w.Submit(ctx, "1234", true)
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		err = w.Advance(ctx)
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})

	t.Run("gateway decline surfaces and keeps the confirm step", func(t *testing.T) {
		w := toConfirmStep(t, gateway.WithDeclineRule(func(model.PendingTransfer) error {
			return assert.AnError
		}))

		_, err := w.Submit(ctx, "1234", true)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrTransferDeclined)
		assert.Equal(t, StepConfirm, w.Step())
		assert.Nil(t, w.Receipt())
	})
}

func TestReset(t *testing.T) {
	ctx := context.Background()

	w, store := newTestWizard(t)
	w.SelectRecipient(sarahWilson(t, store))
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.SetAmount(ctx, decimal.NewFromInt(100), model.BTC))
	w.SetDescription("note")

	w.Reset()

	assert.Equal(t, StepRecipient, w.Step())
	assert.Nil(t, w.Recipient())
	assert.Nil(t, w.Draft())
	assert.Equal(t, model.USD, w.Currency())
	assert.Empty(t, w.Description())
	assert.True(t, w.Amount().IsZero())
	assert.True(t, w.Fee().IsZero())
	assert.True(t, w.Total().IsZero())
	assert.Nil(t, w.Receipt())
}

func TestResetAfterSubmissionAllowsNewTransfer(t *testing.T) {
	ctx := context.Background()

	w, store := newTestWizard(t)
	contact := sarahWilson(t, store)

	runOnce := func() model.Receipt {
		w.SelectRecipient(contact)
		require.NoError(t, w.Advance(ctx))
		require.NoError(t, w.SetAmount(ctx, decimal.NewFromInt(50), model.USD))
		require.NoError(t, w.Advance(ctx))
		receipt, err := w.Submit(ctx, "1234", true)
		require.NoError(t, err)
		return receipt
	}

	first := runOnce()
	w.Reset()
	second := runOnce()

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}
