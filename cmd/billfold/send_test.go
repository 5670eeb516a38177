package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendTransferTransaction(t *testing.T) {
	store, err := provider.NewMemory()
	require.NoError(t, err)
	ctx := context.Background()

	before, err := store.Transactions(ctx)
	require.NoError(t, err)

	// Several receipts from one session each get their own ledger entry.
	receipts := []model.Receipt{
		{
			TransactionID: "TX-AAAA0001",
			Amount:        decimal.NewFromInt(25),
			Fee:           decimal.RequireFromString("1.50"),
			Currency:      model.USD,
			RecipientName: "John Doe",
			SubmittedAt:   time.Now(),
		},
		{
			TransactionID: "TX-AAAA0002",
			Amount:        decimal.NewFromInt(40),
			Fee:           decimal.RequireFromString("1.50"),
			Currency:      model.USD,
			RecipientName: "Mike Chen",
			SubmittedAt:   time.Now(),
		},
	}
	for _, receipt := range receipts {
		require.NoError(t, appendTransferTransaction(ctx, store, receipt))
	}

	after, err := store.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+2)

	last := after[len(after)-1]
	assert.Equal(t, "TX-AAAA0002", last.ID)
	assert.Equal(t, model.TypeSend, last.Type)
	assert.Equal(t, model.StatusPending, last.Status)
	assert.Equal(t, "Mike Chen", last.Recipient)
	assert.Equal(t, "Transfer", last.Category)
}

func TestFindContact(t *testing.T) {
	store, err := provider.NewMemory()
	require.NoError(t, err)
	ctx := context.Background()

	contact, err := findContact(ctx, store, "sarah wilson")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Wilson", contact.Name)

	_, err = findContact(ctx, store, "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrContactNotFound))
}
