package ledger

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/billfold/billfold/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	v := seededView(t)
	v.SetTypeFilter(string(model.TypeSend))
	v.SetPage(2)

	var buf bytes.Buffer
	require.NoError(t, v.ExportCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Equal(t, csvHeader, records[0])
	// The export covers the whole filtered set, not the current page.
	assert.Len(t, records[1:], v.FilteredCount())

	for _, row := range records[1:] {
		require.Len(t, row, len(csvHeader))
		assert.Equal(t, "send", row[2])
	}
}

func TestExportCSVFormatsAmounts(t *testing.T) {
	v := NewView([]model.Transaction{
		{ID: "u1", Type: model.TypeSend, Status: model.StatusCompleted, Currency: model.USD, Amount: decimal.NewFromInt(100), Fee: decimal.RequireFromString("1.5"), Recipient: "Sarah Wilson", Date: day(1)},
		{ID: "b1", Type: model.TypeSend, Status: model.StatusCompleted, Currency: model.BTC, Amount: decimal.RequireFromString("0.05"), Fee: decimal.RequireFromString("0.0001"), Recipient: "Bob Smith", Date: day(2)},
	})

	var buf bytes.Buffer
	require.NoError(t, v.ExportCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	byID := map[string][]string{}
	for _, row := range records[1:] {
		byID[row[0]] = row
	}

	// USD is fixed to two decimal places, crypto to five.
	assert.Equal(t, "100.00", byID["u1"][4])
	assert.Equal(t, "1.50", byID["u1"][6])
	assert.Equal(t, "0.05000", byID["b1"][4])
	assert.Equal(t, "0.00010", byID["b1"][6])
	assert.Equal(t, "Sarah Wilson", byID["u1"][7])
	assert.Equal(t, "2024-03-01 12:00:00", byID["u1"][1])
}
