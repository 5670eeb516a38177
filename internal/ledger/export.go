package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvHeader is the column layout of an exported history file.
var csvHeader = []string{"id", "date", "type", "status", "amount", "currency", "fee", "counterparty", "description", "category", "hash"}

// ExportCSV writes the filtered, sorted view (all pages) as CSV.
func (v *View) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, tx := range v.filtered {
		row := []string{
			tx.ID,
			tx.Date.Format("2006-01-02 15:04:05"),
			string(tx.Type),
			string(tx.Status),
			tx.Amount.StringFixed(tx.Currency.Precision()),
			string(tx.Currency),
			tx.Fee.StringFixed(tx.Currency.Precision()),
			tx.Counterparty(),
			tx.Description,
			tx.Category,
			tx.Hash,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", tx.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
