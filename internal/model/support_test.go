package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportTicketValidate(t *testing.T) {
	valid := SupportTicket{
		Category: SupportTechnical,
		Subject:  "Transfer stuck",
		Message:  "My transfer has been pending for a week.",
	}
	assert.Empty(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SupportTicket)
		field  string
	}{
		{"missing category", func(tkt *SupportTicket) { tkt.Category = "" }, "category"},
		{"unknown category", func(tkt *SupportTicket) { tkt.Category = "gossip" }, "category"},
		{"blank subject", func(tkt *SupportTicket) { tkt.Subject = "   " }, "subject"},
		{"blank message", func(tkt *SupportTicket) { tkt.Message = "" }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tkt := valid
			tt.mutate(&tkt)

			errs := tkt.Validate()
			assert.Len(t, errs, 1)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestSupportCategories(t *testing.T) {
	for _, c := range SupportCategories() {
		assert.True(t, c.Valid(), "category %s", c)
	}
	assert.False(t, SupportCategory("gossip").Valid())
}
