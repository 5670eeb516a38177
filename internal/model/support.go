package model

import (
	"strings"
	"time"
)

// SupportCategory classifies a support ticket.
type SupportCategory string

// Ticket categories offered on the contact-support form.
const (
	SupportTechnical SupportCategory = "technical"
	SupportBilling   SupportCategory = "billing"
	SupportAccount   SupportCategory = "account"
	SupportFeature   SupportCategory = "feature"
	SupportOther     SupportCategory = "other"
)

// SupportCategories lists the selectable categories in display order.
func SupportCategories() []SupportCategory {
	return []SupportCategory{SupportTechnical, SupportBilling, SupportAccount, SupportFeature, SupportOther}
}

// Valid reports whether the category is one of the selectable values.
func (c SupportCategory) Valid() bool {
	switch c {
	case SupportTechnical, SupportBilling, SupportAccount, SupportFeature, SupportOther:
		return true
	}
	return false
}

// SupportTicket is the contact-support form. All three fields are required.
type SupportTicket struct {
	Category SupportCategory
	Subject  string
	Message  string
}

// Validate returns one message per offending field.
func (tkt SupportTicket) Validate() FieldErrors {
	errs := make(FieldErrors)
	if !tkt.Category.Valid() {
		errs["category"] = "please select a category (technical, billing, account, feature, other)"
	}
	if strings.TrimSpace(tkt.Subject) == "" {
		errs["subject"] = "please enter a subject"
	}
	if strings.TrimSpace(tkt.Message) == "" {
		errs["message"] = "please describe your issue"
	}
	return errs
}

// TicketReceipt is the result of a successfully submitted support ticket.
type TicketReceipt struct {
	SubmittedAt  time.Time
	TicketID     string
	Category     SupportCategory
	Subject      string
	ResponseTime string
}
