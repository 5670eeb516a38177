package model

import (
	"fmt"
	"strings"
)

// ContactMethod is how a recipient can be reached.
type ContactMethod string

// Supported contact methods.
const (
	MethodEmail  ContactMethod = "email"
	MethodPhone  ContactMethod = "phone"
	MethodWallet ContactMethod = "wallet"
)

// ParseContactMethod converts a user-supplied string into a ContactMethod.
func ParseContactMethod(s string) (ContactMethod, error) {
	switch ContactMethod(strings.ToLower(strings.TrimSpace(s))) {
	case MethodEmail:
		return MethodEmail, nil
	case MethodPhone:
		return MethodPhone, nil
	case MethodWallet:
		return MethodWallet, nil
	default:
		return "", fmt.Errorf("unsupported contact method %q", s)
	}
}

// Contact is a saved transfer recipient. Reference data; never mutated.
type Contact struct {
	ID       string
	Name     string
	Method   ContactMethod
	Value    string // email address, phone number, or wallet address
	LastUsed string // human-readable label, e.g. "2 days ago"
	Favorite bool
}

// Initials returns the avatar initials for display.
func (c Contact) Initials() string {
	parts := strings.Fields(c.Name)
	switch len(parts) {
	case 0:
		return "??"
	case 1:
		r := []rune(parts[0])
		if len(r) == 1 {
			return strings.ToUpper(string(r))
		}
		return strings.ToUpper(string(r[:2]))
	default:
		return strings.ToUpper(string([]rune(parts[0])[:1]) + string([]rune(parts[len(parts)-1])[:1]))
	}
}

// Recipient is the destination of a transfer: either a saved contact or an
// ad-hoc entry typed in by the user. The two cases are distinct types rather
// than one struct with optional fields.
type Recipient interface {
	// DisplayName resolves the label shown in confirmations and receipts.
	DisplayName() string
	// Destination returns the contact method and raw value money is sent to.
	Destination() (ContactMethod, string)

	isRecipient()
}

// SavedRecipient wraps an existing contact chosen from the address book.
type SavedRecipient struct {
	Contact Contact
}

// DisplayName returns the contact's saved name.
func (r SavedRecipient) DisplayName() string { return r.Contact.Name }

// Destination returns the contact's saved method and value.
func (r SavedRecipient) Destination() (ContactMethod, string) {
	return r.Contact.Method, r.Contact.Value
}

func (SavedRecipient) isRecipient() {}

// AdHocRecipient is a recipient entered by raw contact method and value.
type AdHocRecipient struct {
	Method ContactMethod
	Value  string
	Name   string // optional; Value stands in when empty
}

// DisplayName returns the optional name, falling back to the raw value.
func (r AdHocRecipient) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Value
}

// Destination returns the typed method and raw value.
func (r AdHocRecipient) Destination() (ContactMethod, string) {
	return r.Method, r.Value
}

func (AdHocRecipient) isRecipient() {}

// Validate checks that the ad-hoc entry can become an active recipient.
func (r AdHocRecipient) Validate() error {
	if strings.TrimSpace(r.Value) == "" {
		return fmt.Errorf("recipient value is required")
	}
	switch r.Method {
	case MethodEmail, MethodPhone, MethodWallet:
		return nil
	default:
		return fmt.Errorf("unsupported contact method %q", r.Method)
	}
}
