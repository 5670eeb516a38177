// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies one of the wallet's supported currencies.
type Currency string

// Supported currencies.
const (
	USD Currency = "USD"
	BTC Currency = "BTC"
	ETH Currency = "ETH"
)

// Currencies lists every supported currency in display order.
func Currencies() []Currency {
	return []Currency{USD, BTC, ETH}
}

// ParseCurrency converts a user-supplied code into a Currency.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case USD:
		return USD, nil
	case BTC:
		return BTC, nil
	case ETH:
		return ETH, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", s)
	}
}

// Valid reports whether the currency is one of the supported codes.
func (c Currency) Valid() bool {
	switch c {
	case USD, BTC, ETH:
		return true
	default:
		return false
	}
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case BTC:
		return "₿"
	case ETH:
		return "Ξ"
	default:
		return ""
	}
}

// Precision returns the number of fractional digits used for display.
// Fiat renders with 2, crypto with 5.
func (c Currency) Precision() int32 {
	if c == USD {
		return 2
	}
	return 5
}

// IsCrypto reports whether the currency has a USD exchange rate.
func (c Currency) IsCrypto() bool {
	return c == BTC || c == ETH
}

// Format renders an amount with the currency's symbol and precision.
func (c Currency) Format(amount decimal.Decimal) string {
	return c.Symbol() + amount.StringFixed(c.Precision())
}
