// Package provider implements the data-provider collaborator backing the
// wallet's view-models. All data lives in memory and is seeded with demo
// records; there is no persistence by design.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
	"github.com/shopspring/decimal"
)

var (
	_ service.DataProvider        = (*Memory)(nil)
	_ service.TransactionAppender = (*Memory)(nil)
	_ service.SettingsStore       = (*Memory)(nil)
)

// Memory is an in-memory, seeded data provider. Reads return copies so
// callers can never mutate the snapshot; the ledger grows only through
// AppendTransaction.
type Memory struct {
	balances     map[model.Currency]decimal.Decimal
	fees         map[model.Currency]decimal.Decimal
	rates        map[model.Currency]decimal.Decimal
	addresses    map[model.Currency]string
	contacts     []model.Contact
	transactions []model.Transaction
	limits       model.AccountLimits
	settings     model.Settings
	mu           sync.RWMutex
}

// Option customizes a Memory provider at construction time.
type Option func(*Memory)

// WithBalances overrides the seeded balance table.
func WithBalances(balances map[model.Currency]decimal.Decimal) Option {
	return func(m *Memory) {
		for c, b := range balances {
			m.balances[c] = b
		}
	}
}

// WithFees overrides the seeded fee table.
func WithFees(fees map[model.Currency]decimal.Decimal) Option {
	return func(m *Memory) {
		for c, f := range fees {
			m.fees[c] = f
		}
	}
}

// WithRates overrides the seeded exchange-rate table.
func WithRates(rates map[model.Currency]decimal.Decimal) Option {
	return func(m *Memory) {
		for c, r := range rates {
			m.rates[c] = r
		}
	}
}

// WithContacts replaces the seeded address book.
func WithContacts(contacts []model.Contact) Option {
	return func(m *Memory) {
		m.contacts = append([]model.Contact(nil), contacts...)
	}
}

// WithTransactions replaces the seeded ledger.
func WithTransactions(transactions []model.Transaction) Option {
	return func(m *Memory) {
		m.transactions = append([]model.Transaction(nil), transactions...)
	}
}

// NewMemory creates a provider seeded with the demo data set.
func NewMemory(opts ...Option) (*Memory, error) {
	m := &Memory{
		contacts:     seedContacts(),
		balances:     seedBalances(),
		fees:         seedFees(),
		rates:        seedRates(),
		addresses:    seedAddresses(),
		limits:       seedLimits(),
		settings:     seedSettings(),
		transactions: seedTransactions(),
	}

	for _, opt := range opts {
		opt(m)
	}

	for c, b := range m.balances {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: balance for %q", common.ErrInvalidConfig, c)
		}
		if b.IsNegative() {
			return nil, fmt.Errorf("%w: negative balance for %s", common.ErrInvalidConfig, c)
		}
	}
	for c := range m.fees {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: fee for %q", common.ErrInvalidConfig, c)
		}
	}
	for i, tx := range m.transactions {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("%w: transaction %d: %v", common.ErrInvalidConfig, i, err)
		}
	}

	return m, nil
}

// Contacts returns the saved address book.
func (m *Memory) Contacts(_ context.Context) ([]model.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]model.Contact(nil), m.contacts...), nil
}

// Balance returns the available balance for a currency.
func (m *Memory) Balance(_ context.Context, currency model.Currency) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	balance, ok := m.balances[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, currency)
	}
	return balance, nil
}

// Balances returns the full balance table.
func (m *Memory) Balances(_ context.Context) (map[model.Currency]decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[model.Currency]decimal.Decimal, len(m.balances))
	for c, b := range m.balances {
		out[c] = b
	}
	return out, nil
}

// Fee returns the fixed transfer fee for a currency.
func (m *Memory) Fee(_ context.Context, currency model.Currency) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fee, ok := m.fees[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, currency)
	}
	return fee, nil
}

// ExchangeRate returns the USD rate for a crypto currency. USD converts 1:1.
func (m *Memory) ExchangeRate(_ context.Context, currency model.Currency) (decimal.Decimal, error) {
	if currency == model.USD {
		return decimal.NewFromInt(1), nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rate, ok := m.rates[currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", common.ErrUnknownCurrency, currency)
	}
	return rate, nil
}

// Transactions returns the ledger, seeded order first, appended entries last.
func (m *Memory) Transactions(_ context.Context) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]model.Transaction(nil), m.transactions...), nil
}

// Limits returns the funding limits for the account.
func (m *Memory) Limits(_ context.Context) (model.AccountLimits, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.limits, nil
}

// DepositAddress returns the deposit address for a crypto currency.
func (m *Memory) DepositAddress(_ context.Context, currency model.Currency) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	addr, ok := m.addresses[currency]
	if !ok {
		return "", fmt.Errorf("%w: no deposit address for %s", common.ErrNotFound, currency)
	}
	return addr, nil
}

// Settings returns the account preferences.
func (m *Memory) Settings(_ context.Context) (model.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.settings, nil
}

// UpdateSettings replaces the account preferences for this session.
func (m *Memory) UpdateSettings(_ context.Context, settings model.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = settings
	return nil
}

// AppendTransaction records a settled operation in the ledger.
func (m *Memory) AppendTransaction(_ context.Context, tx model.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions = append(m.transactions, tx)
	return nil
}
