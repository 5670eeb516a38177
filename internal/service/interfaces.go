// Package service defines the collaborator contracts shared between the
// view-models, the data provider, and the simulated settlement gateway.
package service

import (
	"context"

	"github.com/billfold/billfold/internal/model"
	"github.com/shopspring/decimal"
)

// DataProvider supplies the read-only snapshot the view-models render from:
// saved contacts, per-currency balances, the fee and exchange-rate tables,
// and the transaction ledger.
type DataProvider interface {
	Contacts(ctx context.Context) ([]model.Contact, error)
	Balance(ctx context.Context, currency model.Currency) (decimal.Decimal, error)
	Balances(ctx context.Context) (map[model.Currency]decimal.Decimal, error)
	Fee(ctx context.Context, currency model.Currency) (decimal.Decimal, error)
	ExchangeRate(ctx context.Context, currency model.Currency) (decimal.Decimal, error)
	Transactions(ctx context.Context) ([]model.Transaction, error)
	Limits(ctx context.Context) (model.AccountLimits, error)
	DepositAddress(ctx context.Context, currency model.Currency) (string, error)
}

// TransactionAppender records a new ledger entry. Kept separate from
// DataProvider so read-only consumers cannot mutate the ledger.
type TransactionAppender interface {
	AppendTransaction(ctx context.Context, tx model.Transaction) error
}

// SettingsStore reads and updates the in-session account preferences.
type SettingsStore interface {
	Settings(ctx context.Context) (model.Settings, error)
	UpdateSettings(ctx context.Context, settings model.Settings) error
}

// TransferGateway is the asynchronous settlement boundary for transfers.
type TransferGateway interface {
	SubmitTransfer(ctx context.Context, transfer model.PendingTransfer) (model.Receipt, error)
}

// DepositGateway is the asynchronous settlement boundary for deposits.
type DepositGateway interface {
	SubmitDeposit(ctx context.Context, request model.DepositRequest) (model.DepositReceipt, error)
}

// SupportGateway is the simulated boundary for help requests.
type SupportGateway interface {
	SubmitSupportTicket(ctx context.Context, ticket model.SupportTicket) (model.TicketReceipt, error)
}
