package provider

import (
	"time"

	"github.com/billfold/billfold/internal/model"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedContacts returns the demo address book.
func seedContacts() []model.Contact {
	return []model.Contact{
		{ID: "1", Name: "John Doe", Method: model.MethodEmail, Value: "john@example.com", Favorite: true, LastUsed: "2 days ago"},
		{ID: "2", Name: "Sarah Wilson", Method: model.MethodEmail, Value: "sarah@example.com", Favorite: false, LastUsed: "1 week ago"},
		{ID: "3", Name: "Mike Chen", Method: model.MethodEmail, Value: "mike@example.com", Favorite: true, LastUsed: "3 days ago"},
		{ID: "4", Name: "Emma Brown", Method: model.MethodEmail, Value: "emma@example.com", Favorite: false, LastUsed: "2 weeks ago"},
		{ID: "5", Name: "Alex Johnson", Method: model.MethodEmail, Value: "alex@example.com", Favorite: true, LastUsed: "5 days ago"},
	}
}

// seedBalances returns the demo per-currency balances.
func seedBalances() map[model.Currency]decimal.Decimal {
	return map[model.Currency]decimal.Decimal{
		model.USD: d("2500.50"),
		model.BTC: d("0.15432"),
		model.ETH: d("2.8954"),
	}
}

// seedFees returns the fixed per-currency transfer fees.
func seedFees() map[model.Currency]decimal.Decimal {
	return map[model.Currency]decimal.Decimal{
		model.USD: d("1.50"),
		model.BTC: d("0.0001"),
		model.ETH: d("0.005"),
	}
}

// seedRates returns the fixed USD exchange rates for crypto currencies.
func seedRates() map[model.Currency]decimal.Decimal {
	return map[model.Currency]decimal.Decimal{
		model.BTC: d("42500"),
		model.ETH: d("2300"),
	}
}

// seedAddresses returns the demo deposit addresses.
func seedAddresses() map[model.Currency]string {
	return map[model.Currency]string{
		model.BTC: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
		model.ETH: "0x742d35cc67d8cf5b7f8b8b8b8b8b8b8b8b8b8b8b",
	}
}

// seedSettings returns the demo account preferences.
func seedSettings() model.Settings {
	return model.Settings{
		Profile: model.Profile{
			Name:  "John Doe",
			Email: "john.doe@example.com",
			Phone: "+1 (555) 123-4567",
		},
		Notifications: model.NotificationPrefs{
			Email: true,
			Push:  true,
			SMS:   true,
		},
		TwoFactorEnabled: true,
	}
}

// seedLimits returns the demo funding limits.
func seedLimits() model.AccountLimits {
	return model.AccountLimits{
		Daily:       d("10000"),
		Monthly:     d("50000"),
		DailyUsed:   d("1200"),
		MonthlyUsed: d("8500"),
	}
}

// seedTransactions returns the demo ledger, newest first.
func seedTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: "txn_001", Type: model.TypeReceive, Amount: d("2500.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2024-01-15T10:30:00"), Sender: "Alice Johnson", Description: "Freelance payment", Fee: decimal.Zero, Hash: "0x1a2b3c4d5e6f", Category: "Income"},
		{ID: "txn_002", Type: model.TypeSend, Amount: d("0.05"), Currency: model.BTC, Status: model.StatusCompleted, Date: ts("2024-01-14T14:20:00"), Recipient: "Bob Smith", Description: "Bitcoin investment", Fee: d("0.001"), Hash: "0x9f8e7d6c5b4a", Category: "Investment"},
		{ID: "txn_003", Type: model.TypeDeposit, Amount: d("1000.00"), Currency: model.USD, Status: model.StatusPending, Date: ts("2024-01-14T09:15:00"), Description: "Bank transfer deposit", Fee: decimal.Zero, Category: "Deposit"},
		{ID: "txn_004", Type: model.TypeWithdrawal, Amount: d("500.00"), Currency: model.USD, Status: model.StatusFailed, Date: ts("2024-01-13T16:45:00"), Recipient: "Chase Bank", Description: "ATM withdrawal", Fee: d("2.50"), Category: "Withdrawal"},
		{ID: "txn_005", Type: model.TypeSend, Amount: d("1.5"), Currency: model.ETH, Status: model.StatusCompleted, Date: ts("2024-01-12T11:30:00"), Recipient: "Carol Davis", Description: "DeFi staking", Fee: d("0.02"), Hash: "0x5a4b3c2d1e0f", Category: "DeFi"},
		{ID: "txn_006", Type: model.TypeReceive, Amount: d("750.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2024-01-11T13:20:00"), Sender: "David Wilson", Description: "Refund payment", Fee: decimal.Zero, Category: "Refund"},
		{ID: "txn_007", Type: model.TypeSend, Amount: d("200.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2024-01-10T08:45:00"), Recipient: "Emma Brown", Description: "Dinner split", Fee: d("1.50"), Category: "Personal"},
		{ID: "txn_008", Type: model.TypeDeposit, Amount: d("0.1"), Currency: model.BTC, Status: model.StatusCompleted, Date: ts("2024-01-09T15:30:00"), Description: "Mining reward", Fee: decimal.Zero, Category: "Mining"},
		{ID: "txn_009", Type: model.TypeWithdrawal, Amount: d("300.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2024-01-08T12:15:00"), Recipient: "Wells Fargo", Description: "Bank withdrawal", Fee: d("5.00"), Category: "Withdrawal"},
		{ID: "txn_010", Type: model.TypeSend, Amount: d("2.0"), Currency: model.ETH, Status: model.StatusPending, Date: ts("2024-01-07T17:20:00"), Recipient: "Frank Miller", Description: "NFT purchase", Fee: d("0.05"), Category: "NFT"},
		{ID: "txn_011", Type: model.TypeReceive, Amount: d("1200.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2024-01-06T10:00:00"), Sender: "Grace Lee", Description: "Consulting fee", Fee: decimal.Zero, Category: "Income"},
		{ID: "txn_012", Type: model.TypeSend, Amount: d("450.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2024-01-05T14:30:00"), Recipient: "Henry Garcia", Description: "Rent payment", Fee: decimal.Zero, Category: "Bills"},
		{ID: "txn_013", Type: model.TypeDeposit, Amount: d("3.5"), Currency: model.ETH, Status: model.StatusCompleted, Date: ts("2023-12-28T09:45:00"), Description: "Exchange transfer", Fee: d("0.01"), Category: "Transfer"},
		{ID: "txn_014", Type: model.TypeWithdrawal, Amount: d("0.02"), Currency: model.BTC, Status: model.StatusFailed, Date: ts("2023-12-25T16:20:00"), Recipient: "Coinbase", Description: "Exchange withdrawal", Fee: d("0.005"), Category: "Exchange"},
		{ID: "txn_015", Type: model.TypeSend, Amount: d("125.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2023-12-20T11:15:00"), Recipient: "Ivy Johnson", Description: "Gift payment", Fee: d("1.25"), Category: "Gift"},
		{ID: "txn_016", Type: model.TypeReceive, Amount: d("0.08"), Currency: model.BTC, Status: model.StatusCompleted, Date: ts("2023-12-18T13:40:00"), Sender: "Jack White", Description: "P2P trade", Fee: decimal.Zero, Category: "Trading"},
		{ID: "txn_017", Type: model.TypeDeposit, Amount: d("800.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2023-12-15T08:20:00"), Description: "Salary deposit", Fee: decimal.Zero, Category: "Salary"},
		{ID: "txn_018", Type: model.TypeSend, Amount: d("1.2"), Currency: model.ETH, Status: model.StatusCompleted, Date: ts("2023-12-12T15:50:00"), Recipient: "Kate Brown", Description: "Smart contract interaction", Fee: d("0.03"), Category: "DeFi"},
		{ID: "txn_019", Type: model.TypeWithdrawal, Amount: d("250.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2023-12-10T12:30:00"), Recipient: "Bank of America", Description: "Emergency withdrawal", Fee: d("3.00"), Category: "Emergency"},
		{ID: "txn_020", Type: model.TypeReceive, Amount: d("5000.00"), Currency: model.USD, Status: model.StatusCompleted, Date: ts("2023-12-05T09:00:00"), Sender: "Lisa Davis", Description: "Investment return", Fee: decimal.Zero, Category: "Investment"},
	}
}
