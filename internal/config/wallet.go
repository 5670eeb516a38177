// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"time"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/gateway"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/provider"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// LoadProviderOptions reads seed-data overrides from Viper. Each table is
// optional; omitted tables keep the built-in demo values.
//
//	wallet:
//	  balances: {USD: "100.00", BTC: "0.5"}
//	  fees:     {USD: "1.50"}
//	  rates:    {BTC: "42500"}
func LoadProviderOptions() ([]provider.Option, error) {
	var opts []provider.Option

	balances, err := currencyTable("wallet.balances")
	if err != nil {
		return nil, err
	}
	if len(balances) > 0 {
		opts = append(opts, provider.WithBalances(balances))
	}

	fees, err := currencyTable("wallet.fees")
	if err != nil {
		return nil, err
	}
	if len(fees) > 0 {
		opts = append(opts, provider.WithFees(fees))
	}

	rates, err := currencyTable("wallet.rates")
	if err != nil {
		return nil, err
	}
	if len(rates) > 0 {
		opts = append(opts, provider.WithRates(rates))
	}

	return opts, nil
}

// LoadGatewayOptions reads the artificial settlement delays from Viper.
//
//	gateway:
//	  transfer_delay: 2s
//	  deposit_delay: 2s
//	  support_delay: 1s
func LoadGatewayOptions() []gateway.Option {
	var opts []gateway.Option

	if viper.IsSet("gateway.transfer_delay") {
		opts = append(opts, gateway.WithTransferDelay(viper.GetDuration("gateway.transfer_delay")))
	}
	if viper.IsSet("gateway.deposit_delay") {
		opts = append(opts, gateway.WithDepositDelay(viper.GetDuration("gateway.deposit_delay")))
	}
	if viper.IsSet("gateway.support_delay") {
		opts = append(opts, gateway.WithSupportDelay(viper.GetDuration("gateway.support_delay")))
	}

	return opts
}

// SettlementDelay returns the configured transfer delay for progress
// display, falling back to the gateway default.
func SettlementDelay() time.Duration {
	if viper.IsSet("gateway.transfer_delay") {
		return viper.GetDuration("gateway.transfer_delay")
	}
	return gateway.DefaultTransferDelay
}

func currencyTable(key string) (map[model.Currency]decimal.Decimal, error) {
	raw := viper.GetStringMapString(key)
	if len(raw) == 0 {
		return nil, nil
	}

	table := make(map[model.Currency]decimal.Decimal, len(raw))
	for code, value := range raw {
		currency, err := model.ParseCurrency(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, key, err)
		}
		amount, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", common.ErrInvalidConfig, key, code, err)
		}
		table[currency] = amount
	}
	return table, nil
}
