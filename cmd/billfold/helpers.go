package main

import (
	"fmt"
	"time"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/gateway"
	"github.com/billfold/billfold/internal/provider"
	"github.com/schollz/progressbar/v3"
)

// initProvider builds the seeded in-memory data provider, applying any
// table overrides from the config file.
func initProvider() (*provider.Memory, error) {
	opts, err := config.LoadProviderOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet config: %w", err)
	}

	store, err := provider.NewMemory(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize data provider: %w", err)
	}

	common.LogDebug("data provider initialized", common.Fields{"config_overrides": len(opts)})
	return store, nil
}

// initGateway builds the simulated settlement gateway over the provider.
func initGateway(store *provider.Memory) (*gateway.Simulated, error) {
	gw, err := gateway.NewSimulated(store, config.LoadGatewayOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway: %w", err)
	}
	return gw, nil
}

// runWithProgress shows a progress bar sized to the configured settlement
// delay while fn blocks on it. The bar is an estimate; fn decides when the
// operation is actually done.
func runWithProgress(label string, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	const tick = 100 * time.Millisecond
	steps := int(config.SettlementDelay() / tick)
	if steps < 1 {
		steps = 1
	}

	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetDescription(label),
		progressbar.OptionClearOnFinish(),
	)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			_ = bar.Finish()
			return err
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
