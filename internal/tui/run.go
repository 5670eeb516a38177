package tui

import (
	"context"
	"fmt"

	"github.com/billfold/billfold/internal/ledger"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
)

// RunSendFlow runs the interactive transfer wizard and returns the receipts
// of every transfer settled before the user quit. Empty means the user quit
// without submitting.
func RunSendFlow(ctx context.Context, wiz *wizard.Wizard, contacts []model.Contact) ([]model.Receipt, error) {
	program := tea.NewProgram(
		NewSendFlowModel(wiz, contacts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("send flow failed: %w", err)
	}

	m, ok := final.(SendFlowModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final model %T", final)
	}
	return m.Receipts(), nil
}

// RunHistory runs the interactive transaction browser.
func RunHistory(ctx context.Context, view *ledger.View) error {
	program := tea.NewProgram(
		NewHistoryModel(view),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("history browser failed: %w", err)
	}
	return nil
}
