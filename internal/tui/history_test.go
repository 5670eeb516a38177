package tui

import (
	"context"
	"testing"

	"github.com/billfold/billfold/internal/ledger"
	"github.com/billfold/billfold/internal/provider"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryTestModel(t *testing.T) HistoryModel {
	t.Helper()

	store, err := provider.NewMemory()
	require.NoError(t, err)
	transactions, err := store.Transactions(context.Background())
	require.NoError(t, err)
	return NewHistoryModel(ledger.NewView(transactions))
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestHistoryKeyCyclesSort(t *testing.T) {
	m := newHistoryTestModel(t)
	require.Equal(t, ledger.SortDateDesc, m.view.Sort())

	updated, _ := m.Update(keyRune('s'))
	m = updated.(HistoryModel)
	assert.Equal(t, ledger.SortDateAsc, m.view.Sort())

	updated, _ = m.Update(keyRune('s'))
	m = updated.(HistoryModel)
	assert.Equal(t, ledger.SortAmountDesc, m.view.Sort())
}

func TestHistoryKeyCyclesFilters(t *testing.T) {
	m := newHistoryTestModel(t)

	updated, _ := m.Update(keyRune('t'))
	m = updated.(HistoryModel)
	assert.Equal(t, "send", m.view.TypeFilter())

	updated, _ = m.Update(keyRune('f'))
	m = updated.(HistoryModel)
	assert.Equal(t, "completed", m.view.StatusFilter())

	updated, _ = m.Update(keyRune('c'))
	m = updated.(HistoryModel)
	assert.Equal(t, "USD", m.view.CurrencyFilter())
}

func TestHistoryPagingKeys(t *testing.T) {
	m := newHistoryTestModel(t)
	require.Equal(t, 2, m.view.TotalPages())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(HistoryModel)
	assert.Equal(t, 2, m.view.Page())

	// Paging past the end clamps rather than wrapping.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(HistoryModel)
	assert.Equal(t, 2, m.view.Page())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(HistoryModel)
	assert.Equal(t, 1, m.view.Page())
}

func TestHistorySearchMode(t *testing.T) {
	m := newHistoryTestModel(t)

	updated, _ := m.Update(keyRune('/'))
	m = updated.(HistoryModel)
	require.True(t, m.searching)

	updated, _ = m.Update(keyRune('j'))
	m = updated.(HistoryModel)
	updated, _ = m.Update(keyRune('o'))
	m = updated.(HistoryModel)
	assert.Equal(t, "jo", m.view.Search())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(HistoryModel)
	assert.False(t, m.searching)
}

func TestHistoryQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyRune('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newHistoryTestModel(t)
		updated, cmd := m.Update(key)
		m = updated.(HistoryModel)
		assert.True(t, m.quitting)
		assert.NotNil(t, cmd)
		assert.Empty(t, m.View(), "quitting clears the screen")
	}
}

func TestHistoryViewShowsFilterSummary(t *testing.T) {
	m := newHistoryTestModel(t)

	updated, _ := m.Update(keyRune('t'))
	m = updated.(HistoryModel)

	out := m.View()
	assert.Contains(t, out, "type:send")
	assert.Contains(t, out, "7 results")
}

func TestHistoryAnalyticsToggle(t *testing.T) {
	m := newHistoryTestModel(t)
	assert.NotContains(t, m.View(), "Analytics")

	updated, _ := m.Update(keyRune('a'))
	m = updated.(HistoryModel)
	assert.Contains(t, m.View(), "Analytics")
	assert.Contains(t, m.View(), "Total sent: 777.75")
}

func TestNextOptionCycles(t *testing.T) {
	options := []string{"all", "send", "receive"}

	assert.Equal(t, "send", nextOption(options, "all"))
	assert.Equal(t, "all", nextOption(options, "receive"))
	assert.Equal(t, "all", nextOption(options, "bogus"), "unknown values restart the cycle")
}
