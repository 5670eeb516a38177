package tui

import (
	"fmt"
	"strings"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/ledger"
	"github.com/billfold/billfold/internal/model"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryModel renders a LedgerView as a browsable table with filter and
// sort controls and an analytics panel.
type HistoryModel struct {
	view *ledger.View

	table       table.Model
	pager       paginator.Model
	searchInput textinput.Model

	searching     bool
	showAnalytics bool
	quitting      bool
	width         int
	height        int
}

var historyColumns = []table.Column{
	{Title: "ID", Width: 10},
	{Title: "Date", Width: 17},
	{Title: "Type", Width: 10},
	{Title: "Status", Width: 10},
	{Title: "Amount", Width: 14},
	{Title: "Counterparty", Width: 18},
	{Title: "Description", Width: 26},
}

// NewHistoryModel creates the history screen over an existing view.
func NewHistoryModel(view *ledger.View) HistoryModel {
	t := table.New(
		table.WithColumns(historyColumns),
		table.WithHeight(ledger.DefaultPageSize+1),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(cli.PrimaryColor)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	p := paginator.New()
	p.Type = paginator.Dots

	search := textinput.New()
	search.Placeholder = "Search transactions..."
	search.Prompt = "🔍 "

	m := HistoryModel{
		view:        view,
		table:       t,
		pager:       p,
		searchInput: search,
	}
	m.refresh()
	return m
}

// refresh rebuilds the table rows and pager from the view's current page.
func (m *HistoryModel) refresh() {
	rows := make([]table.Row, 0, ledger.DefaultPageSize)
	for _, tx := range m.view.Rows() {
		rows = append(rows, table.Row{
			tx.ID,
			tx.Date.Format("2006-01-02 15:04"),
			string(tx.Type),
			string(tx.Status),
			tx.Currency.Format(tx.Amount),
			tx.Counterparty(),
			tx.Description,
		})
	}
	m.table.SetRows(rows)

	total := m.view.TotalPages()
	if total < 1 {
		total = 1
	}
	m.pager.SetTotalPages(total)
	m.pager.Page = m.view.Page() - 1
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleBrowseKey(msg)
	}

	return m, nil
}

func (m HistoryModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.view.SetSearch(m.searchInput.Value())
	m.refresh()
	return m, cmd
}

func (m HistoryModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case "s":
		m.view.SetSort(nextSortKey(m.view.Sort()))
		m.refresh()
		return m, nil

	case "t":
		m.view.SetTypeFilter(nextTypeFilter(m.view.TypeFilter()))
		m.refresh()
		return m, nil

	case "f":
		m.view.SetStatusFilter(nextStatusFilter(m.view.StatusFilter()))
		m.refresh()
		return m, nil

	case "c":
		m.view.SetCurrencyFilter(nextCurrencyFilter(m.view.CurrencyFilter()))
		m.refresh()
		return m, nil

	case "a":
		m.showAnalytics = !m.showAnalytics
		return m, nil

	case "left", "h":
		m.view.PrevPage()
		m.refresh()
		return m, nil

	case "right", "l":
		m.view.NextPage()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// nextSortKey cycles through the supported orderings.
func nextSortKey(current ledger.SortKey) ledger.SortKey {
	keys := ledger.SortKeys()
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func nextTypeFilter(current string) string {
	options := []string{ledger.FilterAll}
	for _, t := range model.TransactionTypes() {
		options = append(options, string(t))
	}
	return nextOption(options, current)
}

func nextStatusFilter(current string) string {
	options := []string{ledger.FilterAll}
	for _, s := range model.TransactionStatuses() {
		options = append(options, string(s))
	}
	return nextOption(options, current)
}

func nextCurrencyFilter(current string) string {
	options := []string{ledger.FilterAll}
	for _, c := range model.Currencies() {
		options = append(options, string(c))
	}
	return nextOption(options, current)
}

func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// View renders the screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Transaction History"))
	b.WriteString("\n")

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View() + "\n")
	}

	b.WriteString(cli.SubtitleStyle.Render(fmt.Sprintf(
		"type:%s  status:%s  currency:%s  sort:%s  %d results",
		m.view.TypeFilter(), m.view.StatusFilter(), m.view.CurrencyFilter(),
		m.view.Sort(), m.view.FilteredCount())))
	b.WriteString("\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.pager.View())
	b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("  page %d/%d", m.view.Page(), m.view.TotalPages())))
	b.WriteString("\n")

	if m.showAnalytics {
		b.WriteString("\n" + m.analyticsPanel() + "\n")
	}

	b.WriteString("\n" + cli.SubtleStyle.Render("/ search · s sort · t type · f status · c currency · a analytics · ←/→ pages · q quit"))
	return b.String()
}

func (m HistoryModel) analyticsPanel() string {
	a := m.view.Analytics()

	counts := make([]string, 0, len(a.ByType))
	for _, t := range model.TransactionTypes() {
		counts = append(counts, fmt.Sprintf("%s %d", t, a.ByType[t]))
	}

	content := fmt.Sprintf("Total sent: %s\nTotal received: %s\nTotal fees: %s\n%s",
		a.TotalSent.StringFixed(2),
		a.TotalReceived.StringFixed(2),
		a.TotalFees.StringFixed(2),
		strings.Join(counts, " · "))

	return cli.RenderBox(cli.ChartIcon+" Analytics", content)
}
