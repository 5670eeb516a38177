// Package tui implements the interactive terminal screens: the send-money
// wizard and the transaction history browser. Each screen is a bubbletea
// model over the corresponding view-model; no business rules live here.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/wizard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// transferResultMsg is sent when the gateway finishes settling.
type transferResultMsg struct {
	err     error
	receipt model.Receipt
}

// sendFocus tracks which input owns keystrokes on the recipient step.
type sendFocus int

const (
	focusSearch sendFocus = iota
	focusAdHocValue
	focusAdHocName
)

// SendFlowModel drives the three-step transfer wizard interactively.
type SendFlowModel struct {
	wiz      *wizard.Wizard
	contacts []model.Contact

	searchInput textinput.Model
	adhocValue  textinput.Model
	adhocName   textinput.Model
	amountInput textinput.Model
	descInput   textinput.Model
	pinInput    textinput.Model
	spin        spinner.Model

	receipts   []model.Receipt
	errMsg     string
	focus      sendFocus
	cursor     int
	methodIdx  int
	currencies []model.Currency
	currIdx    int
	terms      bool
	processing bool
	quitting   bool
	width      int
	height     int
}

var contactMethods = []model.ContactMethod{model.MethodEmail, model.MethodPhone, model.MethodWallet}

// NewSendFlowModel creates the wizard screen.
func NewSendFlowModel(wiz *wizard.Wizard, contacts []model.Contact) SendFlowModel {
	search := textinput.New()
	search.Placeholder = "Search contacts..."
	search.Prompt = "🔍 "
	search.Focus()

	adhocValue := textinput.New()
	adhocValue.Placeholder = "email, phone, or wallet address"

	adhocName := textinput.New()
	adhocName.Placeholder = "Name (optional)"

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.Prompt = ""
	amount.CharLimit = 20

	desc := textinput.New()
	desc.Placeholder = "What's this for? (optional)"
	desc.CharLimit = 120

	pin := textinput.New()
	pin.Placeholder = "••••"
	pin.EchoMode = textinput.EchoPassword
	pin.CharLimit = 4

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	// Favorites first, keeping the saved order within each group.
	sorted := append([]model.Contact(nil), contacts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Favorite && !sorted[j].Favorite
	})

	return SendFlowModel{
		wiz:         wiz,
		contacts:    sorted,
		searchInput: search,
		adhocValue:  adhocValue,
		adhocName:   adhocName,
		amountInput: amount,
		descInput:   desc,
		pinInput:    pin,
		spin:        s,
		currencies:  model.Currencies(),
	}
}

// Init starts the spinner tick.
func (m SendFlowModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update handles messages.
func (m SendFlowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.processing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case transferResultMsg:
		m.processing = false
		if msg.err != nil {
			m.errMsg = userMessage(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.receipts = append(m.receipts, msg.receipt)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.processing {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m SendFlowModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.wiz.Step() {
	case wizard.StepRecipient:
		return m.handleRecipientKey(msg)
	case wizard.StepAmount:
		return m.handleAmountKey(msg)
	case wizard.StepConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleDoneKey(msg)
	}
}

func (m SendFlowModel) handleRecipientKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % 3
		m.syncRecipientFocus()
		return m, nil

	case "ctrl+t":
		m.methodIdx = (m.methodIdx + 1) % len(contactMethods)
		return m, nil

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.filteredContacts())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		m.errMsg = ""
		if m.focus == focusSearch {
			contacts := m.filteredContacts()
			if m.cursor < len(contacts) {
				m.wiz.SelectRecipient(contacts[m.cursor])
			}
		} else if strings.TrimSpace(m.adhocValue.Value()) != "" {
			if err := m.wiz.DraftRecipient(contactMethods[m.methodIdx], m.adhocValue.Value(), m.adhocName.Value()); err != nil {
				m.errMsg = userMessage(err)
				return m, nil
			}
		}
		if err := m.wiz.Advance(context.Background()); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.amountInput.Focus()
		return m, nil
	}

	return m.updateRecipientInputs(msg)
}

func (m *SendFlowModel) syncRecipientFocus() {
	m.searchInput.Blur()
	m.adhocValue.Blur()
	m.adhocName.Blur()
	switch m.focus {
	case focusSearch:
		m.searchInput.Focus()
	case focusAdHocValue:
		m.adhocValue.Focus()
	case focusAdHocName:
		m.adhocName.Focus()
	}
}

func (m SendFlowModel) updateRecipientInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)
	m.adhocValue, cmd = m.adhocValue.Update(msg)
	cmds = append(cmds, cmd)
	m.adhocName, cmd = m.adhocName.Update(msg)
	cmds = append(cmds, cmd)

	if m.cursor >= len(m.filteredContacts()) {
		m.cursor = 0
	}

	return m, tea.Batch(cmds...)
}

func (m SendFlowModel) handleAmountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wiz.Back()
		m.focus = focusSearch
		m.syncRecipientFocus()
		return m, nil

	case "tab":
		if m.amountInput.Focused() {
			m.amountInput.Blur()
			m.descInput.Focus()
		} else {
			m.descInput.Blur()
			m.amountInput.Focus()
		}
		return m, nil

	case "ctrl+s":
		m.currIdx = (m.currIdx + 1) % len(m.currencies)
		m.errMsg = ""
		m.applyAmount()
		return m, nil

	case "ctrl+x":
		if err := m.wiz.SetMaxAmount(context.Background()); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.amountInput.SetValue(m.wiz.Amount().String())
		return m, nil

	case "enter":
		m.errMsg = ""
		m.applyAmount()
		m.wiz.SetDescription(m.descInput.Value())
		if err := m.wiz.Advance(context.Background()); err != nil {
			m.errMsg = userMessage(err)
			return m, nil
		}
		m.pinInput.Focus()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	cmds = append(cmds, cmd)
	m.descInput, cmd = m.descInput.Update(msg)
	cmds = append(cmds, cmd)
	m.applyAmount()
	return m, tea.Batch(cmds...)
}

// applyAmount pushes the typed amount into the wizard so the fee, total,
// and USD preview stay live. Unparseable input is treated as zero.
func (m *SendFlowModel) applyAmount() {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.amountInput.Value()))
	if err != nil {
		amount = decimal.Zero
	}
	if err := m.wiz.SetAmount(context.Background(), amount, m.currencies[m.currIdx]); err != nil {
		m.errMsg = userMessage(err)
	}
}

func (m SendFlowModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.wiz.Back()
		m.amountInput.Focus()
		return m, nil

	case "tab":
		m.terms = !m.terms
		return m, nil

	case "enter":
		m.errMsg = ""
		m.processing = true
		pin := m.pinInput.Value()
		terms := m.terms
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			receipt, err := m.wiz.Submit(context.Background(), pin, terms)
			return transferResultMsg{receipt: receipt, err: err}
		})
	}

	var cmd tea.Cmd
	m.pinInput, cmd = m.pinInput.Update(msg)
	return m, cmd
}

func (m SendFlowModel) handleDoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.wiz.Reset()
		m.terms = false
		m.cursor = 0
		m.focus = focusSearch
		m.searchInput.SetValue("")
		m.adhocValue.SetValue("")
		m.adhocName.SetValue("")
		m.amountInput.SetValue("")
		m.descInput.SetValue("")
		m.pinInput.SetValue("")
		m.syncRecipientFocus()
		return m, nil

	case "q", "esc", "enter":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SendFlowModel) filteredContacts() []model.Contact {
	term := strings.ToLower(strings.TrimSpace(m.searchInput.Value()))
	if term == "" {
		return m.contacts
	}

	var out []model.Contact
	for _, c := range m.contacts {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Value), term) {
			out = append(out, c)
		}
	}
	return out
}

// View renders the current step.
func (m SendFlowModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Send Money"))
	b.WriteString("\n")

	// Submit runs on the command goroutine and mutates the wizard; while it
	// is in flight the view renders from the model alone.
	if m.processing {
		b.WriteString(m.spin.View() + " Processing transfer...\n")
		return b.String()
	}

	b.WriteString(m.stepIndicator())
	b.WriteString("\n\n")

	switch m.wiz.Step() {
	case wizard.StepRecipient:
		b.WriteString(m.viewRecipient())
	case wizard.StepAmount:
		b.WriteString(m.viewAmount())
	case wizard.StepConfirm:
		b.WriteString(m.viewConfirm())
	default:
		b.WriteString(m.viewDone())
	}

	if m.errMsg != "" {
		b.WriteString("\n" + cli.FormatError(m.errMsg) + "\n")
	}

	return b.String()
}

func (m SendFlowModel) stepIndicator() string {
	steps := []wizard.Step{wizard.StepRecipient, wizard.StepAmount, wizard.StepConfirm}
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", int(s), s)
		if s == m.wiz.Step() || m.wiz.Step() == wizard.StepDone {
			parts = append(parts, cli.BoldStyle.Render(label))
		} else {
			parts = append(parts, cli.SubtleStyle.Render(label))
		}
	}
	return strings.Join(parts, cli.SubtleStyle.Render(" › "))
}

func (m SendFlowModel) viewRecipient() string {
	var b strings.Builder

	b.WriteString(m.searchInput.View() + "\n\n")

	contacts := m.filteredContacts()
	if len(contacts) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No matching contacts") + "\n")
	}
	for i, c := range contacts {
		line := fmt.Sprintf("%s  %s (%s)", c.Initials(), c.Name, c.Value)
		if c.Favorite {
			line = "★ " + line
		} else {
			line = "  " + line
		}
		if i == m.cursor && m.focus == focusSearch {
			b.WriteString(cli.BoldStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + cli.SubtitleStyle.Render("Or send to someone new:") + "\n")
	b.WriteString(fmt.Sprintf("  %s [%s]\n", m.adhocValue.View(), contactMethods[m.methodIdx]))
	b.WriteString("  " + m.adhocName.View() + "\n")

	b.WriteString("\n" + cli.SubtleStyle.Render("enter select · tab switch field · ctrl+t method · esc quit"))
	return b.String()
}

func (m SendFlowModel) viewAmount() string {
	currency := m.currencies[m.currIdx]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("To: %s\n\n", cli.BoldStyle.Render(recipientLabel(m.wiz.Recipient()))))
	b.WriteString(fmt.Sprintf("Amount (%s %s): %s\n", currency, currency.Symbol(), m.amountInput.View()))
	b.WriteString(fmt.Sprintf("Note: %s\n\n", m.descInput.View()))

	b.WriteString(fmt.Sprintf("Fee: %s   Total: %s\n",
		currency.Format(m.wiz.Fee()),
		currency.Format(m.wiz.Total())))
	if currency.IsCrypto() {
		b.WriteString(fmt.Sprintf("≈ %s USD\n", m.wiz.USDValue().StringFixed(2)))
	}

	b.WriteString("\n" + cli.SubtleStyle.Render("enter continue · tab note · ctrl+s currency · ctrl+x max · esc back"))
	return b.String()
}

func (m SendFlowModel) viewConfirm() string {
	currency := m.wiz.Currency()

	var b strings.Builder
	summary := fmt.Sprintf("Send %s to %s\nFee %s · Total %s",
		currency.Format(m.wiz.Amount()),
		recipientLabel(m.wiz.Recipient()),
		currency.Format(m.wiz.Fee()),
		currency.Format(m.wiz.Total()))
	b.WriteString(cli.RenderBox("Review", summary) + "\n\n")

	b.WriteString("PIN: " + m.pinInput.View() + "\n")
	check := "[ ]"
	if m.terms {
		check = "[x]"
	}
	b.WriteString(check + " I accept the terms and conditions\n")

	b.WriteString("\n" + cli.SubtleStyle.Render("enter send · tab accept terms · esc back"))
	return b.String()
}

func (m SendFlowModel) viewDone() string {
	receipt := m.wiz.Receipt()
	if receipt == nil {
		return ""
	}

	currency := receipt.Currency
	details := fmt.Sprintf("Transaction ID: %s\nAmount: %s\nFee: %s\nTotal: %s\nRecipient: %s",
		receipt.TransactionID,
		currency.Format(receipt.Amount),
		currency.Format(receipt.Fee),
		currency.Format(receipt.Total),
		receipt.RecipientName)

	return cli.FormatSuccess("Money sent successfully!") + "\n\n" +
		cli.RenderBox("Receipt", details) + "\n\n" +
		cli.SubtleStyle.Render("n new transfer · q quit")
}

// Receipts returns every transfer settled during the session, in order.
// Starting another transfer resets the wizard but never forgets a receipt.
func (m SendFlowModel) Receipts() []model.Receipt {
	return append([]model.Receipt(nil), m.receipts...)
}

func recipientLabel(r model.Recipient) string {
	if r == nil {
		return ""
	}
	method, value := r.Destination()
	return fmt.Sprintf("%s (%s: %s)", r.DisplayName(), method, value)
}

func userMessage(err error) string {
	if verr, ok := common.AsValidation(err); ok {
		return verr.Message
	}
	return err.Error()
}
