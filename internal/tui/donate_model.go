package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oklog/ulid/v2"

	"github.com/rshade/footprint/internal/payment"
)

// DonateState is the phase of the donation form.
type DonateState int

const (
	// DonateStateEditing collects the donation details.
	DonateStateEditing DonateState = iota
	// DonateStateSubmitting waits for the provider.
	DonateStateSubmitting
	// DonateStateDone shows the receipt.
	DonateStateDone
)

// DonationClosedMsg is emitted when the donation form is dismissed. Receipt is
// nil when the user cancelled.
type DonationClosedMsg struct {
	Receipt *payment.Receipt
}

type donateResultMsg struct {
	receipt payment.Receipt
	err     error
}

// Row keys of the donation form.
const (
	rowAmount        = "amount"
	rowMethod        = "method"
	rowCardName      = "card.name"
	rowCardNumber    = "card.number"
	rowCardExpiry    = "card.expiry"
	rowCardCVV       = "card.cvv"
	rowBankHolder    = "bank.holder_name"
	rowBankAccount   = "bank.account_number"
	rowBankType      = "bank.account_type"
	rowBankName      = "bank.bank_name"
	rowBankIFSC      = "bank.ifsc"
	rowUPIID         = "upi_id"
	rowPayPalEmail   = "paypal_email"
	donateInputWidth = 32
)

//nolint:gochecknoglobals // Static form layout.
var (
	donateLabels = map[string]string{
		rowAmount:      "Amount",
		rowMethod:      "Payment method",
		rowCardName:    "Name on card",
		rowCardNumber:  "Card number",
		rowCardExpiry:  "Expiry (MM/YY)",
		rowCardCVV:     "CVV",
		rowBankHolder:  "Account holder",
		rowBankAccount: "Account number",
		rowBankType:    "Account type",
		rowBankName:    "Bank name",
		rowBankIFSC:    "IFSC (optional)",
		rowUPIID:       "UPI ID",
		rowPayPalEmail: "PayPal email",
	}
	accountTypes = []string{payment.AccountSavings, payment.AccountCurrent}
)

// DonateModel is the donation form for one campaign.
type DonateModel struct {
	ctx      context.Context
	provider payment.Provider

	campaign string
	currency string
	// idempotencyKey is fixed for the life of the form so a resubmit after a
	// lost response replays the first receipt.
	idempotencyKey string

	method      payment.Method
	accountType string
	inputs      map[string]textinput.Model
	focusedRow  int

	state   DonateState
	spinner spinner.Model
	receipt payment.Receipt
	err     error
}

// NewDonateModel returns a donation form for campaignTitle.
func NewDonateModel(ctx context.Context, provider payment.Provider, campaignTitle, currency string) *DonateModel {
	m := &DonateModel{
		ctx:            ctx,
		provider:       provider,
		campaign:       campaignTitle,
		currency:       currency,
		idempotencyKey: ulid.Make().String(),
		method:         payment.MethodCreditCard,
		accountType:    payment.AccountSavings,
		inputs:         make(map[string]textinput.Model),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	for key := range donateLabels {
		if key == rowMethod || key == rowBankType {
			continue
		}
		ti := textinput.New()
		ti.Width = donateInputWidth
		ti.Prompt = ""
		if key == rowCardCVV {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
			ti.CharLimit = 4
		}
		m.inputs[key] = ti
	}
	m.focusCurrent()
	return m
}

// rows lists the visible rows for the selected method.
func (m *DonateModel) rows() []string {
	rows := []string{rowAmount, rowMethod}
	switch {
	case m.method.IsCard():
		rows = append(rows, rowCardName, rowCardNumber, rowCardExpiry, rowCardCVV)
	case m.method == payment.MethodBankTransfer:
		rows = append(rows, rowBankHolder, rowBankAccount, rowBankType, rowBankName, rowBankIFSC)
	case m.method == payment.MethodUPI:
		rows = append(rows, rowUPIID)
	case m.method == payment.MethodPayPal:
		rows = append(rows, rowPayPalEmail)
	}
	return rows
}

func (m *DonateModel) currentRow() string {
	rows := m.rows()
	m.focusedRow = max(0, min(m.focusedRow, len(rows)-1))
	return rows[m.focusedRow]
}

// focusCurrent focuses the text input under the cursor and blurs the rest.
func (m *DonateModel) focusCurrent() {
	current := m.currentRow()
	for key, ti := range m.inputs {
		if key == current {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[key] = ti
	}
}

// SetValue fills a text row, e.g. SetValue("card.number", "4242...").
func (m *DonateModel) SetValue(row, value string) {
	if ti, ok := m.inputs[row]; ok {
		ti.SetValue(value)
		m.inputs[row] = ti
	}
}

// SetMethod selects the payment method.
func (m *DonateModel) SetMethod(method payment.Method) {
	m.method = method
	m.focusCurrent()
}

// Init implements tea.Model.
func (m *DonateModel) Init() tea.Cmd { return textinput.Blink }

// Update handles messages and updates the model state.
func (m *DonateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case donateResultMsg:
		if msg.err != nil {
			m.state = DonateStateEditing
			m.err = msg.err
			return m, nil
		}
		m.state = DonateStateDone
		m.receipt = msg.receipt
		m.err = nil
		return m, nil

	case spinner.TickMsg:
		if m.state != DonateStateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *DonateModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case DonateStateSubmitting:
		return m, nil
	case DonateStateDone:
		receipt := m.receipt
		return m, func() tea.Msg { return DonationClosedMsg{Receipt: &receipt} }
	case DonateStateEditing:
	}

	row := m.currentRow()
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return DonationClosedMsg{} }
	case "up", "shift+tab":
		m.focusedRow--
		m.focusCurrent()
		return m, nil
	case "down", "tab":
		m.focusedRow++
		m.focusCurrent()
		return m, nil
	case "enter":
		if m.focusedRow == len(m.rows())-1 {
			return m, m.submit()
		}
		m.focusedRow++
		m.focusCurrent()
		return m, nil
	case "ctrl+s":
		return m, m.submit()
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch row {
		case rowMethod:
			m.method = cycleMethod(m.method, delta)
			return m, nil
		case rowBankType:
			m.accountType = cycleString(accountTypes, m.accountType, delta)
			return m, nil
		}
	}

	ti, ok := m.inputs[row]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[row] = ti
	return m, cmd
}

func cycleMethod(current payment.Method, delta int) payment.Method {
	methods := payment.Methods()
	codes := make([]string, len(methods))
	for i, mt := range methods {
		codes[i] = string(mt)
	}
	return payment.Method(cycleString(codes, string(current), delta))
}

func cycleString(options []string, current string, delta int) string {
	f := formField{Value: current, Options: options}
	f.cycle(delta)
	return f.Value
}

// Donation assembles the request from the form. Amount errors are returned
// before the provider is called.
func (m *DonateModel) Donation() (payment.Donation, error) {
	value := func(row string) string { return strings.TrimSpace(m.inputs[row].Value()) }

	amount, err := payment.ParseAmount(value(rowAmount))
	if err != nil {
		return payment.Donation{}, err
	}
	d := payment.Donation{
		Campaign:       m.campaign,
		Method:         m.method,
		AmountMinor:    amount,
		Currency:       m.currency,
		IdempotencyKey: m.idempotencyKey,
	}
	switch {
	case m.method.IsCard():
		d.Card = &payment.CardDetails{
			Name:   value(rowCardName),
			Number: value(rowCardNumber),
			Expiry: value(rowCardExpiry),
			CVV:    value(rowCardCVV),
		}
	case m.method == payment.MethodBankTransfer:
		d.Bank = &payment.BankDetails{
			HolderName:    value(rowBankHolder),
			AccountNumber: value(rowBankAccount),
			AccountType:   m.accountType,
			BankName:      value(rowBankName),
			IFSC:          strings.ToUpper(value(rowBankIFSC)),
		}
	case m.method == payment.MethodUPI:
		d.UPIID = value(rowUPIID)
	case m.method == payment.MethodPayPal:
		d.PayPalEmail = value(rowPayPalEmail)
	}
	return d, nil
}

func (m *DonateModel) submit() tea.Cmd {
	d, err := m.Donation()
	if err != nil {
		m.err = err
		return nil
	}
	m.state = DonateStateSubmitting
	m.err = nil

	ctx, provider := m.ctx, m.provider
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		receipt, donateErr := provider.Donate(ctx, d)
		return donateResultMsg{receipt: receipt, err: donateErr}
	})
}

// State returns the form phase.
func (m *DonateModel) State() DonateState { return m.state }

// Receipt returns the receipt once the donation succeeded.
func (m *DonateModel) Receipt() (payment.Receipt, bool) {
	return m.receipt, m.state == DonateStateDone
}

// Err returns the last submission error.
func (m *DonateModel) Err() error { return m.err }

// View renders the form.
func (m *DonateModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("DONATE"))
	b.WriteString(LabelStyle.Render("  to " + m.campaign))
	b.WriteString("\n\n")

	switch m.state {
	case DonateStateSubmitting:
		b.WriteString(m.spinner.View() + " " + RenderLoadingIndicator("Processing donation..."))
		return b.String()
	case DonateStateDone:
		b.WriteString(SuccessStyle.Render(m.receipt.Message()))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Amount: "), ValueStyle.Render(m.receipt.Amount()))
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Receipt:"), ValueStyle.Render(m.receipt.ID))
		b.WriteString("\n" + SubtleStyle.Render("Press any key to return."))
		return b.String()
	case DonateStateEditing:
	}

	current := m.currentRow()
	for _, row := range m.rows() {
		marker := "  "
		if row == current {
			marker = FocusedStyle.Render("> ")
		}
		var value string
		switch row {
		case rowMethod:
			value = ValueStyle.Render("‹ " + m.method.Label() + " ›")
		case rowBankType:
			value = ValueStyle.Render("‹ " + m.accountType + " ›")
		default:
			value = m.inputs[row].View()
		}
		fmt.Fprintf(&b, "%s%s %s\n", marker, LabelStyle.Render(fmt.Sprintf("%-18s", donateLabels[row])), value)
	}

	if m.err != nil {
		b.WriteString("\n" + CriticalStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderHelp("↑/↓", "move", "←/→", "choose", "enter", "next/submit", "esc", "cancel"))
	return b.String()
}
