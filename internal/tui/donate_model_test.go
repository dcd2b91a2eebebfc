package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/payment"
)

const amazon = "Reforestation in the Amazon"

func newCardForm() *DonateModel {
	m := NewDonateModel(context.Background(), payment.NewSimulator(payment.WithDelay(0)), amazon, "USD")
	m.SetValue(rowAmount, "$50")
	m.SetValue(rowCardName, "Jo Doe")
	m.SetValue(rowCardNumber, "4242 4242 4242 4242")
	m.SetValue(rowCardExpiry, "12/49")
	m.SetValue(rowCardCVV, "123")
	return m
}

// submitAndDeliver submits the form and feeds the provider result back.
func submitAndDeliver(t *testing.T, m *DonateModel) {
	t.Helper()
	cmds := feed(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, cmds, 1)
	require.Equal(t, DonateStateSubmitting, m.State())
	assert.Contains(t, m.View(), "Processing donation")

	for _, msg := range runCmd(t, cmds[0]) {
		if _, ok := msg.(donateResultMsg); ok {
			feed(m, msg)
		}
	}
}

func TestDonateModel_CardDonation(t *testing.T) {
	m := newCardForm()

	d, err := m.Donation()
	require.NoError(t, err)
	assert.Equal(t, int64(5000), d.AmountMinor)
	require.NotNil(t, d.Card)
	assert.Nil(t, d.Bank)
	assert.NotEmpty(t, d.IdempotencyKey)

	submitAndDeliver(t, m)

	require.NoError(t, m.Err())
	receipt, ok := m.Receipt()
	require.True(t, ok)
	assert.Equal(t, "Your donation to Reforestation in the Amazon was successful.", receipt.Message())
	assert.Contains(t, m.View(), "was successful")

	cmds := feed(m, keyRunes("x"))
	require.Len(t, cmds, 1)
	msgs := runCmd(t, cmds[0])
	closed, ok := msgs[0].(DonationClosedMsg)
	require.True(t, ok)
	require.NotNil(t, closed.Receipt)
	assert.Equal(t, receipt.ID, closed.Receipt.ID)
}

func TestDonateModel_ResubmitReplaysReceipt(t *testing.T) {
	m := newCardForm()
	submitAndDeliver(t, m)
	first, _ := m.Receipt()

	m.state = DonateStateEditing
	submitAndDeliver(t, m)
	second, ok := m.Receipt()
	require.True(t, ok)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Replayed)
}

func TestDonateModel_InvalidAmountStaysLocal(t *testing.T) {
	m := newCardForm()
	m.SetValue(rowAmount, "free")

	assert.Empty(t, feed(m, tea.KeyMsg{Type: tea.KeyCtrlS}))
	require.ErrorIs(t, m.Err(), payment.ErrInvalidAmount)
	assert.Equal(t, DonateStateEditing, m.State())
}

func TestDonateModel_ProviderRejection(t *testing.T) {
	m := newCardForm()
	m.SetValue(rowCardNumber, "1234")

	submitAndDeliver(t, m)

	require.ErrorIs(t, m.Err(), payment.ErrInvalidDonation)
	assert.Equal(t, DonateStateEditing, m.State())
	assert.Contains(t, m.View(), "card.number")
}

func TestDonateModel_MethodRows(t *testing.T) {
	m := newCardForm()
	assert.Len(t, m.rows(), 6)

	feed(m, key(tea.KeyDown), key(tea.KeyRight))
	assert.Equal(t, payment.MethodDebitCard, m.method)
	feed(m, key(tea.KeyRight))
	assert.Equal(t, payment.MethodBankTransfer, m.method)
	assert.Len(t, m.rows(), 7)

	// Account type is a selector.
	m.focusedRow = 4
	feed(m, key(tea.KeyLeft))
	assert.Equal(t, payment.AccountCurrent, m.accountType)

	m.SetMethod(payment.MethodUPI)
	m.SetValue(rowUPIID, "jo.doe@okbank")
	d, err := m.Donation()
	require.NoError(t, err)
	assert.Nil(t, d.Card)
	assert.Equal(t, "jo.doe@okbank", d.UPIID)

	m.SetMethod(payment.MethodPayPal)
	assert.Equal(t, []string{rowAmount, rowMethod, rowPayPalEmail}, m.rows())
}

func TestDonateModel_TypingAndCancel(t *testing.T) {
	m := NewDonateModel(context.Background(), payment.NewSimulator(payment.WithDelay(0)), amazon, "USD")

	feed(m, keyRunes("2"), keyRunes("5"))
	d, err := m.Donation()
	require.NoError(t, err)
	assert.Equal(t, int64(2500), d.AmountMinor)

	cmds := feed(m, key(tea.KeyEsc))
	require.Len(t, cmds, 1)
	msgs := runCmd(t, cmds[0])
	closed, ok := msgs[0].(DonationClosedMsg)
	require.True(t, ok)
	assert.Nil(t, closed.Receipt)
}
