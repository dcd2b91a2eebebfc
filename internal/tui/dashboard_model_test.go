package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/footprint/internal/campaign"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/payment"
)

// drive feeds msgs to the dashboard and keeps delivering the messages its
// commands produce, skipping quit and timer ticks.
func drive(t *testing.T, m *DashboardModel, msgs ...tea.Msg) {
	t.Helper()
	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(msg)
		if cmd == nil {
			continue
		}
		for _, next := range runCmd(t, cmd) {
			switch next.(type) {
			case formRecordedMsg, formSuggestMsg, FormClosedMsg, donateResultMsg, DonationClosedMsg:
				queue = append(queue, next)
			}
		}
	}
}

func TestDashboard_ShowsTotals(t *testing.T) {
	store := footprint.NewStore()
	require.NoError(t, store.Update(emissions.CategoryHouse, 32.5))
	require.NoError(t, store.Update(emissions.CategoryMotorbike, 28.2))

	m := NewDashboardModel(context.Background(), DashboardOptions{Store: store, Precision: 2})
	view := m.View()

	assert.Contains(t, view, "60.70 tonnes of CO2e")
	assert.Contains(t, view, "Motorbike")
	assert.Contains(t, view, "53.5%")
	assert.Contains(t, view, "FEATURED CAMPAIGNS")
	assert.Contains(t, view, campaign.Featured()[0].Title)
	assert.Contains(t, view, "LEARN MORE")
	assert.Contains(t, view, "The Story of Stuff")
}

func TestRenderVideos(t *testing.T) {
	out := RenderVideos([]campaign.Video{{Title: "Understanding Climate Change", URL: "https://example.com/v"}})
	assert.Contains(t, out, "Understanding Climate Change")
	assert.Contains(t, out, "https://example.com/v")
	assert.Empty(t, RenderVideos(nil))
}

func TestDashboard_EmptyStore(t *testing.T) {
	m := NewDashboardModel(context.Background(), DashboardOptions{Precision: 2})
	view := m.View()

	assert.Contains(t, view, "0.00 tonnes of CO2e")
	assert.NotContains(t, view, "Equivalent to")
	assert.NotContains(t, view, "seedlings")
}

func TestDashboard_EditCategoryUpdatesTotal(t *testing.T) {
	store := footprint.NewStore()
	m := NewDashboardModel(context.Background(), DashboardOptions{Store: store, Precision: 2})

	// Move to Motorbike and open its form.
	drive(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	assert.Equal(t, emissions.CategoryMotorbike, m.SelectedCategory())
	drive(t, m, key(tea.KeyEnter))
	require.Equal(t, DashboardStateForm, m.State())

	drive(t, m, key(tea.KeyEnter), keyRunes("100"), key(tea.KeyEnter), keyRunes("s"))
	assert.InDelta(t, 28.2, store.Motorbike(), 1e-9)

	drive(t, m, key(tea.KeyEsc))
	assert.Equal(t, DashboardStateMain, m.State())
	assert.Contains(t, m.View(), "Motorbike updated.")
	assert.Contains(t, m.View(), "28.20 tonnes of CO2e")
	assert.Equal(t, emissions.CategoryMotorbike, m.SelectedCategory(), "cursor survives the refresh")

	// Reopening the form shows the saved input.
	drive(t, m, key(tea.KeyEnter))
	require.NotNil(t, m.form)
	assert.Equal(t, "100", m.form.Values()["miles"])
}

func TestDashboard_Campaigns(t *testing.T) {
	m := NewDashboardModel(context.Background(), DashboardOptions{Precision: 2})
	first := campaign.Featured()[0]

	drive(t, m, key(tea.KeyTab))
	assert.NotContains(t, m.View(), first.Organizer)

	drive(t, m, key(tea.KeyEnter))
	assert.Contains(t, m.View(), "Organized by "+first.Organizer)

	drive(t, m, keyRunes("a"))
	assert.Contains(t, m.View(), "ALL CAMPAIGNS")
	assert.Equal(t, len(campaign.All()), m.campaigns.Len())

	drive(t, m, keyRunes("d"))
	assert.Equal(t, DashboardStateMain, m.State())
	assert.Contains(t, m.View(), "Donations are not available.")
}

func TestDashboard_Donate(t *testing.T) {
	m := NewDashboardModel(context.Background(), DashboardOptions{
		Precision: 2,
		Donations: payment.NewSimulator(payment.WithDelay(0)),
		Currency:  "USD",
	})

	drive(t, m, key(tea.KeyTab), key(tea.KeyDown), keyRunes("d"))
	require.Equal(t, DashboardStateDonate, m.State())
	assert.Contains(t, m.View(), campaign.Featured()[1].Title)

	m.donate.SetMethod(payment.MethodPayPal)
	m.donate.SetValue(rowAmount, "10")
	m.donate.SetValue(rowPayPalEmail, "jo@example.com")
	drive(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	receipt, ok := m.donate.Receipt()
	require.True(t, ok)

	drive(t, m, keyRunes("x"))
	assert.Equal(t, DashboardStateMain, m.State())
	require.Len(t, m.Receipts(), 1)
	assert.Equal(t, receipt.ID, m.Receipts()[0].ID)
	assert.Contains(t, m.View(), "was successful")
}

func TestDashboard_Quit(t *testing.T) {
	m := NewDashboardModel(context.Background(), DashboardOptions{})
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, DashboardStateQuitting, m.State())
	assert.Empty(t, m.View())
}
