package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/footprint/internal/campaign"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/logging"
	"github.com/rshade/footprint/internal/payment"
	listview "github.com/rshade/footprint/internal/tui/list"
)

// DashboardState is the screen currently shown.
type DashboardState int

const (
	// DashboardStateMain shows the breakdown, total and campaigns.
	DashboardStateMain DashboardState = iota
	// DashboardStateForm edits one category.
	DashboardStateForm
	// DashboardStateDonate shows the donation form.
	DashboardStateDonate
	// DashboardStateQuitting indicates the application is exiting.
	DashboardStateQuitting
)

type focusArea int

const (
	focusBreakdown focusArea = iota
	focusCampaigns
)

// DashboardOptions wires the dashboard to the store and services.
type DashboardOptions struct {
	Store *footprint.Store
	// Inputs prefills the category forms, e.g. from a scenario file.
	Inputs map[emissions.Category]emissions.Input
	// Suggest completes location and vehicle rows. Optional.
	Suggest SuggestFunc
	// Donations enables the donate action. Optional.
	Donations payment.Provider
	Currency  string
	Precision int
}

// DashboardModel is the top-level Bubble Tea model of `footprint dashboard`.
type DashboardModel struct {
	ctx  context.Context
	opts DashboardOptions

	state DashboardState
	focus focusArea

	table     table.Model
	campaigns *listview.Model[campaign.Campaign]
	showAll   bool
	expanded  map[string]bool

	form   *FormModel
	donate *DonateModel

	receipts []payment.Receipt
	status   string

	width int
}

// NewDashboardModel returns the dashboard over opts.Store. A nil store gets a
// fresh one.
func NewDashboardModel(ctx context.Context, opts DashboardOptions) *DashboardModel {
	if opts.Store == nil {
		opts.Store = footprint.NewStore()
	}
	if opts.Inputs == nil {
		opts.Inputs = make(map[emissions.Category]emissions.Input)
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}

	m := &DashboardModel{
		ctx:      ctx,
		opts:     opts,
		expanded: make(map[string]bool),
		width:    defaultWidth,
	}
	m.campaigns = listview.New(campaign.Featured(), campaignRows, func(c campaign.Campaign, selected bool) string {
		return RenderCampaign(c, selected && m.focus == focusCampaigns, m.expanded[c.Title])
	})
	m.refreshTable()
	return m
}

// Init implements tea.Model.
func (m *DashboardModel) Init() tea.Cmd { return nil }

// Update handles messages and updates the model state.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case FormClosedMsg:
		m.state = DashboardStateMain
		m.form = nil
		if msg.Saved {
			m.opts.Inputs[msg.Category] = msg.Input
			m.status = msg.Category.Label() + " updated."
		}
		m.refreshTable()
		return m, nil

	case DonationClosedMsg:
		m.state = DashboardStateMain
		m.donate = nil
		if msg.Receipt != nil {
			m.receipts = append(m.receipts, *msg.Receipt)
			m.status = msg.Receipt.Message()
			logging.FromContext(m.ctx).Info().
				Str("component", "tui").
				Str("receipt", msg.Receipt.ID).
				Msg("donation completed")
		}
		return m, nil
	}

	switch m.state {
	case DashboardStateForm:
		_, cmd := m.form.Update(msg)
		return m, cmd
	case DashboardStateDonate:
		_, cmd := m.donate.Update(msg)
		return m, cmd
	case DashboardStateMain, DashboardStateQuitting:
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(keyMsg)
	}
	return m, nil
}

func (m *DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.state = DashboardStateQuitting
		return m, tea.Quit
	case "tab":
		if m.focus == focusBreakdown {
			m.focus = focusCampaigns
			m.table.Blur()
		} else {
			m.focus = focusBreakdown
			m.table.Focus()
		}
		return m, nil
	case "a":
		m.toggleAllCampaigns()
		return m, nil
	}

	if m.focus == focusBreakdown {
		if msg.String() == "enter" {
			m.openForm(m.SelectedCategory())
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter", " ":
		if c := m.campaigns.SelectedItem(); c != nil {
			m.expanded[c.Title] = !m.expanded[c.Title]
		}
		return m, nil
	case "d":
		return m, m.openDonate()
	}
	m.campaigns.Update(msg)
	return m, nil
}

func (m *DashboardModel) toggleAllCampaigns() {
	m.showAll = !m.showAll
	if m.showAll {
		m.campaigns.SetItems(campaign.All())
	} else {
		m.campaigns.SetItems(campaign.Featured())
	}
}

func (m *DashboardModel) openForm(c emissions.Category) {
	m.form = NewFormModel(m.ctx, c, m.opts.Inputs[c], m.opts.Store.Record, m.opts.Suggest, m.opts.Precision)
	m.state = DashboardStateForm
	m.status = ""
}

func (m *DashboardModel) openDonate() tea.Cmd {
	c := m.campaigns.SelectedItem()
	if c == nil {
		return nil
	}
	if m.opts.Donations == nil {
		m.status = "Donations are not available."
		return nil
	}
	m.donate = NewDonateModel(m.ctx, m.opts.Donations, c.Title, m.opts.Currency)
	m.state = DashboardStateDonate
	m.status = ""
	return m.donate.Init()
}

func (m *DashboardModel) refreshTable() {
	cursor := m.table.Cursor()
	m.table = NewBreakdownTable(m.opts.Store.Snapshot(), m.opts.Precision)
	m.table.SetCursor(cursor)
	if m.focus != focusBreakdown {
		m.table.Blur()
	}
}

// SelectedCategory returns the category under the table cursor.
func (m *DashboardModel) SelectedCategory() emissions.Category {
	categories := emissions.Categories()
	i := max(0, min(m.table.Cursor(), len(categories)-1))
	return categories[i]
}

// State returns the screen currently shown.
func (m *DashboardModel) State() DashboardState { return m.state }

// Receipts returns the donations completed in this session.
func (m *DashboardModel) Receipts() []payment.Receipt { return m.receipts }

// View renders the current view.
func (m *DashboardModel) View() string {
	switch m.state {
	case DashboardStateQuitting:
		return ""
	case DashboardStateForm:
		return m.form.View()
	case DashboardStateDonate:
		return m.donate.View()
	case DashboardStateMain:
	}

	heading := "FEATURED CAMPAIGNS"
	if m.showAll {
		heading = "ALL CAMPAIGNS"
	}

	sections := []string{
		m.table.View(),
		RenderTotalSummary(m.opts.Store.Snapshot(), m.opts.Precision, m.width),
		HeaderStyle.Render(heading),
		m.campaigns.View(),
	}
	if videos := RenderVideos(campaign.Videos()); videos != "" {
		sections = append(sections, videos)
	}
	if m.status != "" {
		sections = append(sections, InfoStyle.Render(m.status))
	}
	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderHelp() string {
	if m.focus == focusBreakdown {
		return RenderHelp("↑/↓", "category", "enter", "edit", "tab", "campaigns", "a", "all campaigns", "q", "quit")
	}
	parts := []string{"↑/↓", "campaign", "enter", "details"}
	if m.opts.Donations != nil {
		parts = append(parts, "d", "donate")
	}
	parts = append(parts, "tab", "breakdown", "a", "all campaigns", "q", "quit")
	return strings.TrimSpace(RenderHelp(parts...))
}
