package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/footprint/internal/campaign"
	"github.com/rshade/footprint/internal/emissions"
	"github.com/rshade/footprint/internal/footprint"
	"github.com/rshade/footprint/internal/greenops"
)

// Layout constants.
const (
	borderPadding     = 2
	defaultWidth      = 80
	breakdownHeight   = 7
	campaignRows      = 6
	percentMultiplier = 100
)

// NewBreakdownTable renders one row per category with its share of the total.
func NewBreakdownTable(state footprint.State, precision int) table.Model {
	columns := []table.Column{
		{Title: "Category", Width: 14},    //nolint:mnd // Column width.
		{Title: "Tonnes CO2e", Width: 14}, //nolint:mnd // Column width.
		{Title: "Share", Width: 8},        //nolint:mnd // Column width.
	}

	total := state.Total()
	categories := emissions.Categories()
	rows := make([]table.Row, len(categories))
	for i, c := range categories {
		value := state.Get(c)
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", value/total*percentMultiplier)
		}
		rows[i] = table.Row{c.Label(), greenops.FormatFloat(value, precision), share}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(breakdownHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	return t
}

// RenderTotalSummary renders the boxed total with its equivalency and offset
// lines. The equivalency line is omitted below the display threshold.
func RenderTotalSummary(state footprint.State, precision, width int) string {
	var content strings.Builder
	total := state.Total()

	content.WriteString(HeaderStyle.Render("YOUR CARBON FOOTPRINT"))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Total:  "))
	content.WriteString(ValueStyle.Render(greenops.FormatTonnes(total, precision)))

	if out, err := greenops.FromTonnes(total); err == nil && !out.IsEmpty {
		content.WriteString("\n")
		content.WriteString(SubtleStyle.Render(out.DisplayText))
	}
	if seedlings := greenops.OffsetSeedlings(total); seedlings > 0 {
		content.WriteString("\n")
		content.WriteString(LabelStyle.Render(fmt.Sprintf(
			"Offsetting this takes about %s tree seedlings grown for 10 years.",
			greenops.FormatNumber(seedlings))))
	}

	return BoxStyle.Width(max(width-borderPadding, 0)).Render(content.String())
}

// RenderCampaign renders a campaign list row. Expanded rows show the details
// and organizer below the title.
func RenderCampaign(c campaign.Campaign, selected, expanded bool) string {
	marker := "  "
	title := ValueStyle.Render(c.Title)
	if selected {
		marker = FocusedStyle.Render("> ")
		title = FocusedStyle.Render(c.Title)
	}

	toggle := "+"
	if expanded {
		toggle = "-"
	}
	line := fmt.Sprintf("%s%s %s  %s", marker, LabelStyle.Render(toggle), title, SubtleStyle.Render(c.Description))
	if !expanded {
		return line
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n      ")
	b.WriteString(c.Summary())
	b.WriteString("\n      ")
	b.WriteString(LabelStyle.Render("Organized by " + c.Organizer))
	if c.VideoURL != "" {
		b.WriteString("\n      ")
		b.WriteString(InfoStyle.Render(c.VideoURL))
	}
	return b.String()
}

// RenderVideos renders the educational videos shown under the campaigns.
func RenderVideos(videos []campaign.Video) string {
	if len(videos) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("LEARN MORE"))
	for _, v := range videos {
		b.WriteString("\n  ")
		b.WriteString(ValueStyle.Render(v.Title))
		b.WriteString("  ")
		b.WriteString(SubtleStyle.Render(v.URL))
	}
	return b.String()
}
