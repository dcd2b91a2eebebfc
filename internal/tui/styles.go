// Package tui implements the interactive footprint dashboard: a per-category
// breakdown backed by the aggregation store, one editable form per
// calculator, the campaign browser and the donation form.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette.
//
//nolint:gochecknoglobals // Shared styles.
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#5FD787"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#FFD75F"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5F5F"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#5FAFFF"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8A8A8A"}
)

// Text and layout styles.
//
//nolint:gochecknoglobals // Shared styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	LabelStyle    = lipgloss.NewStyle().Foreground(colorGray)
	ValueStyle    = lipgloss.NewStyle().Bold(true)
	InfoStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	SuccessStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	FocusedStyle  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorGray)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("22")).
				Bold(false)
)

// RenderLoadingIndicator is shown while a background command runs.
func RenderLoadingIndicator(label string) string {
	if label == "" {
		label = "Working..."
	}
	return InfoStyle.Render(label)
}

// RenderHelp renders a key help line such as "↑/↓ move • q quit".
func RenderHelp(pairs ...string) string {
	out := ""
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += SubtleStyle.Render(" • ")
		}
		out += ValueStyle.Render(pairs[i]) + " " + LabelStyle.Render(pairs[i+1])
	}
	return out
}
