// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// and its scenes. It lives apart from package tui so scenes can import it
// without a cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#A14774")
	ColorSecondary = lipgloss.Color("#D97BA6")
	ColorAccent    = lipgloss.Color("#E8A33D")
	ColorSuccess   = lipgloss.Color("#3A9D5D")
	ColorDanger    = lipgloss.Color("#D0454C")
	ColorInfo      = lipgloss.Color("#4A7FB5")

	ColorForeground = lipgloss.Color("#F2ECEF")
	ColorMuted      = lipgloss.Color("#8C8489")
	ColorBorder     = lipgloss.Color("#5C3A4B")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(14)

	FieldActiveLabelStyle = FieldLabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableCellStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)
)

// MetricTrendStyle colors a change. For out-of-pocket ceilings an increase is
// bad news, so callers pass isPositive=false for increases.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(isUp bool) string {
	if isUp {
		return "▲"
	}
	return "▼"
}

// FormatCurrency formats an amount as "80,100円"
func FormatCurrency(amount money.Yen) string {
	return amount.FormatYen()
}
