package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kogaku/internal/tui/tuistyles"
)

// MetricCard displays one headline figure with its label, an optional change
// against a baseline and an optional caption.
type MetricCard struct {
	Label   string
	Value   string
	Change  *Change
	Caption string
	Width   int
}

// Change is a difference from a baseline figure such as the current regime.
type Change struct {
	Increase bool
	Amount   string // e.g. "+5,510円"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 28,
	}
}

// WithChange attaches a change indicator. Increases in a ceiling are shown
// in the negative color.
func (m *MetricCard) WithChange(increase bool, amount string) *MetricCard {
	m.Change = &Change{Increase: increase, Amount: amount}
	return m
}

// WithCaption adds a muted line below the value
func (m *MetricCard) WithCaption(caption string) *MetricCard {
	m.Caption = caption
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) changeLine() string {
	if m.Change == nil {
		return ""
	}
	style := tuistyles.MetricTrendStyle(!m.Change.Increase)
	return style.Render(tuistyles.TrendIndicator(m.Change.Increase) + " " + m.Change.Amount)
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if c := m.changeLine(); c != "" {
		lines = append(lines, c)
	}
	if m.Caption != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Caption))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCompact returns a single unbordered line
func (m *MetricCard) RenderCompact() string {
	s := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if c := m.changeLine(); c != "" {
		s += " " + c
	}
	return s
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	var current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
