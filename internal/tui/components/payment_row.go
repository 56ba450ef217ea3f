package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/internal/tui/tuistyles"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// Row parts that can hold focus
const (
	PaymentLabelPart = iota
	PaymentAmountPart
)

// PaymentRow is one editable provider payment: a label input and an amount
// input, with a live note when the amount falls below the aggregation minimum.
type PaymentRow struct {
	Label  textinput.Model
	Amount textinput.Model
	index  int
}

// NewPaymentRow creates an empty row for the payment at position index
func NewPaymentRow(index int) *PaymentRow {
	label := textinput.New()
	label.Placeholder = config.DefaultPaymentLabel(index)
	label.Prompt = ""
	label.CharLimit = 40
	label.Width = 18

	amount := textinput.New()
	amount.Placeholder = "0"
	amount.Prompt = ""
	amount.CharLimit = 12
	amount.Width = 12

	return &PaymentRow{Label: label, Amount: amount, index: index}
}

// SetIndex renumbers the row after an earlier row was removed
func (r *PaymentRow) SetIndex(index int) {
	r.index = index
	r.Label.Placeholder = config.DefaultPaymentLabel(index)
}

// Focus moves the cursor into one part of the row
func (r *PaymentRow) Focus(part int) tea.Cmd {
	r.Blur()
	if part == PaymentLabelPart {
		return r.Label.Focus()
	}
	return r.Amount.Focus()
}

// Blur removes the cursor from both parts
func (r *PaymentRow) Blur() {
	r.Label.Blur()
	r.Amount.Blur()
}

// Update forwards a message to whichever part is focused
func (r *PaymentRow) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case r.Label.Focused():
		r.Label, cmd = r.Label.Update(msg)
	case r.Amount.Focused():
		r.Amount, cmd = r.Amount.Update(msg)
	}
	return cmd
}

// Blank reports whether nothing has been typed into the row
func (r *PaymentRow) Blank() bool {
	return strings.TrimSpace(r.Label.Value()) == "" && strings.TrimSpace(r.Amount.Value()) == ""
}

// Payment parses the row. An empty label falls back to the placeholder name.
func (r *PaymentRow) Payment() (domain.ProviderPayment, error) {
	amount, err := config.ParseYen(r.Amount.Value())
	if err != nil {
		return domain.ProviderPayment{}, err
	}
	label := strings.TrimSpace(r.Label.Value())
	if label == "" {
		label = config.DefaultPaymentLabel(r.index)
	}
	return domain.ProviderPayment{Label: label, Amount: amount}, nil
}

// Status is the inline note shown after the amount while typing
func (r *PaymentRow) Status() string {
	if strings.TrimSpace(r.Amount.Value()) == "" {
		return ""
	}
	amount, err := config.ParseYen(r.Amount.Value())
	if err != nil {
		return tuistyles.ErrorStyle.Render("金額を数字で入力してください")
	}
	if !calculation.IsEligible(amount) {
		return tuistyles.WarningStyle.Render("21,000円未満のため合算対象外です")
	}
	return tuistyles.MetricPositiveStyle.Render("合算対象")
}

// View renders the row on one line
func (r *PaymentRow) View(active bool) string {
	marker := "  "
	if active {
		marker = tuistyles.SelectedItemStyle.Render("▸ ")
	}
	parts := []string{
		marker,
		r.Label.View(),
		"  ",
		r.Amount.View(),
		" 円  ",
		r.Status(),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// EligibleTotal sums the amounts of rows that parse and reach the minimum
func EligibleTotal(rows []*PaymentRow) money.Yen {
	total := money.ZeroYen()
	for _, r := range rows {
		amount, err := config.ParseYen(r.Amount.Value())
		if err != nil || !calculation.IsEligible(amount) {
			continue
		}
		total = total.Add(amount)
	}
	return total
}
