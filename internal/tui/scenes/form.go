package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/internal/tui/components"
	"github.com/rgehrsitz/kogaku/internal/tui/tuimsg"
	"github.com/rgehrsitz/kogaku/internal/tui/tuistyles"
)

// Fixed fields above the payment rows
const (
	fieldCategory = iota
	fieldIncome
	fieldMonth
	fixedFieldCount
)

var (
	keyNext      = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrev      = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keySubmit    = key.NewBinding(key.WithKeys("enter"))
	keyAddRow    = key.NewBinding(key.WithKeys("ctrl+n"))
	keyRemoveRow = key.NewBinding(key.WithKeys("ctrl+d"))
	keyToggle    = key.NewBinding(key.WithKeys("ctrl+t"))
	keyReset     = key.NewBinding(key.WithKeys("ctrl+r"))
)

// RefundFormModel collects a refund request: category or income, the target
// month, the many-times flag and one row per provider payment.
type RefundFormModel struct {
	category  textinput.Model
	income    textinput.Model
	month     textinput.Model
	manyTimes bool
	rows      []*components.PaymentRow

	focus  int
	err    error
	width  int
	height int
}

// NewRefundFormModel creates a form with a single empty payment row
func NewRefundFormModel() *RefundFormModel {
	m := &RefundFormModel{}
	m.reset()
	return m
}

func newFieldInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = 20
	return ti
}

func (m *RefundFormModel) reset() {
	m.category = newFieldInput("ア〜オ / A〜E", 12)
	m.income = newFieldInput("例: 600", 10)
	m.month = newFieldInput("YYYY-MM", 7)
	m.manyTimes = false
	m.rows = []*components.PaymentRow{components.NewPaymentRow(0)}
	m.err = nil
	m.focus = 0
	m.applyFocus()
}

// SetSize updates the scene dimensions
func (m *RefundFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init focuses the first field
func (m *RefundFormModel) Init() tea.Cmd {
	return m.applyFocus()
}

// Rows returns the number of payment rows
func (m *RefundFormModel) Rows() int { return len(m.rows) }

// ManyTimes reports the state of the many-times toggle
func (m *RefundFormModel) ManyTimes() bool { return m.manyTimes }

// Focus returns the index of the focused field; payment rows follow the
// fixed fields two parts each.
func (m *RefundFormModel) Focus() int { return m.focus }

// Err returns the last validation error shown under the form
func (m *RefundFormModel) Err() error { return m.err }

func (m *RefundFormModel) fieldCount() int {
	return fixedFieldCount + 2*len(m.rows)
}

// focusedRow returns the payment row holding focus and the part within it
func (m *RefundFormModel) focusedRow() (int, int, bool) {
	if m.focus < fixedFieldCount {
		return 0, 0, false
	}
	offset := m.focus - fixedFieldCount
	return offset / 2, offset % 2, true
}

func (m *RefundFormModel) applyFocus() tea.Cmd {
	m.category.Blur()
	m.income.Blur()
	m.month.Blur()
	for _, r := range m.rows {
		r.Blur()
	}

	switch m.focus {
	case fieldCategory:
		return m.category.Focus()
	case fieldIncome:
		return m.income.Focus()
	case fieldMonth:
		return m.month.Focus()
	}
	row, part, _ := m.focusedRow()
	return m.rows[row].Focus(part)
}

func (m *RefundFormModel) moveFocus(delta int) tea.Cmd {
	n := m.fieldCount()
	m.focus = (m.focus + delta + n) % n
	return m.applyFocus()
}

func (m *RefundFormModel) addRow() tea.Cmd {
	m.rows = append(m.rows, components.NewPaymentRow(len(m.rows)))
	m.focus = fixedFieldCount + 2*(len(m.rows)-1)
	return m.applyFocus()
}

func (m *RefundFormModel) removeRow() tea.Cmd {
	row, _, ok := m.focusedRow()
	if !ok || len(m.rows) == 1 {
		return nil
	}
	m.rows = append(m.rows[:row], m.rows[row+1:]...)
	for i, r := range m.rows {
		r.SetIndex(i)
	}
	if m.focus >= m.fieldCount() {
		m.focus = m.fieldCount() - 2
	}
	return m.applyFocus()
}

// Update handles messages for the form scene
func (m *RefundFormModel) Update(msg tea.Msg) (*RefundFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, keyNext):
		return m, m.moveFocus(1)
	case key.Matches(keyMsg, keyPrev):
		return m, m.moveFocus(-1)
	case key.Matches(keyMsg, keyAddRow):
		return m, m.addRow()
	case key.Matches(keyMsg, keyRemoveRow):
		return m, m.removeRow()
	case key.Matches(keyMsg, keyToggle):
		m.manyTimes = !m.manyTimes
		return m, nil
	case key.Matches(keyMsg, keyReset):
		m.reset()
		return m, m.applyFocus()
	case key.Matches(keyMsg, keySubmit):
		return m, m.submit()
	}

	return m, m.updateFocused(msg)
}

func (m *RefundFormModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldCategory:
		m.category, cmd = m.category.Update(msg)
	case fieldIncome:
		m.income, cmd = m.income.Update(msg)
	case fieldMonth:
		m.month, cmd = m.month.Update(msg)
	default:
		row, _, _ := m.focusedRow()
		cmd = m.rows[row].Update(msg)
	}
	return cmd
}

func (m *RefundFormModel) submit() tea.Cmd {
	req, err := m.Request()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return func() tea.Msg {
		return tuimsg.RefundRequestedMsg{Request: req}
	}
}

// Request parses the form into a validated refund request. Blank payment
// rows are skipped.
func (m *RefundFormModel) Request() (domain.RefundRequest, error) {
	var req domain.RefundRequest

	if raw := strings.TrimSpace(m.income.Value()); raw != "" {
		income, err := config.ParseIncome(raw)
		if err != nil {
			return req, fmt.Errorf("年収: %w", err)
		}
		req.Income = &income
	}

	switch raw := strings.TrimSpace(m.category.Value()); {
	case raw != "":
		category, err := domain.ParseCategory(raw)
		if err != nil {
			return req, fmt.Errorf("所得区分: %w", err)
		}
		req.Category = category
	case req.Income != nil:
		req.Category = calculation.Classify(*req.Income)
		req.CategoryFromIncome = true
	default:
		return req, fmt.Errorf("所得区分または年収を入力してください")
	}

	month, err := config.ParseMonth(m.month.Value())
	if err != nil {
		return req, fmt.Errorf("対象月: %w", err)
	}
	req.TargetMonth = month
	req.ManyTimes = m.manyTimes

	for i, r := range m.rows {
		if r.Blank() {
			continue
		}
		p, err := r.Payment()
		if err != nil {
			return req, fmt.Errorf("支払い%d: %w", i+1, err)
		}
		req.Payments = append(req.Payments, p)
	}
	req.Payments = config.DropEmptyPayments(req.Payments)

	if err := config.NewInputParser().ValidateRequest(&req); err != nil {
		return req, err
	}
	return req, nil
}

// classificationHint shows the category implied by the typed income when no
// category was entered
func (m *RefundFormModel) classificationHint() string {
	if strings.TrimSpace(m.category.Value()) != "" || strings.TrimSpace(m.income.Value()) == "" {
		return ""
	}
	income, err := config.ParseIncome(m.income.Value())
	if err != nil {
		return ""
	}
	return tuistyles.InfoStyle.Render("→ " + calculation.Classify(income).Description())
}

func (m *RefundFormModel) fieldLine(field int, label, view, hint string) string {
	labelStyle := tuistyles.FieldLabelStyle
	if m.focus == field {
		labelStyle = tuistyles.FieldActiveLabelStyle
	}
	line := labelStyle.Render(label) + view
	if hint != "" {
		line += "  " + hint
	}
	return line
}

// View renders the form scene
func (m *RefundFormModel) View() string {
	title := tuistyles.TitleStyle.Render("払い戻し額の計算")

	toggle := "[ ]"
	if m.manyTimes {
		toggle = "[x]"
	}
	fields := lipgloss.JoinVertical(lipgloss.Left,
		m.fieldLine(fieldCategory, "所得区分", m.category.View(), ""),
		m.fieldLine(fieldIncome, "年収（万円）", m.income.View(), m.classificationHint()),
		m.fieldLine(fieldMonth, "対象月", m.month.View(), tuistyles.SubtitleStyle.Render("空欄なら現行制度")),
		tuistyles.FieldLabelStyle.Render("多数該当")+toggle,
	)

	var rows []string
	rows = append(rows, tuistyles.TableHeaderStyle.Render("医療機関ごとの支払い（同じ月・自己負担3割）"))
	for i, r := range m.rows {
		row, _, ok := m.focusedRow()
		rows = append(rows, r.View(ok && row == i))
	}
	total := components.NewMetricCard("合算対象の合計", tuistyles.FormatCurrency(components.EligibleTotal(m.rows)))
	rows = append(rows, "", total.RenderCompact())

	sections := []string{title, "", fields, "", tuistyles.BorderStyle.Render(strings.Join(rows, "\n"))}
	if m.err != nil {
		sections = append(sections, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}
	sections = append(sections, "", renderFormHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderFormHelp() string {
	items := []string{
		helpItem("tab/↑↓", "移動"),
		helpItem("ctrl+n", "行を追加"),
		helpItem("ctrl+d", "行を削除"),
		helpItem("ctrl+t", "多数該当"),
		helpItem("ctrl+r", "クリア"),
		helpItem("enter", "計算"),
	}
	return strings.Join(items, "  ")
}

func helpItem(k, desc string) string {
	return tuistyles.HelpKeyStyle.Render(k) + " " + tuistyles.HelpDescStyle.Render(desc)
}
