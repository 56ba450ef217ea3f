package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/kogaku/internal/compare"
	"github.com/rgehrsitz/kogaku/internal/config"
	"github.com/rgehrsitz/kogaku/internal/tui/components"
	"github.com/rgehrsitz/kogaku/internal/tui/tuimsg"
	"github.com/rgehrsitz/kogaku/internal/tui/tuistyles"
	"github.com/rgehrsitz/kogaku/pkg/money"
)

// DefaultJudgeMedicalCost is the monthly 10/10ths cost ceilings are shown at
// when none is entered.
var DefaultJudgeMedicalCost = money.NewYen(1000000)

// JudgeModel classifies an income and compares the regimes' ceilings
type JudgeModel struct {
	income    textinput.Model
	cost      textinput.Model
	taxExempt bool
	focus     int
	set       *compare.ComparisonSet
	err       error
	width     int
	height    int
}

// NewJudgeModel creates the judgement scene
func NewJudgeModel() *JudgeModel {
	m := &JudgeModel{
		income: newFieldInput("例: 600", 10),
		cost:   newFieldInput(DefaultJudgeMedicalCost.Format(), 12),
	}
	m.income.Focus()
	return m
}

// SetSize updates the scene dimensions
func (m *JudgeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetComparison replaces the displayed comparison
func (m *JudgeModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.err = nil
}

// Comparison returns the displayed comparison, or nil
func (m *JudgeModel) Comparison() *compare.ComparisonSet { return m.set }

// SetError shows an error under the inputs
func (m *JudgeModel) SetError(err error) { m.err = err }

// Err returns the error shown under the inputs
func (m *JudgeModel) Err() error { return m.err }

func (m *JudgeModel) toggleFocus() tea.Cmd {
	m.focus = 1 - m.focus
	if m.focus == 0 {
		m.cost.Blur()
		return m.income.Focus()
	}
	m.income.Blur()
	return m.cost.Focus()
}

// Update handles messages for the judgement scene
func (m *JudgeModel) Update(msg tea.Msg) (*JudgeModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keyNext), key.Matches(keyMsg, keyPrev):
			return m, m.toggleFocus()
		case key.Matches(keyMsg, keyToggle):
			m.taxExempt = !m.taxExempt
			return m, nil
		case key.Matches(keyMsg, keySubmit):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.income, cmd = m.income.Update(msg)
	} else {
		m.cost, cmd = m.cost.Update(msg)
	}
	return m, cmd
}

// Options parses the inputs into comparison options
func (m *JudgeModel) Options() (compare.CompareOptions, error) {
	opts := compare.CompareOptions{TaxExempt: m.taxExempt, TotalMedicalCost: DefaultJudgeMedicalCost}

	income, err := config.ParseIncome(m.income.Value())
	if err != nil {
		return opts, fmt.Errorf("年収: %w", err)
	}
	opts.Income = income

	if strings.TrimSpace(m.cost.Value()) != "" {
		cost, err := config.ParseYen(m.cost.Value())
		if err != nil {
			return opts, fmt.Errorf("総医療費: %w", err)
		}
		opts.TotalMedicalCost = cost
	}
	return opts, nil
}

func (m *JudgeModel) submit() tea.Cmd {
	opts, err := m.Options()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return func() tea.Msg {
		return tuimsg.ComparisonRequestedMsg{Options: opts}
	}
}

// View renders the judgement scene
func (m *JudgeModel) View() string {
	incomeLabel, costLabel := tuistyles.FieldActiveLabelStyle, tuistyles.FieldLabelStyle
	if m.focus == 1 {
		incomeLabel, costLabel = costLabel, incomeLabel
	}
	toggle := "[ ]"
	if m.taxExempt {
		toggle = "[x]"
	}

	sections := []string{
		tuistyles.TitleStyle.Render("所得区分の判定と制度比較"),
		"",
		incomeLabel.Render("年収（万円）") + m.income.View(),
		costLabel.Render("総医療費（円）") + m.cost.View(),
		tuistyles.FieldLabelStyle.Render("住民税非課税") + toggle,
	}
	if m.err != nil {
		sections = append(sections, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}
	if m.set != nil {
		sections = append(sections, "", renderComparison(m.set))
	}
	sections = append(sections, "", strings.Join([]string{
		helpItem("tab", "移動"),
		helpItem("ctrl+t", "非課税"),
		helpItem("enter", "判定"),
	}, "  "))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderComparison(set *compare.ComparisonSet) string {
	header := tuistyles.TableHighlightStyle.Render("判定区分：" + set.CategoryLabel)

	rows := append([]compare.ComparisonResult{*set.BaseResult}, set.AlternativeResults...)
	cards := make([]*components.MetricCard, 0, len(rows))
	for _, r := range rows {
		if !r.Available {
			cards = append(cards, components.NewMetricCard(r.Label, "該当なし").WithCaption("公表されていません"))
			continue
		}
		card := components.NewMetricCard(r.Label, tuistyles.FormatCurrency(r.Limit)).
			WithCaption("多数該当 " + tuistyles.FormatCurrency(r.ManyTimesLimit))
		if r.TierID != "" {
			card.Label = r.Label + " " + r.TierID
		}
		if r.Regime != set.BaseResult.Regime && !r.LimitDiffFromBase.IsZero() {
			diff := r.LimitDiffFromBase.Format() + "円"
			if r.LimitDiffFromBase.IsPositive() {
				diff = "+" + diff
			}
			card.WithChange(r.LimitDiffFromBase.IsPositive(), diff)
		}
		cards = append(cards, card)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		components.MetricGrid(cards, 3),
		renderNotes(set.Recommendations),
	)
}
