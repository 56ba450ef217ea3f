package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/internal/output"
	"github.com/rgehrsitz/kogaku/internal/tui/components"
	"github.com/rgehrsitz/kogaku/internal/tui/tuimsg"
	"github.com/rgehrsitz/kogaku/internal/tui/tuistyles"
)

var (
	keyExportHTML = key.NewBinding(key.WithKeys("ctrl+s"))
	keyExportXLSX = key.NewBinding(key.WithKeys("ctrl+x"))
)

// ResultsModel displays the last refund estimate
type ResultsModel struct {
	result *domain.RefundCalculationResult
	status string
	width  int
	height int
}

// NewResultsModel creates an empty results scene
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult replaces the displayed estimate
func (m *ResultsModel) SetResult(result *domain.RefundCalculationResult) {
	m.result = result
	m.status = ""
}

// Result returns the displayed estimate, or nil
func (m *ResultsModel) Result() *domain.RefundCalculationResult { return m.result }

// SetStatus shows a one-line message under the results
func (m *ResultsModel) SetStatus(status string) { m.status = status }

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles the export shortcuts; the scene is otherwise read-only
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keyExportHTML):
		return m, exportCmd("html")
	case key.Matches(keyMsg, keyExportXLSX):
		return m, exportCmd("xlsx")
	}
	return m, nil
}

func exportCmd(format string) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.ExportRequestedMsg{Format: format}
	}
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return `まだ計算結果がありません。

入力画面（ctrl+f）で支払いを入力し、enterで計算してください。`
	}
	r := m.result

	headline := "払い戻し目安：約" + output.FormatYen(r.Refund)
	if !r.HasRefund() {
		headline = "払い戻しの対象外（目安）"
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("払い戻し額（目安）", output.FormatYen(r.Refund)),
		components.NewMetricCard("自己負担限度額", output.FormatYen(r.SelfPaymentLimit)).
			WithCaption(output.FormatFormula(r)),
		components.NewMetricCard("合算対象の支払額", output.FormatYen(r.TotalEligibleCoPay)).
			WithCaption(fmt.Sprintf("%d件 / %d件", len(r.EligiblePayments()), len(r.Payments))),
		components.NewMetricCard("総医療費（推計）", output.FormatYen(r.TotalMedicalCost)),
	}

	sections := []string{
		tuistyles.ActiveBorderStyle.Render(tuistyles.TableHighlightStyle.Render(headline)),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s / 対象月 %s / %s", r.Regime.Label(), output.FormatMonth(r), output.FormatBracket(r))),
		"",
		components.MetricGrid(cards, 2),
		"",
		renderPayments(r),
		"",
		renderNotes(output.RefundNotes(r)),
	}
	if m.status != "" {
		sections = append(sections, "", tuistyles.InfoStyle.Render(m.status))
	}
	sections = append(sections, "",
		strings.Join([]string{helpItem("ctrl+s", "HTML保存"), helpItem("ctrl+x", "Excel保存"), helpItem("esc", "入力に戻る")}, "  "))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderPayments(r *domain.RefundCalculationResult) string {
	lines := []string{tuistyles.TableHeaderStyle.Render("医療機関ごとの支払い")}
	for _, p := range r.Payments {
		line := fmt.Sprintf("%-16s %12s", p.Label, output.FormatYen(p.Amount))
		if p.Eligible {
			lines = append(lines, tuistyles.TableCellStyle.Render(line))
			continue
		}
		lines = append(lines, tuistyles.MetricLabelStyle.Render(line)+"  "+tuistyles.WarningStyle.Render("合算対象外"))
	}
	return strings.Join(lines, "\n")
}

func renderNotes(notes []string) string {
	lines := []string{tuistyles.TableHeaderStyle.Render("【重要な注意事項】")}
	for _, n := range notes {
		lines = append(lines, tuistyles.HelpDescStyle.Width(76).Render("• "+n))
	}
	return strings.Join(lines, "\n")
}
