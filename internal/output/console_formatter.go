package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/kogaku/internal/domain"
)

var (
	consoleTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A14774"))
	consoleLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B")).Width(24)
	consoleValueStyle = lipgloss.NewStyle().Bold(true)
	consoleMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9A9A"))
	consoleBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F8DCE8")).
				Padding(0, 2)
)

// ConsoleFormatter renders a refund report for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *domain.RefundCalculationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, consoleTitleStyle.Render("高額療養費 払い戻し額の目安"))
	fmt.Fprintln(&buf)

	highlight := "払い戻し目安：約" + FormatYen(r.Refund)
	if !r.HasRefund() {
		highlight = "払い戻しの対象外（目安）"
	}
	fmt.Fprintln(&buf, consoleBoxStyle.Render(consoleValueStyle.Render(highlight)))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, consoleTitleStyle.Render("医療機関ごとの支払い"))
	for _, p := range r.Payments {
		line := fmt.Sprintf("%s %s", consoleLabelStyle.Render(p.Label), FormatYen(p.Amount))
		if !p.Eligible {
			line += consoleMutedStyle.Render("  21,000円未満のため合算対象外です")
		}
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf)

	limitValue := FormatYen(r.SelfPaymentLimit)
	if r.ManyTimes {
		limitValue += "（多数該当）"
	}
	rows := [][2]string{
		{"適用期間", r.Regime.Label()},
		{"対象月", FormatMonth(r)},
		{"所得区分", FormatBracket(r)},
		{"合算対象の支払額", FormatYen(r.TotalEligibleCoPay)},
		{"総医療費（10割・推計）", FormatYen(r.TotalMedicalCost)},
		{"自己負担限度額（目安）", limitValue},
		{"計算式", FormatFormula(r)},
		{"払い戻し額（目安）", FormatYen(r.Refund)},
	}
	for _, row := range rows {
		fmt.Fprintf(&buf, "%s %s\n", consoleLabelStyle.Render(row[0]), consoleValueStyle.Render(row[1]))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, consoleTitleStyle.Render("【重要な注意事項】"))
	for _, n := range RefundNotes(r) {
		fmt.Fprintln(&buf, consoleMutedStyle.Render(wrapNote("• "+n, 72)))
	}

	return buf.Bytes(), nil
}

// wrapNote breaks long notes every width runes; Japanese text has no spaces
// to wrap on.
func wrapNote(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(runes); i += width {
		end := i + width
		if end > len(runes) {
			end = len(runes)
		}
		if i > 0 {
			sb.WriteString("\n  ")
		}
		sb.WriteString(string(runes[i:end]))
	}
	return sb.String()
}
