package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("高額療養費 所得区分判定\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.Income != nil {
		sb.WriteString(fmt.Sprintf("入力年収: %s（%s）\n", compSet.Income.Format(), compSet.Income.ToYen().FormatYen()))
	}
	sb.WriteString(fmt.Sprintf("判定区分: %s\n", compSet.CategoryLabel))
	sb.WriteString(fmt.Sprintf("総医療費: %s円\n", compSet.TotalMedicalCost.Format()))
	sb.WriteString("\n")

	labelWidth := 14
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		labelWidth, "期間",
		labelWidth, "細分",
		numWidth, "限度額",
		numWidth, "多数該当",
		numWidth, "年間上限"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	base := compSet.BaseResult
	sb.WriteString(tf.formatRow(base, labelWidth, numWidth))
	for i := range compSet.AlternativeResults {
		sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], labelWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from the current regime
	if len(compSet.AlternativeResults) > 0 && base.Available {
		sb.WriteString("\n現行との比較\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			if !alt.Available {
				sb.WriteString(fmt.Sprintf("%s: 該当なし\n", alt.Label))
				continue
			}
			sb.WriteString(fmt.Sprintf("%s: 限度額 %s円 (%s%%)  多数該当 %s円\n",
				alt.Label,
				signedYen(alt.LimitDiffFromBase),
				signedDecimal(alt.LimitPctFromBase),
				signedYen(alt.ManyTimesDiffFromBase)))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\n【自己負担限度額について】\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// formatRow formats a single regime row
func (tf *TableFormatter) formatRow(result *ComparisonResult, labelWidth, numWidth int) string {
	if !result.Available {
		return fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
			labelWidth, result.Label, labelWidth, "-", numWidth, "該当なし", numWidth, "-", numWidth, "-")
	}

	tier := "-"
	if result.TierID != "" {
		tier = result.TierID + " " + result.RangeLabel
	}
	annualCap := "-"
	if result.AnnualCap.IsPositive() {
		annualCap = result.AnnualCap.Format()
	}

	return fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		labelWidth, result.Label,
		labelWidth, tier,
		numWidth, result.Limit.Format(),
		numWidth, result.ManyTimesLimit.Format(),
		numWidth, annualCap)
}

// FormatCompact creates a single-line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("区分%s 現行 %s円", compSet.Category.Label(), compSet.BaseResult.Limit.Format()))
	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(" | ")
		if !alt.Available {
			sb.WriteString(alt.Label + " 該当なし")
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s円 (%s)", alt.Label, alt.Limit.Format(), signedYen(alt.LimitDiffFromBase)))
	}
	return sb.String()
}

func signedYen(y money.Yen) string {
	if y.IsPositive() {
		return "+" + y.Format()
	}
	if y.IsNegative() {
		return "-" + money.NewYenFromDecimal(y.Abs()).Format()
	}
	return "±0"
}

func signedDecimal(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(1)
	}
	return d.StringFixed(1)
}
