package output

import (
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatYen formats an amount with digit grouping and the yen unit ("80,100円").
func FormatYen(amount money.Yen) string { return amount.FormatYen() }

// FormatPercentage formats a rate such as 0.01 as "1%".
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// FormatMonth formats a target month, or "-" when none was given
func FormatMonth(r *domain.RefundCalculationResult) string {
	if r.TargetMonth.IsZero() {
		return "-"
	}
	return r.TargetMonth.Format("2006年1月")
}

// FormatFormula describes how the limit was derived
func FormatFormula(r *domain.RefundCalculationResult) string {
	p := r.Parameters
	switch {
	case r.ManyTimes:
		return "多数該当 " + FormatYen(p.ManyTimesAmount)
	case p.HasMarginalRate():
		return FormatYen(p.BaseAmount) + " + (" + FormatYen(r.TotalMedicalCost) + " - " + FormatYen(p.Threshold) + ") × " + FormatPercentage(p.Rate)
	default:
		return "一律 " + FormatYen(p.BaseAmount)
	}
}

// FormatBracket describes the category and, when one was selected, the tier
func FormatBracket(r *domain.RefundCalculationResult) string {
	s := r.Category.Description()
	if r.Tier != nil {
		s += " " + r.Tier.ID() + " " + r.Tier.RangeLabel
	}
	return s
}

func eligibilityLabel(p domain.ProviderPayment) string {
	if p.Eligible {
		return "対象"
	}
	return "対象外"
}
