package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"golang.org/x/text/width"
)

// normalizeNumber folds full-width digits, strips digit grouping and the
// given unit suffixes.
func normalizeNumber(s string, suffixes ...string) string {
	s = strings.TrimSpace(width.Narrow.String(s))
	for _, suffix := range suffixes {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// ParseIncome parses an annual income in man-yen ("600", "1,160", "６００万円").
// Empty, non-numeric, zero and negative values are rejected with ErrInvalidIncome.
func ParseIncome(s string) (money.ManYen, error) {
	raw := normalizeNumber(s, "万円", "万")
	if raw == "" {
		return money.ManYen{}, domain.NewInputError(domain.ErrInvalidIncome, "income is empty")
	}

	income, err := money.NewManYenFromString(raw)
	if err != nil {
		return money.ManYen{}, domain.NewInputError(domain.ErrInvalidIncome, fmt.Sprintf("%q is not a number", s))
	}
	if !income.IsPositive() {
		return money.ManYen{}, domain.NewInputError(domain.ErrInvalidIncome, fmt.Sprintf("%q is not positive", s))
	}
	return income, nil
}

// ParseYen parses a non-negative yen amount ("80100", "80,100円")
func ParseYen(s string) (money.Yen, error) {
	raw := normalizeNumber(s, "円")
	if raw == "" {
		return money.Yen{}, fmt.Errorf("amount is empty")
	}
	amount, err := money.NewYenFromString(raw)
	if err != nil {
		return money.Yen{}, fmt.Errorf("%q is not a yen amount", s)
	}
	if amount.IsNegative() {
		return money.Yen{}, fmt.Errorf("%q is negative", s)
	}
	return amount, nil
}

// ParsePayment parses a "label=amount" flag value. The label is optional.
func ParsePayment(s string) (domain.ProviderPayment, error) {
	label, amountStr := "", s
	if i := strings.LastIndex(s, "="); i >= 0 {
		label, amountStr = strings.TrimSpace(s[:i]), s[i+1:]
	}
	amount, err := ParseYen(amountStr)
	if err != nil {
		return domain.ProviderPayment{}, fmt.Errorf("invalid payment %q: %w", s, err)
	}
	return domain.ProviderPayment{Label: label, Amount: amount}, nil
}

// ParsePayments parses flag values and fills in missing labels
func ParsePayments(values []string) ([]domain.ProviderPayment, error) {
	out := make([]domain.ProviderPayment, 0, len(values))
	for i, v := range values {
		p, err := ParsePayment(v)
		if err != nil {
			return nil, err
		}
		if p.Label == "" {
			p.Label = DefaultPaymentLabel(i)
		}
		out = append(out, p)
	}
	return DropEmptyPayments(out), nil
}

// DropEmptyPayments removes zero-amount rows. A request whose rows are all
// zero is then reported as empty rather than as having nothing eligible.
func DropEmptyPayments(payments []domain.ProviderPayment) []domain.ProviderPayment {
	out := payments[:0:0]
	for _, p := range payments {
		if p.Amount.IsZero() {
			continue
		}
		out = append(out, p)
	}
	return out
}

var monthLayouts = []string{"2006-01", "2006/01", "2006-1", "2006/1"}

// ParseMonth parses a target month such as "2026-09". An empty string
// yields the zero time, which selects the current regime.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
}
