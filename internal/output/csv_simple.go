package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/kogaku/internal/domain"
)

// CSVSummarizer writes one row per provider payment followed by summary rows.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *domain.RefundCalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"Label", "Amount", "Eligible"}); err != nil {
		return nil, err
	}
	for _, p := range r.Payments {
		if err := w.Write([]string{p.Label, p.Amount.String(), strconv.FormatBool(p.Eligible)}); err != nil {
			return nil, err
		}
	}

	tier := ""
	if r.Tier != nil {
		tier = r.Tier.ID()
	}
	summary := [][]string{
		{},
		{"Regime", string(r.Regime)},
		{"Category", string(r.Category)},
		{"Tier", tier},
		{"ManyTimes", strconv.FormatBool(r.ManyTimes)},
		{"TotalEligibleCoPay", r.TotalEligibleCoPay.String()},
		{"TotalMedicalCost", r.TotalMedicalCost.String()},
		{"SelfPaymentLimit", r.SelfPaymentLimit.String()},
		{"Refund", r.Refund.String()},
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
