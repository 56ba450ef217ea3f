package domain

import (
	"time"

	"github.com/rgehrsitz/kogaku/pkg/money"
)

// ProviderPayment is one co-payment made at a single provider within the
// target month. Amount is what the patient actually paid, assumed to be the
// 30% share. Eligible is filled in by the refund engine.
type ProviderPayment struct {
	Label    string    `yaml:"label" json:"label"`
	Amount   money.Yen `yaml:"amount" json:"amount"`
	Eligible bool      `yaml:"-" json:"eligible"`
}

// RefundRequest carries everything an adapter collects for a refund estimate
type RefundRequest struct {
	Category CategoryCode `yaml:"category" json:"category"`
	// Income is only needed to pick the 2027-08 income tier.
	Income      *money.ManYen     `yaml:"income,omitempty" json:"income,omitempty"`
	TargetMonth time.Time         `yaml:"-" json:"targetMonth"`
	ManyTimes   bool              `yaml:"many_times" json:"manyTimes"`
	Payments    []ProviderPayment `yaml:"payments" json:"payments"`
	// CategoryFromIncome is set when Category was classified from Income
	// rather than named explicitly.
	CategoryFromIncome bool `yaml:"-" json:"-"`
}

// RefundCalculationResult is the outcome of one refund estimate. It is a
// plain return value; nothing is retained between calls.
type RefundCalculationResult struct {
	Regime      Regime             `json:"regime"`
	Category    CategoryCode       `json:"category"`
	Tier        *IncomeTier        `json:"tier,omitempty"`
	Parameters  CategoryParameters `json:"parameters"`
	TargetMonth time.Time          `json:"targetMonth"`

	// Payments is the full itemization, including ineligible rows.
	Payments []ProviderPayment `json:"payments"`

	TotalEligibleCoPay money.Yen `json:"totalEligibleCoPay"`
	TotalMedicalCost   money.Yen `json:"totalMedicalCost"`
	SelfPaymentLimit   money.Yen `json:"selfPaymentLimit"`
	ManyTimes          bool      `json:"manyTimes"`
	Refund             money.Yen `json:"refund"`
}

// EligiblePayments returns the rows included in the aggregate
func (r *RefundCalculationResult) EligiblePayments() []ProviderPayment {
	var out []ProviderPayment
	for _, p := range r.Payments {
		if p.Eligible {
			out = append(out, p)
		}
	}
	return out
}

// IneligiblePayments returns the rows excluded for being below the minimum
func (r *RefundCalculationResult) IneligiblePayments() []ProviderPayment {
	var out []ProviderPayment
	for _, p := range r.Payments {
		if !p.Eligible {
			out = append(out, p)
		}
	}
	return out
}

// HasRefund reports whether any reimbursement is expected
func (r *RefundCalculationResult) HasRefund() bool {
	return r.Refund.IsPositive()
}
