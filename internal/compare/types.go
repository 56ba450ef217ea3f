package compare

import (
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one regime's ceilings with deltas against the current regime
type ComparisonResult struct {
	Regime        domain.Regime `json:"regime"`
	Label         string        `json:"label"`
	EffectiveFrom string        `json:"effectiveFrom,omitempty"`
	Available     bool          `json:"available"`
	TierID        string        `json:"tierId,omitempty"`
	RangeLabel    string        `json:"rangeLabel,omitempty"`

	// Key Metrics
	BaseAmount     money.Yen       `json:"baseAmount"`
	Threshold      money.Yen       `json:"threshold"`
	Rate           decimal.Decimal `json:"rate"`
	Limit          money.Yen       `json:"limit"`
	ManyTimesLimit money.Yen       `json:"manyTimesLimit"`
	AnnualCap      money.Yen       `json:"annualCap"`

	// Comparison to Base
	LimitDiffFromBase     money.Yen       `json:"limitDiffFromBase"`
	LimitPctFromBase      decimal.Decimal `json:"limitPctFromBase"`
	ManyTimesDiffFromBase money.Yen       `json:"manyTimesDiffFromBase"`
}

// ComparisonSet is the side-by-side view of one household across regimes
type ComparisonSet struct {
	Income           *money.ManYen       `json:"income,omitempty"`
	Category         domain.CategoryCode `json:"category"`
	CategoryLabel    string              `json:"categoryLabel"`
	TotalMedicalCost money.Yen           `json:"totalMedicalCost"`

	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	TablesSource       string             `json:"tablesSource,omitempty"`
}

// MetricsCalculator extracts display metrics from regime rows
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics converts a regime row into a comparison result
func (mc *MetricsCalculator) CalculateMetrics(row domain.RegimeLimit) ComparisonResult {
	result := ComparisonResult{
		Regime:    row.Regime,
		Label:     row.Regime.Label(),
		Available: row.Available,
	}
	if !row.EffectiveFrom.IsZero() {
		result.EffectiveFrom = row.EffectiveFrom.Format("2006-01-02")
	}
	if !row.Available {
		return result
	}

	result.BaseAmount = row.Parameters.BaseAmount
	result.Threshold = row.Parameters.Threshold
	result.Rate = row.Parameters.Rate
	result.Limit = row.Limit
	result.ManyTimesLimit = row.ManyTimesLimit
	result.AnnualCap = row.AnnualCap
	if row.Tier != nil {
		result.TierID = row.Tier.ID()
		result.RangeLabel = row.Tier.RangeLabel
	}
	return result
}

// CalculateComparison fills the deltas of result against base. Nothing is
// computed when either side has no published parameters.
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	if !result.Available || !base.Available {
		return result
	}

	result.LimitDiffFromBase = result.Limit.Sub(base.Limit)
	if !base.Limit.IsZero() {
		result.LimitPctFromBase = result.LimitDiffFromBase.Decimal.
			Div(base.Limit.Decimal).
			Mul(decimal.NewFromInt(100))
	}
	result.ManyTimesDiffFromBase = result.ManyTimesLimit.Sub(base.ManyTimesLimit)
	return result
}

// GenerateRecommendations produces the advisory notes shown under a
// category judgement.
func GenerateRecommendations(set *ComparisonSet) []string {
	notes := []string{}
	base := set.BaseResult

	if base != nil && base.Available {
		if base.Rate.IsPositive() {
			notes = append(notes, fmt.Sprintf(
				"総医療費が%s円を超えた場合、超過分の1%%が加算されます（%s円 + (総医療費 - %s円) × 1%%）。",
				base.Threshold.Format(), base.BaseAmount.Format(), base.Threshold.Format()))
		} else {
			notes = append(notes, fmt.Sprintf("区分%sの自己負担限度額は一律%s円です。",
				set.Category.Label(), base.BaseAmount.Format()))
		}
		notes = append(notes, fmt.Sprintf(
			"多数該当（過去12ヶ月で3回以上高額療養費を利用）の場合は%s円に軽減されます。",
			base.ManyTimesLimit.Format()))
	}

	var largest *ComparisonResult
	for i := range set.AlternativeResults {
		alt := &set.AlternativeResults[i]
		if !alt.Available {
			notes = append(notes, fmt.Sprintf("%sは区分%sの限度額が公表されていません。", alt.Label, set.Category.Label()))
			continue
		}
		if largest == nil || alt.LimitDiffFromBase.GreaterThan(largest.LimitDiffFromBase) {
			largest = alt
		}
	}
	if largest != nil && largest.LimitDiffFromBase.IsPositive() {
		notes = append(notes, fmt.Sprintf("%sの限度額は現行より%s円（%s%%）高くなります。",
			largest.Label, largest.LimitDiffFromBase.Format(), largest.LimitPctFromBase.StringFixed(1)))
	}
	for _, alt := range set.AlternativeResults {
		if alt.Available && alt.AnnualCap.IsPositive() {
			notes = append(notes, fmt.Sprintf("%sから年間上限%s円が設けられます。", alt.Label, alt.AnnualCap.Format()))
			break
		}
	}

	if set.Category == domain.CategoryDLow && set.Income != nil && set.Income.LessThan(residenceTaxReliefIncome) {
		notes = append(notes, "年度途中に失業や疾病などで収入が大幅に減った場合、お住まいの市区町村に住民税の減免申請ができる場合があります。減免は申請日以降の分が対象となるため、早めにご相談ください。")
	}

	notes = append(notes, "この判定はあくまで目安です。実際の区分は標準報酬月額や課税所得などをもとに加入している保険者が決定します。")
	return notes
}

var residenceTaxReliefIncome = money.NewManYenFromInt(250)
