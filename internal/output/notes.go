package output

import (
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/domain"
)

// Fixed notes rendered under every refund report.
var (
	NoteAggregationRule = "同一月内（1日〜末日）で21,000円以上支払った医療機関のみが合算対象です。21,000円未満の支払いは自動的に計算から除外されます。"
	NoteSupplementary   = "付加給付制度：一部の健康保険組合では、法定の自己負担限度額よりもさらに低い独自の上限額を設定している場合があります（付加給付）。詳しくは加入している健康保険組合にお問い合わせください。"
	NoteLiabilityRate   = "総医療費は支払額を3割負担とみなして逆算しています。2割・1割負担の方は実際の総医療費と異なります。"
)

// RefundNotes returns the advisory notes for a refund result, most specific first.
func RefundNotes(r *domain.RefundCalculationResult) []string {
	notes := []string{}

	if r.HasRefund() {
		notes = append(notes,
			"この金額はあくまで概算です。実際の払い戻し額は、加入している医療保険による審査後に確定します。",
			"払い戻しには申請が必要です。限度額適用認定証を事前に医療機関に提示していた場合は、窓口での支払い時点で自己負担限度額までとなります。")
	} else {
		notes = append(notes, "合算対象の支払額が自己負担限度額以下のため、払い戻しの可能性は低いと思われます。")
	}

	if n := len(r.IneligiblePayments()); n > 0 {
		notes = append(notes, fmt.Sprintf("%d件の支払いが21,000円未満のため合算対象外です。", n))
	}
	notes = append(notes, NoteAggregationRule)

	if r.ManyTimes {
		notes = append(notes, "多数該当：直近12ヶ月で3ヶ月以上高額療養費の支給を受けた場合、4ヶ月目以降は自己負担限度額が引き下げられます。")
	}
	if r.Regime != domain.RegimeCurrent && r.Regime != "" {
		notes = append(notes, fmt.Sprintf("%sの見直し後の限度額で計算しています。", r.Regime.Label()))
	}
	if r.Parameters.HasAnnualCap() {
		notes = append(notes, fmt.Sprintf("年間の自己負担上限は%sです。", FormatYen(r.Parameters.AnnualCap)))
	}

	notes = append(notes, NoteLiabilityRate, NoteSupplementary)
	return notes
}
