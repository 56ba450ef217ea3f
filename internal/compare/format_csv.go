package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Regime",
		"Type",
		"Category",
		"Available",
		"Tier",
		"Range",
		"Base Amount",
		"Threshold",
		"Rate",
		"Limit",
		"Many Times Limit",
		"Annual Cap",
		"Limit Diff from Current",
		"Limit % Change",
		"Many Times Diff from Current",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet, compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(compSet, &compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(compSet *ComparisonSet, result *ComparisonResult, rowType string) []string {
	if !result.Available {
		return []string{string(result.Regime), rowType, string(compSet.Category), "false",
			"", "", "", "", "", "", "", "", "", "", ""}
	}
	return []string{
		string(result.Regime),
		rowType,
		string(compSet.Category),
		"true",
		result.TierID,
		result.RangeLabel,
		result.BaseAmount.String(),
		result.Threshold.String(),
		result.Rate.String(),
		result.Limit.String(),
		result.ManyTimesLimit.String(),
		result.AnnualCap.String(),
		result.LimitDiffFromBase.String(),
		result.LimitPctFromBase.StringFixed(2),
		result.ManyTimesDiffFromBase.String(),
	}
}
