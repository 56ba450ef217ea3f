package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/kogaku/internal/calculation"
	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/rgehrsitz/kogaku/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult(t *testing.T) *domain.RefundCalculationResult {
	t.Helper()
	income := money.NewManYenFromInt(600)
	result, err := calculation.NewEngine().Estimate(domain.RefundRequest{
		Category:    domain.CategoryC,
		Income:      &income,
		TargetMonth: time.Date(2027, time.October, 1, 0, 0, 0, 0, time.UTC),
		Payments: []domain.ProviderPayment{
			{Label: "市民病院", Amount: money.NewYen(150000)},
			{Label: "薬局", Amount: money.NewYen(8000)},
		},
	})
	require.NoError(t, err)
	return result
}

func noRefundResult(t *testing.T) *domain.RefundCalculationResult {
	t.Helper()
	result, err := calculation.NewEngine().ComputeRefund(domain.CategoryC, []domain.ProviderPayment{
		{Label: "clinic", Amount: money.NewYen(50000)},
	}, false)
	require.NoError(t, err)
	return result
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json", "xlsx"}, AvailableFormatterNames())

	for _, name := range []string{"console", "TEXT", "excel", " json-pretty ", "html-report", "csv"} {
		assert.NotNil(t, GetFormatterByName(name), name)
	}
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, "xlsx", NormalizeFormatName("Excel"))
	assert.Contains(t, AvailableFormatAliases(), "table")
	assert.True(t, IsBinary(XLSXFormatter{}))
	assert.False(t, IsBinary(JSONFormatter{}))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "refund-only", F: func(r *domain.RefundCalculationResult) ([]byte, error) {
		return []byte(r.Refund.String()), nil
	}}
	data, err := f.Format(sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, "50170", string(data))
	assert.Equal(t, "refund-only", f.Name())
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "払い戻し目安：約50,170円")
	assert.Contains(t, out, "21,000円未満のため合算対象外です")
	assert.Contains(t, out, "2027年8月〜")
	assert.Contains(t, out, "2027年10月")
	assert.Contains(t, out, "C2 約510〜650万円")
	assert.Contains(t, out, "98,100円 + (500,000円 - 327,000円) × 1%")
	assert.Contains(t, out, "【重要な注意事項】")

	data, err = ConsoleFormatter{}.Format(noRefundResult(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), "払い戻しの対象外")
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2027-08", decoded["regime"])
	assert.Equal(t, "50170", decoded["refund"])
	assert.Equal(t, "500000", decoded["totalMedicalCost"])
	assert.Equal(t, "2027-10", decoded["targetMonth"])
	notes, ok := decoded["notes"].([]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, notes)

	data, err = JSONFormatter{}.Format(noRefundResult(t))
	require.NoError(t, err)
	decoded = nil
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "targetMonth", "no month was given")
	params, ok := decoded["parameters"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, params, "annualCap")
}

func TestCSVSummarizer(t *testing.T) {
	data, err := CSVSummarizer{}.Format(sampleResult(t))
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"市民病院", "150000", "true"}, records[1])
	assert.Equal(t, []string{"薬局", "8000", "false"}, records[2])
	assert.Contains(t, records, []string{"Tier", "C2"})
	assert.Contains(t, records, []string{"Refund", "50170"})
}

func TestHTMLFormatter(t *testing.T) {
	data, err := HTMLFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "払い戻し目安：約50,170円")
	assert.Contains(t, out, `class="excluded"`)
	assert.Contains(t, out, NoteAggregationRule)
}

func TestXLSXFormatter(t *testing.T) {
	data, err := XLSXFormatter{}.Format(sampleResult(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsxPaymentsSheet, xlsxNotesSheet}, f.GetSheetList())

	label, err := f.GetCellValue(xlsxPaymentsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "市民病院", label)

	eligible, err := f.GetCellValue(xlsxPaymentsSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "対象外", eligible)

	rows, err := f.GetRows(xlsxPaymentsSheet)
	require.NoError(t, err)
	last := rows[len(rows)-1]
	assert.Equal(t, "払い戻し額（目安）", last[0])

	note, err := f.GetCellValue(xlsxNotesSheet, "A1")
	require.NoError(t, err)
	assert.NotEmpty(t, note)
}

func TestRefundNotes(t *testing.T) {
	notes := RefundNotes(sampleResult(t))
	assert.Contains(t, notes, NoteAggregationRule)
	assert.Contains(t, notes, NoteSupplementary)
	assert.Contains(t, notes, "1件の支払いが21,000円未満のため合算対象外です。")
	assert.Contains(t, notes, "2027年8月〜の見直し後の限度額で計算しています。")
	assert.Contains(t, notes, "年間の自己負担上限は530,000円です。")

	none := RefundNotes(noRefundResult(t))
	assert.Contains(t, none, "合算対象の支払額が自己負担限度額以下のため、払い戻しの可能性は低いと思われます。")
}

func TestGenerateReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateReport(sampleResult(t), "csv", &buf))
	assert.Contains(t, buf.String(), "Refund,50170")

	err := GenerateReport(sampleResult(t), "xlsx", &buf)
	assert.Error(t, err)

	err = GenerateReport(sampleResult(t), "pdf", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestWriteFormatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refund.html")
	written, err := WriteFormatted(HTMLFormatter{}, sampleResult(t), path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "80,100円", FormatYen(money.NewYen(80100)))
	assert.Equal(t, "1%", FormatPercentage(calculation.DefaultTablesDocument().Regimes[0].Categories[domain.CategoryC].Rate))

	r := noRefundResult(t)
	assert.Equal(t, "-", FormatMonth(r))
	assert.Equal(t, "ウ（年収約370万円〜770万円）", FormatBracket(r))

	r.ManyTimes = true
	assert.Equal(t, "多数該当 44,400円", FormatFormula(r))
}
