package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/kogaku/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxPaymentsSheet = "払い戻し"
	xlsxNotesSheet    = "注意事項"
)

var xlsxPaymentHeader = []string{"医療機関", "支払額", "合算"}

// XLSXFormatter writes the refund report as an Excel workbook: an itemized
// payments sheet with the summary below it, and a notes sheet.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(r *domain.RefundCalculationResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxPaymentsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FBEDF4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "A14774", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	yenFormat := "#,##0\"円\""
	yenStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &yenFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}

	if err := f.SetSheetRow(xlsxPaymentsSheet, "A1", &xlsxPaymentHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxPaymentsSheet, "A1", "C1", headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, p := range r.Payments {
		values := []interface{}{p.Label, p.Amount.IntPart(), eligibilityLabel(p)}
		if err := setRow(f, xlsxPaymentsSheet, row, values); err != nil {
			return nil, err
		}
		row++
	}
	if len(r.Payments) > 0 {
		if err := f.SetCellStyle(xlsxPaymentsSheet, "B2", fmt.Sprintf("B%d", row-1), yenStyle); err != nil {
			return nil, err
		}
	}

	row++
	summary := [][]interface{}{
		{"適用期間", r.Regime.Label()},
		{"対象月", FormatMonth(r)},
		{"所得区分", FormatBracket(r)},
		{"合算対象の支払額", r.TotalEligibleCoPay.IntPart()},
		{"総医療費（10割・推計）", r.TotalMedicalCost.IntPart()},
		{"自己負担限度額（目安）", r.SelfPaymentLimit.IntPart()},
		{"計算式", FormatFormula(r)},
		{"払い戻し額（目安）", r.Refund.IntPart()},
	}
	for _, values := range summary {
		if err := setRow(f, xlsxPaymentsSheet, row, values); err != nil {
			return nil, err
		}
		if _, isAmount := values[1].(int64); isAmount {
			cell := fmt.Sprintf("B%d", row)
			if err := f.SetCellStyle(xlsxPaymentsSheet, cell, cell, yenStyle); err != nil {
				return nil, err
			}
		}
		row++
	}

	if err := f.SetColWidth(xlsxPaymentsSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxPaymentsSheet, "B", "B", 40); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(xlsxNotesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	for i, note := range RefundNotes(r) {
		if err := setRow(f, xlsxNotesSheet, i+1, []interface{}{note}); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(xlsxNotesSheet, "A", "A", 120); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
