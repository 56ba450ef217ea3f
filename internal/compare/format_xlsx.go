package compare

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "区分判定"

// XLSXFormatter writes the regime comparison as a single-sheet workbook
type XLSXFormatter struct{}

// Format generates the workbook bytes
func (xf *XLSXFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []interface{}{"期間", "細分", "基本額", "閾値", "限度額", "多数該当", "年間上限", "現行との差"}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "H1", bold); err != nil {
		return nil, err
	}

	rows := append([]ComparisonResult{*compSet.BaseResult}, compSet.AlternativeResults...)
	for i, r := range rows {
		values := []interface{}{r.Label, r.TierID, "該当なし"}
		if r.Available {
			values = []interface{}{
				r.Label,
				r.TierID,
				r.BaseAmount.IntPart(),
				r.Threshold.IntPart(),
				r.Limit.IntPart(),
				r.ManyTimesLimit.IntPart(),
				r.AnnualCap.IntPart(),
				r.LimitDiffFromBase.IntPart(),
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	notesRow := len(rows) + 3
	for i, note := range compSet.Recommendations {
		cell, err := excelize.CoordinatesToCellName(1, notesRow+i)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, note); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "B", 16); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
