package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"tabview/domain/table"
)

// Excel serializes the view as a single-sheet xlsx workbook. Numeric cells
// are written as numbers, missing cells stay blank.
func Excel(v *table.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for c, col := range v.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return nil, fmt.Errorf("write header %s: %w", col.Name, err)
		}
	}

	for r := 0; r < v.NumRows(); r++ {
		for c, col := range v.Columns {
			val := col.Cells[r]
			if val.IsMissing {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if n, isNum := val.Number(); isNum {
				err = f.SetCellValue(sheet, cell, n)
			} else {
				err = f.SetCellValue(sheet, cell, val.Render())
			}
			if err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
