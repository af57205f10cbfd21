package export

import (
	"time"

	"github.com/xuri/excelize/v2"
)

// RenderExcel renders the same flat row set as a styled workbook, for
// users who want the export directly in a spreadsheet.
func RenderExcel(title string, rs RowSet) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Vessel Data"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", "Generated: "+time.Now().Format("2006-01-02 15:04:05"))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	// Headers on row 4, data below
	for colIdx, col := range rs.Columns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		letter := columnIndexToLetter(colIdx + 1)
		f.SetColWidth(sheetName, letter, letter, 20)
	}

	for rowIdx, row := range rs.Rows {
		for colIdx, col := range rs.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			if v := row[col]; v != nil {
				f.SetCellValue(sheetName, cell, v)
			}
		}
	}

	f.DeleteSheet("Sheet1")

	return f, nil
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
