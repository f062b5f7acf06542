// internal/report/report.go

// Package report renders the engine output into the two Excel workbooks
// buyers download: the full analysis workbook and the per-vendor order
// workbook, plus shared sheet-writing helpers.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Excel sheet names are capped at 31 characters.
const maxSheetName = 31

var sheetNameSanitizer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ",
)

// sanitizeSheetName makes a vendor name usable as an Excel sheet name. The
// 31-character cap counts characters, not bytes, so accented names truncate
// on rune boundaries.
func sanitizeSheetName(name string) string {
	name = strings.TrimSpace(sheetNameSanitizer.Replace(name))
	if name == "" {
		name = "Senza_nome"
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

// writeSheet creates a sheet with a styled header row and the given data
// rows, then sizes the columns.
func writeSheet(f *excelize.File, sheetName string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if value == nil {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, 18); err != nil {
			return err
		}
	}
	return nil
}

// dropDefaultSheet removes the workbook's initial sheet once real sheets
// exist.
func dropDefaultSheet(f *excelize.File) {
	if name := f.GetSheetName(0); name == "Sheet1" || name == "Foglio1" {
		if len(f.GetSheetList()) > 1 {
			_ = f.DeleteSheet(name)
		}
	}
}
