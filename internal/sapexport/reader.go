// internal/sapexport/reader.go

// Package sapexport reads SAP Business One sales exports (.xlsx) into the raw
// rows the reorder engine consumes. Header variants are resolved against a
// static synonym table at this boundary; the engine itself only ever sees
// canonical fields.
package sapexport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mcampagna/riordino/internal/domain"
)

// ReadFile opens an xlsx export and returns its raw rows.
func ReadFile(path string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var (
		out     []domain.RawRow
		indexes map[string]int
		verr    = &domain.ValidationError{}
	)

	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		if indexes == nil {
			indexes = resolveHeaders(record)
			if _, ok := indexes[colItemCode]; !ok {
				return nil, fmt.Errorf("no item code column recognized in %s (headers: %v)", path, record)
			}
			continue
		}

		itemCode := strings.TrimSpace(cellAt(record, indexes, colItemCode))
		if itemCode == "" {
			continue // trailing summary or blank row
		}

		row := domain.RawRow{
			ItemCode:    itemCode,
			Description: strings.TrimSpace(cellAt(record, indexes, colDescription)),
			VendorID:    strings.TrimSpace(cellAt(record, indexes, colVendor)),
		}
		row.ShippedQty = numericAt(verr, record, indexes, itemCode, colShipped)
		row.IncomingPOQty = numericAt(verr, record, indexes, itemCode, colIncoming)
		row.CommittedSOQty = numericAt(verr, record, indexes, itemCode, colCommitted)
		row.OnHandQty = numericAt(verr, record, indexes, itemCode, colOnHand)
		row.AvgMonthlyQty = numericAt(verr, record, indexes, itemCode, colAvg6m)
		row.PackSize = numericAt(verr, record, indexes, itemCode, colPackSize)

		out = append(out, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	if indexes == nil {
		return nil, fmt.Errorf("xlsx file %s is empty", path)
	}
	return out, nil
}

func cellAt(record []string, indexes map[string]int, column string) string {
	i, ok := indexes[column]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// numericAt parses a quantity cell. Empty cells count as zero, the way SAP
// leaves untouched quantities blank. Unparseable values are collected on the
// batch validation error instead of failing row by row.
func numericAt(verr *domain.ValidationError, record []string, indexes map[string]int, itemCode, column string) float64 {
	raw := strings.TrimSpace(cellAt(record, indexes, column))
	if raw == "" {
		return 0
	}

	// Italian locale exports use comma decimals and dot thousand separators.
	cleaned := raw
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		verr.Fields = append(verr.Fields, domain.FieldError{
			ItemCode: itemCode,
			Field:    column,
			Value:    raw,
			Reason:   "is not numeric",
		})
		return 0
	}
	return value
}
