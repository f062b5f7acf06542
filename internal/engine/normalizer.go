// internal/engine/normalizer.go
package engine

import (
	"math"
	"sort"
	"strconv"

	"github.com/mcampagna/riordino/internal/domain"
)

// Normalize folds raw export rows into one ItemRecord per distinct item code.
//
// SAP exports repeat an item across rows (one per customer/document):
// shipped, incoming and committed quantities are summed; on-hand, 6-month
// average and pack size repeat per row and take the max; description and
// vendor take the first non-empty value. On-hand may legitimately be negative
// when backorders are tracked.
//
// The whole batch is rejected with a ValidationError when any row carries a
// disallowed negative quantity; periodDays must already be resolved by the
// caller and is a ConfigError when not positive.
func Normalize(rows []domain.RawRow, periodDays int) ([]domain.ItemRecord, error) {
	if periodDays <= 0 {
		return nil, &domain.ConfigError{Field: "period_days", Value: periodDays}
	}

	verr := &domain.ValidationError{}
	byCode := make(map[string]*domain.ItemRecord)

	for _, row := range rows {
		checkNonNegative(verr, row.ItemCode, "shipped_qty_period", row.ShippedQty)
		checkNonNegative(verr, row.ItemCode, "incoming_po_qty", row.IncomingPOQty)
		checkNonNegative(verr, row.ItemCode, "committed_so_qty", row.CommittedSOQty)
		checkNonNegative(verr, row.ItemCode, "avg_monthly_qty_6m", row.AvgMonthlyQty)

		rec, ok := byCode[row.ItemCode]
		if !ok {
			byCode[row.ItemCode] = &domain.ItemRecord{
				ItemCode:       row.ItemCode,
				Description:    row.Description,
				VendorID:       row.VendorID,
				PeriodDays:     periodDays,
				ShippedQty:     row.ShippedQty,
				AvgMonthlyQty:  row.AvgMonthlyQty,
				OnHandQty:      row.OnHandQty,
				IncomingPOQty:  row.IncomingPOQty,
				CommittedSOQty: row.CommittedSOQty,
				PackSize:       int(row.PackSize),
			}
			continue
		}

		rec.ShippedQty += row.ShippedQty
		rec.IncomingPOQty += row.IncomingPOQty
		rec.CommittedSOQty += row.CommittedSOQty
		rec.OnHandQty = math.Max(rec.OnHandQty, row.OnHandQty)
		rec.AvgMonthlyQty = math.Max(rec.AvgMonthlyQty, row.AvgMonthlyQty)
		if pack := int(row.PackSize); pack > rec.PackSize {
			rec.PackSize = pack
		}
		if rec.Description == "" {
			rec.Description = row.Description
		}
		if rec.VendorID == "" {
			rec.VendorID = row.VendorID
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	records := make([]domain.ItemRecord, 0, len(codes))
	for _, code := range codes {
		records = append(records, *byCode[code])
	}
	return records, nil
}

func checkNonNegative(verr *domain.ValidationError, itemCode, field string, value float64) {
	if value < 0 || math.IsNaN(value) {
		verr.Fields = append(verr.Fields, domain.FieldError{
			ItemCode: itemCode,
			Field:    field,
			Value:    strconv.FormatFloat(value, 'f', -1, 64),
			Reason:   "must be a non-negative number",
		})
	}
}
