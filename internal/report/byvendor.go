// internal/report/byvendor.go
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mcampagna/riordino/internal/domain"
)

// SortMode controls the row order inside each vendor sheet.
type SortMode string

const (
	// SortAlphabetical orders rows by item code.
	SortAlphabetical SortMode = "alphabetical"
	// SortRelevance orders rows by urgency score, highest first, and the
	// sheets themselves by each vendor's most urgent item.
	SortRelevance SortMode = "relevance"
)

var vendorHeaders = []string{
	"Codice articolo",
	"Descrizione articolo",
	"Quantità da ordinare",
	"Pezzi collo/scatola",
	"Punto di riordino",
	"Livello target",
	"Disponibilità proiettata",
	"Giorni di copertura",
	"Punteggio rilevanza",
}

// WriteByVendor writes one sheet per vendor group. Groups below the vendor
// minimum order quantity get a warning banner above the table; an empty run
// produces a single placeholder sheet so the workbook stays valid.
func WriteByVendor(path string, out *domain.RunOutput, mode SortMode) error {
	f := excelize.NewFile()
	defer f.Close()

	if len(out.Groups) == 0 {
		if err := writeSheet(f, "Nessun_ordine", []string{"Nessun articolo da ordinare"}, nil); err != nil {
			return err
		}
		dropDefaultSheet(f)
		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("failed to save vendor workbook %s: %w", path, err)
		}
		return nil
	}

	groups := orderGroups(out.Groups, mode)
	usedNames := make(map[string]int)

	for _, g := range groups {
		sheetName := uniqueSheetName(usedNames, g.VendorID)

		items := make([]domain.ReorderResult, len(g.Items))
		copy(items, g.Items)
		if mode == SortRelevance {
			sort.Slice(items, func(i, j int) bool {
				if items[i].RelevanceScore != items[j].RelevanceScore {
					return items[i].RelevanceScore > items[j].RelevanceScore
				}
				return items[i].ItemCode < items[j].ItemCode
			})
		}

		rows := make([][]any, 0, len(items))
		for _, item := range items {
			var coverage any
			if item.HasCoverage {
				coverage = round2(item.CoverageDaysLeft)
			}
			rows = append(rows, []any{
				item.ItemCode,
				item.Description,
				item.RoundedRequirement,
				item.PackSize,
				round2(item.ReorderPoint),
				round2(item.TargetLevel),
				round2(item.ProjectedAvailable),
				coverage,
				round2(item.RelevanceScore),
			})
		}

		if err := writeSheet(f, sheetName, vendorHeaders, rows); err != nil {
			return err
		}
		if err := annotateGroup(f, sheetName, g, len(rows)); err != nil {
			return err
		}
	}
	dropDefaultSheet(f)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save vendor workbook %s: %w", path, err)
	}
	return nil
}

// annotateGroup appends the group totals under the table and flags totals
// below the vendor minimum.
func annotateGroup(f *excelize.File, sheetName string, g domain.VendorGroup, rowCount int) error {
	row := rowCount + 3
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	total := fmt.Sprintf("Totale: %d pezzi", g.TotalQty)
	if g.Currency != "" {
		total = fmt.Sprintf("%s (valuta %s)", total, g.Currency)
	}
	if err := f.SetCellValue(sheetName, cell, total); err != nil {
		return err
	}

	if g.BelowMinOrder {
		cell, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return err
		}
		warnStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "#CC0000"}})
		if err != nil {
			return err
		}
		warning := fmt.Sprintf("ATTENZIONE: totale sotto il minimo d'ordine del fornitore (MOQ %v)", g.MinOrderQty)
		if err := f.SetCellValue(sheetName, cell, warning); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, warnStyle); err != nil {
			return err
		}
	}
	return nil
}

// orderGroups keeps the engine's alphabetical group order unless relevance is
// requested, in which case vendors with the most urgent single item come
// first. The unassigned group stays last either way.
func orderGroups(groups []domain.VendorGroup, mode SortMode) []domain.VendorGroup {
	ordered := make([]domain.VendorGroup, len(groups))
	copy(ordered, groups)
	if mode != SortRelevance {
		return ordered
	}

	score := func(g domain.VendorGroup) float64 {
		best := 0.0
		for _, item := range g.Items {
			if item.RelevanceScore > best {
				best = item.RelevanceScore
			}
		}
		return best
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].VendorID == domain.UnassignedVendor {
			return false
		}
		if ordered[j].VendorID == domain.UnassignedVendor {
			return true
		}
		return score(ordered[i]) > score(ordered[j])
	})
	return ordered
}

func uniqueSheetName(used map[string]int, vendorID string) string {
	name := sanitizeSheetName(vendorID)
	used[name]++
	if n := used[name]; n > 1 {
		suffix := fmt.Sprintf(" (%d)", n)
		if runes := []rune(name); len(runes)+len(suffix) > maxSheetName {
			name = string(runes[:maxSheetName-len(suffix)])
		}
		name += suffix
	}
	return name
}
