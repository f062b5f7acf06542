// internal/report/analysis.go
package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/mcampagna/riordino/internal/domain"
)

// Sheet names of the analysis workbook, matching the layout buyers already
// know from the previous tooling.
const (
	sheetSuggestedOrders = "Ordini_suggeriti"
	sheetFullDetail      = "Dettaglio_calcoli"
	sheetVendorSummary   = "Riepilogo_fornitori"
	sheetNearReorder     = "Vicini_riordino"
	sheetExceptions      = "Eccezioni"
)

var detailHeaders = []string{
	"Codice articolo",
	"Descrizione articolo",
	"Fornitore",
	"Quantità da ordinare",
	"Quantità spedita (periodo)",
	"Quantità ordinata ai fornitori",
	"Quantità ordinata dai clienti",
	"Giacenza totale",
	"Media vendite 6 mesi",
	"Pezzi collo/scatola",
	"Domanda giornaliera",
	"Scorta di sicurezza",
	"Punto di riordino",
	"Livello target",
	"Disponibilità proiettata",
	"Giorni di copertura",
	"Punteggio rilevanza",
}

var summaryHeaders = []string{
	"Fornitore",
	"Codice fornitore",
	"Numero articoli",
	"Quantità totale da ordinare",
	"MOQ",
	"Sotto MOQ",
	"Valuta",
}

// WriteAnalysis writes the full analysis workbook: suggested orders, the
// complete per-item audit detail, the vendor summary, items close to their
// reorder point and the exception list. Records and results are parallel
// slices, both ordered by item code as the engine emits them.
func WriteAnalysis(path string, records []domain.ItemRecord, out *domain.RunOutput) error {
	if len(records) != len(out.Results) {
		return fmt.Errorf("records/results length mismatch: %d vs %d", len(records), len(out.Results))
	}

	f := excelize.NewFile()
	defer f.Close()

	var suggested, detail, near, exceptions [][]any
	for i, res := range out.Results {
		row := detailRow(records[i], res)
		detail = append(detail, row)
		if res.RoundedRequirement > 0 {
			suggested = append(suggested, row)
		}
		if res.ProjectedAvailable < res.ReorderPoint {
			near = append(near, row)
		}
		if res.DailyDemand <= 0 || res.PackSize <= 0 {
			exceptions = append(exceptions, row)
		}
	}

	var summary [][]any
	for _, g := range out.Groups {
		summary = append(summary, []any{
			g.VendorID,
			g.VendorCode,
			len(g.Items),
			g.TotalQty,
			moqCell(g),
			belowMOQCell(g),
			g.Currency,
		})
	}

	if err := writeSheet(f, sheetSuggestedOrders, detailHeaders, suggested); err != nil {
		return err
	}
	if err := writeSheet(f, sheetFullDetail, detailHeaders, detail); err != nil {
		return err
	}
	if err := writeSheet(f, sheetVendorSummary, summaryHeaders, summary); err != nil {
		return err
	}
	if err := writeSheet(f, sheetNearReorder, detailHeaders, near); err != nil {
		return err
	}
	if err := writeSheet(f, sheetExceptions, detailHeaders, exceptions); err != nil {
		return err
	}
	dropDefaultSheet(f)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save analysis workbook %s: %w", path, err)
	}
	return nil
}

func detailRow(rec domain.ItemRecord, res domain.ReorderResult) []any {
	var coverage any
	if res.HasCoverage {
		coverage = round2(res.CoverageDaysLeft)
	}
	return []any{
		res.ItemCode,
		res.Description,
		res.VendorID,
		res.RoundedRequirement,
		rec.ShippedQty,
		rec.IncomingPOQty,
		rec.CommittedSOQty,
		rec.OnHandQty,
		rec.AvgMonthlyQty,
		rec.PackSize,
		round2(res.DailyDemand),
		round2(res.SafetyStockQty),
		round2(res.ReorderPoint),
		round2(res.TargetLevel),
		round2(res.ProjectedAvailable),
		coverage,
		round2(res.RelevanceScore),
	}
}

func moqCell(g domain.VendorGroup) any {
	if g.MinOrderQty <= 0 {
		return nil
	}
	return g.MinOrderQty
}

func belowMOQCell(g domain.VendorGroup) any {
	if g.BelowMinOrder {
		return "SI"
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
