// internal/engine/engine.go

// Package engine computes purchase-order requirements ("fabbisogno") for a
// batch of items coming from one SAP B1 sales export. It is a pure,
// synchronous computation: no I/O, no state across runs, identical inputs
// give identical outputs.
package engine

import (
	"github.com/mcampagna/riordino/internal/domain"
)

// Run executes the full per-item pipeline over a normalized batch and groups
// the outcome by vendor.
//
// A vendor lead-time override from the reference, when present, replaces the
// run-level lead time for that item before levels are computed. Parameters
// must be non-negative; a violation is a ConfigError raised before any item
// is touched.
func Run(records []domain.ItemRecord, params domain.ReorderParameters, vendorRef map[string]domain.VendorInfo) (*domain.RunOutput, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	results := make([]domain.ReorderResult, 0, len(records))
	for _, rec := range records {
		results = append(results, computeItem(rec, params, vendorRef))
	}

	return &domain.RunOutput{
		Results: results,
		Groups:  GroupByVendor(results, vendorRef),
	}, nil
}

func validateParams(params domain.ReorderParameters) error {
	if params.LeadTimeDays < 0 {
		return &domain.ConfigError{Field: "lead_time_days", Value: params.LeadTimeDays}
	}
	if params.CoverageDays < 0 {
		return &domain.ConfigError{Field: "coverage_days", Value: params.CoverageDays}
	}
	if params.SafetyDays < 0 {
		return &domain.ConfigError{Field: "safety_days", Value: params.SafetyDays}
	}
	return nil
}

func computeItem(rec domain.ItemRecord, params domain.ReorderParameters, vendorRef map[string]domain.VendorInfo) domain.ReorderResult {
	leadTime := params.LeadTimeDays
	if info, ok := vendorRef[rec.VendorID]; ok && info.HasLeadTimeOverride {
		leadTime = info.LeadTimeOverrideDays
	}

	demand := EstimateDailyDemand(rec.ShippedQty, rec.PeriodDays, rec.AvgMonthlyQty)
	rop, target := ComputeLevels(demand, leadTime, params.CoverageDays, params.SafetyDays)
	available, raw, rounded := ComputeShortfall(rec.OnHandQty, rec.IncomingPOQty, rec.CommittedSOQty, target, rec.PackSize)

	res := domain.ReorderResult{
		ItemCode:           rec.ItemCode,
		Description:        rec.Description,
		VendorID:           rec.VendorID,
		DailyDemand:        demand,
		SafetyStockQty:     demand * float64(params.SafetyDays),
		ReorderPoint:       rop,
		TargetLevel:        target,
		ProjectedAvailable: available,
		RawRequirement:     raw,
		RoundedRequirement: rounded,
		PackSize:           rec.PackSize,
	}

	if demand > 0 {
		res.HasCoverage = true
		res.CoverageDaysLeft = available / demand
	}

	// Urgency score for vendor-sheet ordering: low remaining coverage and
	// high demand push an item up. Negative coverage counts as zero.
	cov := res.CoverageDaysLeft
	if !res.HasCoverage || cov < 0 {
		cov = 0
	}
	res.RelevanceScore = demand / (cov + 1)

	return res
}
