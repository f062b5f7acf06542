// internal/domain/models.go
package domain

import "time"

// RawRow is one row of the SAP B1 sales export after header resolution,
// before per-item aggregation. Quantities are kept as parsed.
type RawRow struct {
	ItemCode       string
	Description    string
	VendorID       string
	ShippedQty     float64
	OnHandQty      float64
	IncomingPOQty  float64
	CommittedSOQty float64
	AvgMonthlyQty  float64
	PackSize       float64
}

// ItemRecord is the canonical per-item aggregate consumed by the engine,
// one per distinct item code.
type ItemRecord struct {
	ItemCode       string  `json:"item_code"`
	Description    string  `json:"description"`
	VendorID       string  `json:"vendor_id"`
	PeriodDays     int     `json:"period_days"`
	ShippedQty     float64 `json:"shipped_qty_period"`
	AvgMonthlyQty  float64 `json:"avg_monthly_qty_6m"`
	OnHandQty      float64 `json:"on_hand_qty"`
	IncomingPOQty  float64 `json:"incoming_po_qty"`
	CommittedSOQty float64 `json:"committed_so_qty"`
	PackSize       int     `json:"pack_size"`
}

// ReorderParameters is the run-level configuration for one computation.
type ReorderParameters struct {
	LeadTimeDays int `json:"lead_time_days"`
	CoverageDays int `json:"coverage_days"`
	SafetyDays   int `json:"safety_days"`
}

// VendorInfo is one entry of the optional vendor reference file.
type VendorInfo struct {
	VendorID             string  `json:"vendor_id"`
	VendorCode           string  `json:"vendor_code"`
	MinOrderQty          float64 `json:"min_order_qty"`
	LeadTimeOverrideDays int     `json:"lead_time_override_days"`
	HasLeadTimeOverride  bool    `json:"has_lead_time_override"`
	Currency             string  `json:"currency"`
}

// ReorderResult is the engine output for one item.
type ReorderResult struct {
	ItemCode           string  `json:"item_code"`
	Description        string  `json:"description"`
	VendorID           string  `json:"vendor_id"`
	DailyDemand        float64 `json:"daily_demand"`
	SafetyStockQty     float64 `json:"safety_stock_qty"`
	ReorderPoint       float64 `json:"reorder_point"`
	TargetLevel        float64 `json:"target_level"`
	ProjectedAvailable float64 `json:"projected_available"`
	RawRequirement     float64 `json:"raw_requirement"`
	RoundedRequirement int     `json:"rounded_requirement"`
	PackSize           int     `json:"pack_size"`
	// CoverageDaysLeft is projected availability expressed in days of demand.
	// Valid only when HasCoverage is true (daily demand above zero).
	CoverageDaysLeft float64 `json:"coverage_days_left"`
	HasCoverage      bool    `json:"has_coverage"`
	RelevanceScore   float64 `json:"relevance_score"`
}

// UnassignedVendor is the group key for items whose export row carries no
// vendor. They are surfaced separately, never dropped.
const UnassignedVendor = "unassigned"

// VendorGroup is one vendor's slice of results with requirement > 0 plus the
// reference metadata attached to it. The engine never inflates quantities to
// meet MinOrderQty; BelowMinOrder is informational for the reporting layer.
type VendorGroup struct {
	VendorID      string          `json:"vendor_id"`
	VendorCode    string          `json:"vendor_code"`
	Currency      string          `json:"currency"`
	MinOrderQty   float64         `json:"min_order_qty"`
	TotalQty      int             `json:"total_qty"`
	BelowMinOrder bool            `json:"below_min_order"`
	Items         []ReorderResult `json:"items"`
}

// RunOutput is the full engine output for one uploaded file: the flat result
// sequence plus the vendor partition of rows to order.
type RunOutput struct {
	Results []ReorderResult `json:"results"`
	Groups  []VendorGroup   `json:"groups"`
}

// UploadedFile represents an uploaded export saved for processing.
type UploadedFile struct {
	Filename string
	Path     string
	Size     int64
}

// RunSummary describes one processed file for the caller.
type RunSummary struct {
	RunID          string    `json:"run_id"`
	Filename       string    `json:"filename"`
	PeriodDays     int       `json:"period_days"`
	PeriodFromName bool      `json:"period_from_name"`
	TotalItems     int       `json:"total_items"`
	ItemsToOrder   int       `json:"items_to_order"`
	TotalQty       int       `json:"total_qty_to_order"`
	Vendors        int       `json:"vendors"`
	AnalysisPath   string    `json:"analysis_path"`
	ByVendorPath   string    `json:"by_vendor_path"`
	ProcessedAt    time.Time `json:"processed_at"`
}
