package engine

import (
	"reflect"
	"testing"

	"github.com/mcampagna/riordino/internal/domain"
)

func testParams() domain.ReorderParameters {
	return domain.ReorderParameters{LeadTimeDays: 7, CoverageDays: 14, SafetyDays: 3}
}

func TestRun_SingleItemEndToEnd(t *testing.T) {
	records := []domain.ItemRecord{
		{
			ItemCode:       "A100",
			VendorID:       "ACME",
			PeriodDays:     30,
			ShippedQty:     300,
			AvgMonthlyQty:  200,
			OnHandQty:      50,
			IncomingPOQty:  20,
			CommittedSOQty: 30,
			PackSize:       25,
		},
	}

	out, err := Run(records, testParams(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out.Results))
	}

	res := out.Results[0]
	if res.DailyDemand != 10 {
		t.Errorf("expected daily demand 10, got %v", res.DailyDemand)
	}
	if res.ReorderPoint != 100 {
		t.Errorf("expected reorder point 100, got %v", res.ReorderPoint)
	}
	if res.TargetLevel != 240 {
		t.Errorf("expected target level 240, got %v", res.TargetLevel)
	}
	if res.ProjectedAvailable != 40 {
		t.Errorf("expected projected available 40, got %v", res.ProjectedAvailable)
	}
	if res.RoundedRequirement != 200 {
		t.Errorf("expected rounded requirement 200, got %d", res.RoundedRequirement)
	}
	if !res.HasCoverage || res.CoverageDaysLeft != 4 {
		t.Errorf("expected 4 days of remaining coverage, got %v (has=%v)", res.CoverageDaysLeft, res.HasCoverage)
	}
	if res.RelevanceScore != 2 {
		t.Errorf("expected relevance 10/(4+1)=2, got %v", res.RelevanceScore)
	}

	if len(out.Groups) != 1 || out.Groups[0].VendorID != "ACME" {
		t.Fatalf("expected one ACME group, got %+v", out.Groups)
	}
	if out.Groups[0].TotalQty != 200 {
		t.Errorf("expected group total 200, got %d", out.Groups[0].TotalQty)
	}
}

func TestRun_VendorLeadTimeOverrideAppliedBeforeLevels(t *testing.T) {
	records := []domain.ItemRecord{
		{ItemCode: "A100", VendorID: "SLOW", PeriodDays: 30, ShippedQty: 300},
	}
	vendorRef := map[string]domain.VendorInfo{
		"SLOW": {VendorID: "SLOW", LeadTimeOverrideDays: 21, HasLeadTimeOverride: true},
	}

	out, err := Run(records, testParams(), vendorRef)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	res := out.Results[0]
	// lead time 21 replaces the run-level 7: rop = 10*(21+3), target = 10*(21+14+3)
	if res.ReorderPoint != 240 {
		t.Errorf("expected reorder point 240 with override, got %v", res.ReorderPoint)
	}
	if res.TargetLevel != 380 {
		t.Errorf("expected target level 380 with override, got %v", res.TargetLevel)
	}
}

func TestRun_ZeroLeadTime(t *testing.T) {
	records := []domain.ItemRecord{
		{ItemCode: "A100", PeriodDays: 30, ShippedQty: 300},
	}
	params := domain.ReorderParameters{LeadTimeDays: 0, CoverageDays: 14, SafetyDays: 0}

	out, err := Run(records, params, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	res := out.Results[0]
	if res.ReorderPoint != 0 {
		t.Errorf("zero lead time and safety: reorder point must be 0, got %v", res.ReorderPoint)
	}
	if res.TargetLevel != 140 {
		t.Errorf("expected target 140, got %v", res.TargetLevel)
	}
}

func TestRun_RejectsNegativeParameters(t *testing.T) {
	cases := []domain.ReorderParameters{
		{LeadTimeDays: -1},
		{CoverageDays: -1},
		{SafetyDays: -1},
	}
	for _, params := range cases {
		_, err := Run([]domain.ItemRecord{{ItemCode: "A", PeriodDays: 30}}, params, nil)
		if err == nil {
			t.Fatalf("params %+v: expected config error", params)
		}
		if !domain.IsConfigError(err) {
			t.Errorf("params %+v: expected ConfigError, got %T", params, err)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	records := []domain.ItemRecord{
		{ItemCode: "A100", VendorID: "ACME", PeriodDays: 30, ShippedQty: 120, OnHandQty: 10, PackSize: 6},
		{ItemCode: "B200", PeriodDays: 30, AvgMonthlyQty: 90, OnHandQty: -5},
	}
	vendorRef := map[string]domain.VendorInfo{
		"ACME": {VendorID: "ACME", VendorCode: "F001", MinOrderQty: 500, Currency: "EUR"},
	}

	first, err := Run(records, testParams(), vendorRef)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := Run(records, testParams(), vendorRef)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must give identical outputs")
	}
}

func TestGroupByVendor_PartitionsOnlyPositiveRequirements(t *testing.T) {
	results := []domain.ReorderResult{
		{ItemCode: "A1", VendorID: "ACME", RoundedRequirement: 10},
		{ItemCode: "A2", VendorID: "ACME", RoundedRequirement: 0},
		{ItemCode: "B1", VendorID: "BOLT", RoundedRequirement: 30},
		{ItemCode: "C1", VendorID: "", RoundedRequirement: 5},
	}

	groups := GroupByVendor(results, nil)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, item := range g.Items {
			if item.RoundedRequirement <= 0 {
				t.Errorf("group %s contains item %s with no requirement", g.VendorID, item.ItemCode)
			}
			seen[item.ItemCode]++
			total++
		}
	}
	if total != 3 {
		t.Errorf("expected 3 grouped items, got %d", total)
	}
	for code, n := range seen {
		if n != 1 {
			t.Errorf("item %s appears in %d groups", code, n)
		}
	}
	if _, ok := seen["A2"]; ok {
		t.Error("item with zero requirement must not be grouped")
	}

	last := groups[len(groups)-1]
	if last.VendorID != domain.UnassignedVendor {
		t.Errorf("expected unassigned group last, got %s", last.VendorID)
	}
	if len(last.Items) != 1 || last.Items[0].ItemCode != "C1" {
		t.Errorf("vendorless item must land in unassigned group, got %+v", last.Items)
	}
}

func TestGroupByVendor_FlagsBelowMinimumWithoutInflating(t *testing.T) {
	results := []domain.ReorderResult{
		{ItemCode: "A1", VendorID: "ACME", RoundedRequirement: 40},
	}
	vendorRef := map[string]domain.VendorInfo{
		"ACME": {VendorID: "ACME", VendorCode: "F001", MinOrderQty: 100, Currency: "EUR"},
	}

	groups := GroupByVendor(results, vendorRef)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if !g.BelowMinOrder {
		t.Error("group below the vendor minimum must be flagged")
	}
	if g.TotalQty != 40 {
		t.Errorf("engine must not inflate to the vendor minimum: got total %d", g.TotalQty)
	}
	if g.VendorCode != "F001" || g.Currency != "EUR" || g.MinOrderQty != 100 {
		t.Errorf("vendor metadata not attached: %+v", g)
	}
}
