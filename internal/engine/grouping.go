// internal/engine/grouping.go
package engine

import (
	"sort"

	"github.com/mcampagna/riordino/internal/domain"
)

// GroupByVendor partitions the results with a rounded requirement above zero
// by vendor and attaches the reference metadata when available. Items without
// a vendor land in the distinguished "unassigned" group, sorted last; every
// other group is ordered alphabetically by vendor id and its items by item
// code.
//
// MinOrderQty is metadata only: a group whose total sits below the vendor
// minimum is still emitted, with BelowMinOrder set so the reporting layer can
// flag it. The engine never inflates an order to meet a minimum.
func GroupByVendor(results []domain.ReorderResult, vendorRef map[string]domain.VendorInfo) []domain.VendorGroup {
	byVendor := make(map[string][]domain.ReorderResult)
	for _, res := range results {
		if res.RoundedRequirement <= 0 {
			continue
		}
		key := res.VendorID
		if key == "" {
			key = domain.UnassignedVendor
		}
		byVendor[key] = append(byVendor[key], res)
	}

	keys := make([]string, 0, len(byVendor))
	for key := range byVendor {
		if key != domain.UnassignedVendor {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := byVendor[domain.UnassignedVendor]; ok {
		keys = append(keys, domain.UnassignedVendor)
	}

	groups := make([]domain.VendorGroup, 0, len(keys))
	for _, key := range keys {
		items := byVendor[key]
		sort.Slice(items, func(i, j int) bool { return items[i].ItemCode < items[j].ItemCode })

		group := domain.VendorGroup{VendorID: key, Items: items}
		for _, item := range items {
			group.TotalQty += item.RoundedRequirement
		}
		if info, ok := vendorRef[key]; ok {
			group.VendorCode = info.VendorCode
			group.Currency = info.Currency
			group.MinOrderQty = info.MinOrderQty
			group.BelowMinOrder = info.MinOrderQty > 0 && float64(group.TotalQty) < info.MinOrderQty
		}
		groups = append(groups, group)
	}
	return groups
}
