// internal/engine/shortfall.go
package engine

import "math"

// ComputeShortfall computes the projected availability and the requirement
// for one item.
//
// projected = on hand + incoming purchase orders - committed customer orders;
// it may go negative when commitments exceed stock plus incoming. The raw
// requirement is the gap up to the target level, floored at zero: a surplus
// never turns into a negative order.
//
// Rounding: a pack size above 1 rounds up to the smallest multiple of the
// pack that covers the raw requirement; otherwise whole units. A zero raw
// requirement always yields zero - vendor minimum orders are a reporting
// concern, not injected here.
func ComputeShortfall(onHandQty, incomingPOQty, committedSOQty, targetLevel float64, packSize int) (projectedAvailable, rawRequirement float64, roundedRequirement int) {
	projectedAvailable = onHandQty + incomingPOQty - committedSOQty

	rawRequirement = targetLevel - projectedAvailable
	if rawRequirement < 0 {
		rawRequirement = 0
	}
	if rawRequirement == 0 {
		return projectedAvailable, 0, 0
	}

	if packSize > 1 {
		packs := math.Ceil(rawRequirement / float64(packSize))
		roundedRequirement = int(packs) * packSize
	} else {
		roundedRequirement = int(math.Ceil(rawRequirement))
	}
	return projectedAvailable, rawRequirement, roundedRequirement
}
