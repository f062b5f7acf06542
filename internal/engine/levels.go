// internal/engine/levels.go
package engine

// ComputeLevels derives the reorder point and the target stock level from the
// daily demand and the configured day counts.
//
// The reorder point is the stock level at which a purchase order must already
// be in flight to survive the lead time plus the safety buffer. The target
// level extends it by the desired coverage window and is the level to
// replenish up to. Both are plain linear functions of demand; no statistical
// service-level modeling is attempted.
func ComputeLevels(dailyDemand float64, leadTimeDays, coverageDays, safetyDays int) (reorderPoint, targetLevel float64) {
	reorderPoint = dailyDemand * float64(leadTimeDays+safetyDays)
	targetLevel = dailyDemand * float64(leadTimeDays+coverageDays+safetyDays)
	return reorderPoint, targetLevel
}
