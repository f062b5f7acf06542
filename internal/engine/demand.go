// internal/engine/demand.go
package engine

// daysPerMonth is the fixed month-length approximation applied to the
// 6-month average. Deliberately not the calendar month length.
const daysPerMonth = 30.0

// EstimateDailyDemand blends two estimators: the daily rate observed in the
// analyzed period and the trailing 6-month monthly average. Taking the max of
// the two biases the result toward not under-stocking: the period rate
// captures recent spikes, the long average guards against unusually quiet
// observation windows. Both signals at zero is a legitimate "no demand", not
// an error.
func EstimateDailyDemand(shippedQtyPeriod float64, periodDays int, avgMonthlyQty float64) float64 {
	periodRate := shippedQtyPeriod / float64(periodDays)
	monthlyRate := avgMonthlyQty / daysPerMonth
	if periodRate > monthlyRate {
		return periodRate
	}
	return monthlyRate
}
