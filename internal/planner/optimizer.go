// internal/planner/optimizer.go
package planner

import (
	"math"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// OptimizeQuantity converts a raw predicted quantity into a recommended
// order quantity:
//
//	lead_time_demand = (predicted_qty / horizon) * lead_time_days
//	safety_stock     = max(existing_safety_stock, lead_time_demand * 0.5) * movement_multiplier
//	optimized_qty    = ceil((predicted_qty + lead_time_demand + safety_stock) * confidence_factor)
//
// The result is always a whole unit count; zero or negative results mean the
// item is ineligible and must be filtered out before grouping.
func OptimizeQuantity(rec domain.ForecastRecord, includeSafetyStock bool, p Policy) int64 {
	if rec.PredictedQty <= 0 {
		return 0
	}

	leadTimeDemand := rec.PredictedQty / p.ForecastHorizonDays * float64(rec.LeadTimeDays)

	var safetyStock float64
	if includeSafetyStock {
		safetyStock = math.Max(rec.SafetyStock, leadTimeDemand*leadTimeCoverFactor) * p.multiplier(rec.Movement)
	}

	confidenceFactor := clamp(rec.ConfidenceScore/100, p.ConfidenceFloor, p.ConfidenceCeil)

	qty := math.Ceil((rec.PredictedQty + leadTimeDemand + safetyStock) * confidenceFactor)
	if qty <= 0 {
		return 0
	}

	return int64(qty)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
