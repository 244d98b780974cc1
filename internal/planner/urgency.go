// internal/planner/urgency.go
package planner

import (
	"math"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// ClassifyUrgency assigns a priority tier from stock coverage and risk.
// Tiers are evaluated in order, first match wins. It also returns the
// stock-days-remaining figure carried on the candidate.
//
// Urgency is advisory: it never excludes an item, it only drives sort order
// in the preview and the prioritize_critical grouping order.
func ClassifyUrgency(rec domain.ForecastRecord, p Policy) (domain.UrgencyTier, float64) {
	dailyDemand := rec.PredictedQty / p.ForecastHorizonDays
	stockDays := rec.CurrentStock / math.Max(dailyDemand, epsilon)
	leadTime := float64(rec.LeadTimeDays)

	switch {
	case rec.CurrentStock <= 0 || stockDays < leadTime*p.UrgentCoverRatio:
		return domain.UrgencyUrgent, stockDays
	case stockDays < leadTime*p.HighCoverRatio || rec.RiskScore >= p.HighRiskThreshold:
		return domain.UrgencyHigh, stockDays
	case stockDays < leadTime || rec.RiskScore >= p.MediumRiskThreshold:
		return domain.UrgencyMedium, stockDays
	default:
		return domain.UrgencyLow, stockDays
	}
}
