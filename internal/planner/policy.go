// internal/planner/policy.go
package planner

import (
	"github.com/tbocloud/ai-inventory-sub000/internal/config"
	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// epsilon guards division by near-zero daily demand
const epsilon = 1e-9

// leadTimeCoverFactor is the share of lead-time demand used as the safety
// stock floor.
const leadTimeCoverFactor = 0.5

// Policy carries the tunable constants behind quantity optimization and
// urgency classification. Request-level thresholds and flags are not part
// of it; they arrive explicitly with each preview.
type Policy struct {
	ForecastHorizonDays float64
	ConfidenceFloor     float64
	ConfidenceCeil      float64
	Multipliers         map[domain.Movement]float64
	UrgentCoverRatio    float64
	HighCoverRatio      float64
	HighRiskThreshold   float64
	MediumRiskThreshold float64
	FallbackSupplier    string
}

// DefaultPolicy returns the stock policy constants.
func DefaultPolicy() Policy {
	return Policy{
		ForecastHorizonDays: 30,
		ConfidenceFloor:     0.3,
		ConfidenceCeil:      1.0,
		Multipliers: map[domain.Movement]float64{
			domain.MovementCritical:  1.5,
			domain.MovementFast:      1.2,
			domain.MovementSlow:      1.0,
			domain.MovementNonMoving: 0.5,
		},
		UrgentCoverRatio:    0.25,
		HighCoverRatio:      0.5,
		HighRiskThreshold:   80,
		MediumRiskThreshold: 50,
		FallbackSupplier:    "Default Supplier",
	}
}

// FromConfig builds a policy from the loaded planning configuration.
func FromConfig(cfg config.PlanningConfig) Policy {
	p := DefaultPolicy()

	if cfg.ForecastHorizonDays > 0 {
		p.ForecastHorizonDays = cfg.ForecastHorizonDays
	}
	if cfg.ConfidenceFloor > 0 {
		p.ConfidenceFloor = cfg.ConfidenceFloor
	}
	if cfg.ConfidenceCeil > 0 {
		p.ConfidenceCeil = cfg.ConfidenceCeil
	}
	if cfg.CriticalMultiplier > 0 {
		p.Multipliers[domain.MovementCritical] = cfg.CriticalMultiplier
	}
	if cfg.FastMultiplier > 0 {
		p.Multipliers[domain.MovementFast] = cfg.FastMultiplier
	}
	if cfg.SlowMultiplier > 0 {
		p.Multipliers[domain.MovementSlow] = cfg.SlowMultiplier
	}
	if cfg.NonMovingMultiplier > 0 {
		p.Multipliers[domain.MovementNonMoving] = cfg.NonMovingMultiplier
	}
	if cfg.UrgentCoverRatio > 0 {
		p.UrgentCoverRatio = cfg.UrgentCoverRatio
	}
	if cfg.HighCoverRatio > 0 {
		p.HighCoverRatio = cfg.HighCoverRatio
	}
	if cfg.HighRiskThreshold > 0 {
		p.HighRiskThreshold = cfg.HighRiskThreshold
	}
	if cfg.MediumRiskThreshold > 0 {
		p.MediumRiskThreshold = cfg.MediumRiskThreshold
	}
	if cfg.FallbackSupplier != "" {
		p.FallbackSupplier = cfg.FallbackSupplier
	}

	return p
}

func (p Policy) multiplier(m domain.Movement) float64 {
	if v, ok := p.Multipliers[m]; ok {
		return v
	}

	// Unclassified items behave like slow movers
	return p.Multipliers[domain.MovementSlow]
}
