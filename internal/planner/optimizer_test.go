package planner

import (
	"testing"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

func testRecord() domain.ForecastRecord {
	return domain.ForecastRecord{
		ItemCode:        "WIDGET-01",
		Company:         "Acme",
		PredictedQty:    100,
		ConfidenceScore: 80,
		Movement:        domain.MovementFast,
		RiskScore:       20,
		CurrentStock:    50,
		SafetyStock:     10,
		LeadTimeDays:    15,
	}
}

func TestOptimizeQuantity_Formula(t *testing.T) {
	p := DefaultPolicy()

	// lead_time_demand = 100/30*15 = 50
	// safety_stock     = max(10, 25) * 1.2 = 30
	// confidence       = 0.8
	// ceil((100+50+30)*0.8) = 144
	got := OptimizeQuantity(testRecord(), true, p)
	if got != 144 {
		t.Errorf("OptimizeQuantity = %d, want 144", got)
	}
}

func TestOptimizeQuantity_WithoutSafetyStock(t *testing.T) {
	p := DefaultPolicy()

	// ceil((100+50)*0.8) = 120
	got := OptimizeQuantity(testRecord(), false, p)
	if got != 120 {
		t.Errorf("OptimizeQuantity = %d, want 120", got)
	}
}

func TestOptimizeQuantity_ConfidenceClamp(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name       string
		confidence float64
		want       int64
	}{
		// (100+50+30) * 0.3 = 54: confidence below the floor clamps to 0.3
		{"below_floor", 10, 54},
		{"at_floor", 30, 54},
		// (100+50+30) * 1.0 = 180: confidence never scales above 1.0
		{"full_confidence", 100, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			rec.ConfidenceScore = tt.confidence
			if got := OptimizeQuantity(rec, true, p); got != tt.want {
				t.Errorf("OptimizeQuantity(confidence=%v) = %d, want %d", tt.confidence, got, tt.want)
			}
		})
	}
}

func TestOptimizeQuantity_MovementMultipliers(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		movement domain.Movement
		want     int64
	}{
		// safety = 25 * multiplier; result = ceil((100+50+safety) * 0.8)
		{domain.MovementCritical, 150},  // ceil((150+37.5)*0.8)
		{domain.MovementFast, 144},      // ceil((150+30)*0.8)
		{domain.MovementSlow, 140},      // ceil((150+25)*0.8)
		{domain.MovementNonMoving, 130}, // ceil((150+12.5)*0.8)
	}

	for _, tt := range tests {
		t.Run(string(tt.movement), func(t *testing.T) {
			rec := testRecord()
			rec.Movement = tt.movement
			if got := OptimizeQuantity(rec, true, p); got != tt.want {
				t.Errorf("OptimizeQuantity(%s) = %d, want %d", tt.movement, got, tt.want)
			}
		})
	}
}

func TestOptimizeQuantity_ZeroAndNegativeDemand(t *testing.T) {
	p := DefaultPolicy()

	for _, qty := range []float64{0, -5} {
		rec := testRecord()
		rec.PredictedQty = qty
		if got := OptimizeQuantity(rec, true, p); got != 0 {
			t.Errorf("OptimizeQuantity(predicted=%v) = %d, want 0", qty, got)
		}
	}
}

func TestOptimizeQuantity_MonotonicInPredictedQty(t *testing.T) {
	p := DefaultPolicy()

	var prev int64
	for qty := 1.0; qty <= 500; qty += 7 {
		rec := testRecord()
		rec.PredictedQty = qty
		got := OptimizeQuantity(rec, true, p)
		if got < prev {
			t.Fatalf("OptimizeQuantity not monotonic: predicted=%v gave %d after %d", qty, got, prev)
		}
		if got < 0 {
			t.Fatalf("OptimizeQuantity returned negative quantity %d", got)
		}
		prev = got
	}
}
