package memory

import (
	"context"
	"testing"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

func record(item, company string, confidence, qty float64) domain.ForecastRecord {
	return domain.ForecastRecord{
		ItemCode:        item,
		Company:         company,
		ConfidenceScore: confidence,
		PredictedQty:    qty,
	}
}

func TestForecastRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewForecastRepository()
	repo.Add(
		record("A", "Acme", 90, 100),
		record("B", "Acme", 40, 100),
		record("C", "Globex", 90, 100),
		record("D", "Acme", 90, 2),
	)

	tests := []struct {
		name   string
		filter domain.ForecastFilter
		want   []string
	}{
		{"company_only", domain.ForecastFilter{Company: "Acme"}, []string{"A", "B", "D"}},
		{"min_confidence", domain.ForecastFilter{Company: "Acme", MinConfidence: 70}, []string{"A", "D"}},
		{"min_qty", domain.ForecastFilter{Company: "Acme", MinConfidence: 70, MinPredictedQty: 10}, []string{"A"}},
		{"item_scope", domain.ForecastFilter{ItemCode: "C"}, []string{"C"}},
		{"no_match", domain.ForecastFilter{Company: "Initech"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListForecasts(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListForecasts failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.ItemCode != tt.want[i] {
					t.Errorf("record %d = %s, want %s", i, rec.ItemCode, tt.want[i])
				}
			}
		})
	}
}

func TestForecastRepository_EligibilitySummary(t *testing.T) {
	ctx := context.Background()
	repo := NewForecastRepository()
	repo.Add(
		domain.ForecastRecord{ItemCode: "A", Company: "Acme", CurrentStock: 10, PredictedQty: 5, ReorderLevel: 20},
		domain.ForecastRecord{ItemCode: "B", Company: "Acme", CurrentStock: 0, PredictedQty: 0, ReorderLevel: 5},
		domain.ForecastRecord{ItemCode: "C", Company: "Globex", CurrentStock: 50, PredictedQty: 10, ReorderLevel: 5},
	)

	summary, err := repo.EligibilitySummary(ctx, "Acme")
	if err != nil {
		t.Fatalf("EligibilitySummary failed: %v", err)
	}

	if summary.ItemsAnalyzed != 2 {
		t.Errorf("ItemsAnalyzed = %d, want 2", summary.ItemsAnalyzed)
	}
	if summary.ItemsWithStock != 1 {
		t.Errorf("ItemsWithStock = %d, want 1", summary.ItemsWithStock)
	}
	if summary.ItemsWithDemand != 1 {
		t.Errorf("ItemsWithDemand = %d, want 1", summary.ItemsWithDemand)
	}
	if summary.BelowReorderLevel != 2 {
		t.Errorf("BelowReorderLevel = %d, want 2", summary.BelowReorderLevel)
	}
}
