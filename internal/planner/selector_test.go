package planner

import (
	"context"
	"testing"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository/memory"
)

func TestSupplierSelector_Cascade(t *testing.T) {
	ctx := context.Background()
	p := DefaultPolicy()

	tests := []struct {
		name           string
		preferred      string
		itemDefault    string
		lastPurchase   string
		wantSupplier   string
		wantSource     domain.SupplierSource
		wantConfidence float64
	}{
		{
			name:           "forecast_preferred_wins",
			preferred:      "Apex Traders",
			itemDefault:    "Beta Supplies",
			lastPurchase:   "Gamma Importers",
			wantSupplier:   "Apex Traders",
			wantSource:     domain.SourceForecastPreferred,
			wantConfidence: 75,
		},
		{
			name:           "item_default_second",
			itemDefault:    "Beta Supplies",
			lastPurchase:   "Gamma Importers",
			wantSupplier:   "Beta Supplies",
			wantSource:     domain.SourceItemDefault,
			wantConfidence: 60,
		},
		{
			name:           "purchase_history_third",
			lastPurchase:   "Gamma Importers",
			wantSupplier:   "Gamma Importers",
			wantSource:     domain.SourceRecentPurchase,
			wantConfidence: 50,
		},
		{
			name:           "system_fallback_last",
			wantSupplier:   p.FallbackSupplier,
			wantSource:     domain.SourceSystemFallback,
			wantConfidence: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewSupplierRepository()
			if tt.itemDefault != "" {
				repo.SetDefault("WIDGET-01", tt.itemDefault)
			}
			if tt.lastPurchase != "" {
				repo.SetLastPurchase("WIDGET-01", tt.lastPurchase)
			}

			selector := NewSupplierSelector(repo, p)
			rec := domain.ForecastRecord{ItemCode: "WIDGET-01", PreferredSupplier: tt.preferred}

			selected, _, err := selector.Select(ctx, rec)
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			if selected.Supplier != tt.wantSupplier {
				t.Errorf("supplier = %q, want %q", selected.Supplier, tt.wantSupplier)
			}
			if selected.Source != tt.wantSource {
				t.Errorf("source = %s, want %s", selected.Source, tt.wantSource)
			}
			if selected.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", selected.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestSupplierSelector_AlternativesExcludeSelected(t *testing.T) {
	ctx := context.Background()
	p := DefaultPolicy()

	repo := memory.NewSupplierRepository()
	repo.SetDefault("WIDGET-01", "Beta Supplies")
	repo.AddOption("WIDGET-01", domain.SupplierOption{
		Supplier: "Beta Supplies", Source: domain.SourceRecentPurchase, Confidence: 50, Reliability: "on-time 96%",
	})
	repo.AddOption("WIDGET-01", domain.SupplierOption{
		Supplier: "Gamma Importers", Source: domain.SourceRecentPurchase, Confidence: 50, Reliability: "on-time 81%",
	})
	repo.AddOption("WIDGET-01", domain.SupplierOption{
		Supplier: "Delta Wholesale", Source: domain.SourceSystemFallback, Confidence: 30,
	})

	selector := NewSupplierSelector(repo, p)
	selected, alternatives, err := selector.Select(ctx, domain.ForecastRecord{ItemCode: "WIDGET-01"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if selected.Supplier != "Beta Supplies" {
		t.Fatalf("selected = %q, want Beta Supplies", selected.Supplier)
	}
	if selected.Reliability != "on-time 96%" {
		t.Errorf("selected reliability = %q, want pass-through label", selected.Reliability)
	}

	if len(alternatives) != 2 {
		t.Fatalf("alternatives = %d, want 2", len(alternatives))
	}
	for _, alt := range alternatives {
		if alt.Supplier == selected.Supplier {
			t.Errorf("selected supplier %q listed among alternatives", alt.Supplier)
		}
	}
}
