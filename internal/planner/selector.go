// internal/planner/selector.go
package planner

import (
	"context"
	"fmt"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository"
)

// SupplierSelector picks a default supplier per item through a fallback
// cascade and keeps every other reachable supplier as an alternative for
// manual override.
type SupplierSelector struct {
	repo   repository.SupplierRepository
	policy Policy
}

func NewSupplierSelector(repo repository.SupplierRepository, policy Policy) *SupplierSelector {
	return &SupplierSelector{repo: repo, policy: policy}
}

// Select resolves the cascade for one forecast record. First available
// level wins:
//
//  1. forecast-record preferred supplier (confidence 75)
//  2. item master default supplier (confidence 60)
//  3. most recent purchase supplier (confidence 50)
//  4. system fallback placeholder (confidence 30)
func (s *SupplierSelector) Select(ctx context.Context, rec domain.ForecastRecord) (domain.SupplierOption, []domain.SupplierOption, error) {
	options, err := s.repo.SupplierOptions(ctx, rec.ItemCode)
	if err != nil {
		return domain.SupplierOption{}, nil, fmt.Errorf("list supplier options for %s: %w", rec.ItemCode, err)
	}

	reliability := make(map[string]string, len(options))
	for _, opt := range options {
		reliability[opt.Supplier] = opt.Reliability
	}

	selected, err := s.cascade(ctx, rec)
	if err != nil {
		return domain.SupplierOption{}, nil, err
	}
	selected.Reliability = reliability[selected.Supplier]

	alternatives := make([]domain.SupplierOption, 0, len(options))
	for _, opt := range options {
		if opt.Supplier == selected.Supplier {
			continue
		}
		alternatives = append(alternatives, opt)
	}

	return selected, alternatives, nil
}

func (s *SupplierSelector) cascade(ctx context.Context, rec domain.ForecastRecord) (domain.SupplierOption, error) {
	if rec.PreferredSupplier != "" {
		return option(rec.PreferredSupplier, domain.SourceForecastPreferred), nil
	}

	supplier, err := s.repo.DefaultSupplier(ctx, rec.ItemCode)
	if err != nil {
		return domain.SupplierOption{}, fmt.Errorf("item default supplier for %s: %w", rec.ItemCode, err)
	}
	if supplier != "" {
		return option(supplier, domain.SourceItemDefault), nil
	}

	supplier, err = s.repo.LastPurchaseSupplier(ctx, rec.ItemCode)
	if err != nil {
		return domain.SupplierOption{}, fmt.Errorf("last purchase supplier for %s: %w", rec.ItemCode, err)
	}
	if supplier != "" {
		return option(supplier, domain.SourceRecentPurchase), nil
	}

	return option(s.policy.FallbackSupplier, domain.SourceSystemFallback), nil
}

func option(supplier string, source domain.SupplierSource) domain.SupplierOption {
	return domain.SupplierOption{
		Supplier:   supplier,
		Source:     source,
		Confidence: domain.SourceConfidence(source),
	}
}
