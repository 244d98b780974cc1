// internal/repository/postgres/forecast_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

func (r *forecastRepository) ListForecasts(ctx context.Context, filter domain.ForecastFilter) ([]domain.ForecastRecord, error) {
	query := `
		SELECT
			item_code,
			item_name,
			COALESCE(customer, '') AS customer,
			company,
			COALESCE(territory, '') AS territory,
			predicted_qty,
			confidence_score,
			movement_type,
			risk_score,
			current_stock,
			reorder_level,
			safety_stock,
			lead_time_days,
			COALESCE(preferred_supplier, '') AS preferred_supplier
		FROM demand_forecasts
		WHERE confidence_score >= $1
		  AND predicted_qty >= $2
		  AND ($3 = '' OR company = $3)
		  AND ($4 = '' OR territory = $4)
		  AND ($5 = '' OR item_code = $5)
		  AND ($6 = '' OR customer = $6)
		ORDER BY risk_score DESC, predicted_qty DESC
	`

	var records []domain.ForecastRecord
	err := r.db.SelectContext(ctx, &records, query,
		filter.MinConfidence,
		filter.MinPredictedQty,
		filter.Company,
		filter.Territory,
		filter.ItemCode,
		filter.Customer,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list forecasts: %v", domain.ErrDataSource, err)
	}

	return records, nil
}

func (r *forecastRepository) EligibilitySummary(ctx context.Context, company string) (domain.EligibilitySummary, error) {
	query := `
		SELECT
			COUNT(*) AS items_analyzed,
			COUNT(*) FILTER (WHERE current_stock > 0) AS items_with_stock,
			COUNT(*) FILTER (WHERE predicted_qty > 0) AS items_with_demand,
			COUNT(*) FILTER (WHERE current_stock < reorder_level) AS below_reorder_level
		FROM demand_forecasts
		WHERE ($1 = '' OR company = $1)
	`

	var summary domain.EligibilitySummary
	err := r.db.QueryRowxContext(ctx, query, company).Scan(
		&summary.ItemsAnalyzed,
		&summary.ItemsWithStock,
		&summary.ItemsWithDemand,
		&summary.BelowReorderLevel,
	)
	if err != nil {
		return domain.EligibilitySummary{}, fmt.Errorf("%w: eligibility summary: %v", domain.ErrDataSource, err)
	}

	return summary, nil
}
