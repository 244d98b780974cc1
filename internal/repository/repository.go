// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// ForecastRepository is the read-only data source of the forecast
// aggregator. Implementations must map infrastructure failures to
// domain.ErrDataSource so callers can distinguish "no data" from
// "source unreachable".
type ForecastRepository interface {
	// ListForecasts returns every forecast record matching all filter
	// criteria. An empty result is not an error.
	ListForecasts(ctx context.Context, filter domain.ForecastFilter) ([]domain.ForecastRecord, error)

	// EligibilitySummary returns the counts used to explain a preview
	// that yields no candidates.
	EligibilitySummary(ctx context.Context, company string) (domain.EligibilitySummary, error)
}

// SupplierRepository resolves suppliers, rates and reliability data for
// the selection cascade.
type SupplierRepository interface {
	// DefaultSupplier returns the item master's default supplier, or ""
	// when the item has none.
	DefaultSupplier(ctx context.Context, itemCode string) (string, error)

	// LastPurchaseSupplier returns the supplier of the item's most recent
	// purchase, or "" when the item has no purchase history.
	LastPurchaseSupplier(ctx context.Context, itemCode string) (string, error)

	// SupplierOptions returns every reachable supplier for the item from
	// purchase history and the supplier directory, annotated with
	// reliability labels passed through from collaborator data.
	SupplierOptions(ctx context.Context, itemCode string) ([]domain.SupplierOption, error)

	// LastPurchaseRate returns the most recent purchase rate for the
	// supplier/item pair, or zero when unknown.
	LastPurchaseRate(ctx context.Context, supplier, itemCode string) (decimal.Decimal, error)
}

// OrderRepository materializes durable orders. The only write surface of
// the whole pipeline.
type OrderRepository interface {
	// CreateOrder creates one order from a draft and returns its
	// identifier. Each call is its own transaction; a failure affects
	// only the group that produced the draft.
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (string, error)
}
