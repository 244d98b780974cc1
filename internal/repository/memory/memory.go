// internal/repository/memory/memory.go
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// ForecastRepository is an in-memory forecast source for tests and for
// running the server without a database.
type ForecastRepository struct {
	mu      sync.RWMutex
	records []domain.ForecastRecord
}

func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{}
}

// Add registers forecast records.
func (r *ForecastRepository) Add(records ...domain.ForecastRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
}

func (r *ForecastRepository) ListForecasts(ctx context.Context, filter domain.ForecastFilter) ([]domain.ForecastRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.ForecastRecord
	for _, rec := range r.records {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (r *ForecastRepository) EligibilitySummary(ctx context.Context, company string) (domain.EligibilitySummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summary domain.EligibilitySummary
	for _, rec := range r.records {
		if company != "" && rec.Company != company {
			continue
		}
		summary.ItemsAnalyzed++
		if rec.CurrentStock > 0 {
			summary.ItemsWithStock++
		}
		if rec.PredictedQty > 0 {
			summary.ItemsWithDemand++
		}
		if rec.CurrentStock < rec.ReorderLevel {
			summary.BelowReorderLevel++
		}
	}

	return summary, nil
}

func matches(rec domain.ForecastRecord, f domain.ForecastFilter) bool {
	if f.Company != "" && rec.Company != f.Company {
		return false
	}
	if f.Territory != "" && rec.Territory != f.Territory {
		return false
	}
	if f.ItemCode != "" && rec.ItemCode != f.ItemCode {
		return false
	}
	if f.Customer != "" && rec.Customer != f.Customer {
		return false
	}
	if rec.ConfidenceScore < f.MinConfidence {
		return false
	}
	if rec.PredictedQty < f.MinPredictedQty {
		return false
	}

	return true
}

// SupplierRepository is an in-memory supplier source.
type SupplierRepository struct {
	mu           sync.RWMutex
	defaults     map[string]string
	lastPurchase map[string]string
	rates        map[string]decimal.Decimal
	options      map[string][]domain.SupplierOption
}

func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{
		defaults:     make(map[string]string),
		lastPurchase: make(map[string]string),
		rates:        make(map[string]decimal.Decimal),
		options:      make(map[string][]domain.SupplierOption),
	}
}

// SetDefault records the item master default supplier.
func (r *SupplierRepository) SetDefault(itemCode, supplier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaults[itemCode] = supplier
}

// SetLastPurchase records the most recent purchase supplier for an item.
func (r *SupplierRepository) SetLastPurchase(itemCode, supplier string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPurchase[itemCode] = supplier
}

// SetRate records a purchase rate for a supplier/item pair.
func (r *SupplierRepository) SetRate(supplier, itemCode string, rate decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates[rateKey(supplier, itemCode)] = rate
}

// AddOption registers a reachable supplier option for an item.
func (r *SupplierRepository) AddOption(itemCode string, opt domain.SupplierOption) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[itemCode] = append(r.options[itemCode], opt)
}

func (r *SupplierRepository) DefaultSupplier(ctx context.Context, itemCode string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.defaults[itemCode], nil
}

func (r *SupplierRepository) LastPurchaseSupplier(ctx context.Context, itemCode string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lastPurchase[itemCode], nil
}

func (r *SupplierRepository) SupplierOptions(ctx context.Context, itemCode string) ([]domain.SupplierOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.SupplierOption(nil), r.options[itemCode]...), nil
}

func (r *SupplierRepository) LastPurchaseRate(ctx context.Context, supplier, itemCode string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rate, ok := r.rates[rateKey(supplier, itemCode)]; ok {
		return rate, nil
	}

	return decimal.Zero, nil
}

func rateKey(supplier, itemCode string) string {
	return supplier + "|" + itemCode
}

// OrderRepository is an in-memory order sink. FailSupplier marks a supplier
// whose order creation should fail, for exercising partial commits.
type OrderRepository struct {
	mu       sync.Mutex
	seq      int
	orders   map[string]domain.OrderDraft
	failures map[string]string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:   make(map[string]domain.OrderDraft),
		failures: make(map[string]string),
	}
}

// FailSupplier makes CreateOrder fail for the given supplier with reason.
func (r *OrderRepository) FailSupplier(supplier, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[supplier] = reason
}

func (r *OrderRepository) CreateOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reason, ok := r.failures[draft.Supplier]; ok {
		return "", fmt.Errorf("create order for %s: %s", draft.Supplier, reason)
	}

	r.seq++
	id := fmt.Sprintf("PO-%05d", r.seq)
	r.orders[id] = draft

	return id, nil
}

// Orders returns created orders keyed by identifier.
func (r *OrderRepository) Orders() map[string]domain.OrderDraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]domain.OrderDraft, len(r.orders))
	for id, d := range r.orders {
		out[id] = d
	}

	return out
}

// OrderCount returns the number of created orders.
func (r *OrderRepository) OrderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.orders)
}
