// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForecastRecord is a single demand prediction produced by the forecasting
// collaborator. Read-only to this service.
type ForecastRecord struct {
	ItemCode          string   `json:"item_code" db:"item_code"`
	ItemName          string   `json:"item_name" db:"item_name"`
	Customer          string   `json:"customer,omitempty" db:"customer"`
	Company           string   `json:"company" db:"company"`
	Territory         string   `json:"territory,omitempty" db:"territory"`
	PredictedQty      float64  `json:"predicted_qty" db:"predicted_qty"`
	ConfidenceScore   float64  `json:"confidence_score" db:"confidence_score"`
	Movement          Movement `json:"movement_type" db:"movement_type"`
	RiskScore         float64  `json:"risk_score" db:"risk_score"`
	CurrentStock      float64  `json:"current_stock" db:"current_stock"`
	ReorderLevel      float64  `json:"reorder_level" db:"reorder_level"`
	SafetyStock       float64  `json:"safety_stock" db:"safety_stock"`
	LeadTimeDays      int      `json:"lead_time_days" db:"lead_time_days"`
	PreferredSupplier string   `json:"preferred_supplier,omitempty" db:"preferred_supplier"`
}

// ForecastFilter narrows the forecast records considered for a preview.
type ForecastFilter struct {
	Company         string  `json:"company"`
	Territory       string  `json:"territory,omitempty"`
	ItemCode        string  `json:"item_code,omitempty"`
	Customer        string  `json:"customer,omitempty"`
	MinConfidence   float64 `json:"min_confidence"`
	MinPredictedQty float64 `json:"min_predicted_qty"`
}

// SupplierOption is one reachable supplier for a candidate, annotated with
// the cascade level that produced it and pass-through reliability data.
type SupplierOption struct {
	Supplier    string         `json:"supplier" db:"supplier"`
	Source      SupplierSource `json:"source" db:"source"`
	Confidence  float64        `json:"confidence" db:"confidence"`
	Reliability string         `json:"reliability,omitempty" db:"reliability"`
}

// ProcurementCandidate is an item scored and sized for inclusion in a
// purchase order. Derived fresh on every preview, never persisted directly.
type ProcurementCandidate struct {
	ItemCode           string           `json:"item_code"`
	ItemName           string           `json:"item_name"`
	Customer           string           `json:"customer,omitempty"`
	Company            string           `json:"company"`
	Qty                int64            `json:"qty"`
	Rate               decimal.Decimal  `json:"rate"`
	Amount             decimal.Decimal  `json:"amount"`
	Urgency            UrgencyTier      `json:"urgency"`
	StockDaysRemaining float64          `json:"stock_days_remaining"`
	Supplier           string           `json:"supplier"`
	SupplierSource     SupplierSource   `json:"supplier_source"`
	SupplierConfidence float64          `json:"supplier_confidence"`
	Alternatives       []SupplierOption `json:"alternatives,omitempty"`
	Movement           Movement         `json:"movement_type"`
	ConfidenceScore    float64          `json:"confidence_score"`
	RiskScore          float64          `json:"risk_score"`
}

// Key identifies a candidate row within a session for applying edits. Item
// plus optional customer is unique within one preview.
func (c ProcurementCandidate) Key() string {
	if c.Customer == "" {
		return c.ItemCode
	}

	return c.ItemCode + "|" + c.Customer
}

// OrderGroup is a set of candidates destined for a single supplier, to
// become one order on commit. Supplier is empty for the consolidated group
// when grouping by supplier is disabled.
type OrderGroup struct {
	Supplier   string                 `json:"supplier"`
	Company    string                 `json:"company"`
	Candidates []ProcurementCandidate `json:"candidates"`
	Amount     decimal.Decimal        `json:"amount"`
}

// PreviewSession is the state carried between a preview and its commit.
// Owned exclusively by the preview/commit controller.
type PreviewSession struct {
	Token              string         `json:"token"`
	State              SessionState   `json:"state"`
	Company            string         `json:"company"`
	Filter             ForecastFilter `json:"filter"`
	PrioritizeCritical bool           `json:"prioritize_critical"`
	GroupBySupplier    bool           `json:"group_by_supplier"`
	IncludeSafetyStock bool           `json:"include_safety_stock"`
	Groups             []OrderGroup   `json:"groups"`
	CreatedAt          time.Time      `json:"created_at"`
	ExpiresAt          time.Time      `json:"expires_at"`
}

// Candidates flattens the session's groups into a single list.
func (s *PreviewSession) Candidates() []ProcurementCandidate {
	var out []ProcurementCandidate
	for _, g := range s.Groups {
		out = append(out, g.Candidates...)
	}

	return out
}

// OrderLine is one row of an order draft handed to the order collaborator.
type OrderLine struct {
	ItemCode string          `json:"item_code" db:"item_code"`
	ItemName string          `json:"item_name" db:"item_name"`
	Qty      int64           `json:"qty" db:"qty"`
	Rate     decimal.Decimal `json:"rate" db:"rate"`
	Amount   decimal.Decimal `json:"amount" db:"amount"`
}

// OrderDraft is the material to create one durable order from an OrderGroup.
type OrderDraft struct {
	Company  string          `json:"company"`
	Supplier string          `json:"supplier"`
	Lines    []OrderLine     `json:"lines"`
	Amount   decimal.Decimal `json:"amount"`
	Submit   bool            `json:"submit"`
}

// CreatedOrder describes one successfully materialized order.
type CreatedOrder struct {
	ID        string          `json:"id"`
	Supplier  string          `json:"supplier"`
	ItemCount int             `json:"item_count"`
	Amount    decimal.Decimal `json:"amount"`
}

// FailedGroup records a group whose order could not be created.
type FailedGroup struct {
	Supplier string `json:"supplier"`
	Reason   string `json:"reason"`
}

// EligibilitySummary explains why a preview produced no candidates.
type EligibilitySummary struct {
	ItemsAnalyzed     int `json:"items_analyzed"`
	ItemsWithStock    int `json:"items_with_stock"`
	ItemsWithDemand   int `json:"items_with_demand"`
	BelowReorderLevel int `json:"below_reorder_level"`
}

// SupplierShare is one entry of the preview's supplier distribution summary.
type SupplierShare struct {
	Supplier  string          `json:"supplier"`
	ItemCount int             `json:"item_count"`
	Amount    decimal.Decimal `json:"amount"`
}
