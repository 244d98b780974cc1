// internal/domain/requests.go
package domain

import "github.com/shopspring/decimal"

// PreviewRequest carries every threshold and strategy flag explicitly; the
// service reads no ambient state for them.
type PreviewRequest struct {
	Company            string  `json:"company" validate:"required"`
	Territory          string  `json:"territory"`
	ItemCode           string  `json:"item_code"`
	Customer           string  `json:"customer"`
	MinConfidence      float64 `json:"min_confidence" validate:"gte=0,lte=100"`
	MinPredictedQty    float64 `json:"min_predicted_qty" validate:"gte=0"`
	PrioritizeCritical bool    `json:"prioritize_critical"`
	IncludeSafetyStock bool    `json:"include_safety_stock"`
	GroupBySupplier    bool    `json:"group_by_supplier"`
}

// Filter returns the exact (unrelaxed) forecast filter for the request.
func (r PreviewRequest) Filter() ForecastFilter {
	return ForecastFilter{
		Company:         r.Company,
		Territory:       r.Territory,
		ItemCode:        r.ItemCode,
		Customer:        r.Customer,
		MinConfidence:   r.MinConfidence,
		MinPredictedQty: r.MinPredictedQty,
	}
}

// PreviewResponse is the full preview payload. On success Items are the
// editable rows; on a no-eligible-items outcome Success is false and
// Summary/Suggestions explain why, which is a resolved result rather than
// an error.
type PreviewResponse struct {
	Success              bool                   `json:"success"`
	SessionToken         string                 `json:"session_token,omitempty"`
	Items                []ProcurementCandidate `json:"items,omitempty"`
	SupplierDistribution []SupplierShare        `json:"supplier_distribution,omitempty"`
	TotalAmount          decimal.Decimal        `json:"total_amount"`
	Insights             []string               `json:"insights,omitempty"`
	ValidationMessage    string                 `json:"validation_message,omitempty"`
	Summary              *EligibilitySummary    `json:"summary,omitempty"`
	Suggestions          []string               `json:"suggestions,omitempty"`
}

// CandidateEdit is one operator-edited row submitted with a commit. Zero
// values leave the previewed value unchanged; a supplier change moves the
// row to that supplier's group.
type CandidateEdit struct {
	ItemCode string           `json:"item_code" validate:"required"`
	Customer string           `json:"customer"`
	Qty      *int64           `json:"qty,omitempty" validate:"omitempty,gt=0"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
	Supplier *string          `json:"supplier,omitempty"`
}

// CommitRequest consumes a previewed session.
type CommitRequest struct {
	SessionToken string          `json:"session_token" validate:"required"`
	Items        []CandidateEdit `json:"items" validate:"dive"`
	AutoSubmit   bool            `json:"auto_submit"`
}

// CommitResponse reports the outcome per order group plus aggregate totals.
// Partial success is reported as such, never hidden behind a failure.
type CommitResponse struct {
	Success       bool            `json:"success"`
	CreatedOrders []CreatedOrder  `json:"created_orders"`
	FailedGroups  []FailedGroup   `json:"failed_groups"`
	ItemsOrdered  int             `json:"items_ordered"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Message       string          `json:"message,omitempty"`
}
