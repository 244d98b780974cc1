// internal/service/procurement_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
	"github.com/tbocloud/ai-inventory-sub000/internal/planner"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository"
	"github.com/tbocloud/ai-inventory-sub000/internal/session"
)

// ProcurementService orchestrates the two-phase preview/commit workflow:
// side-effect-free proposal generation, operator edits, then durable order
// creation with per-group isolation and consume-once sessions.
type ProcurementService struct {
	forecasts repository.ForecastRepository
	suppliers repository.SupplierRepository
	orders    repository.OrderRepository
	sessions  session.Store
	selector  *planner.SupplierSelector
	policy    planner.Policy
}

func NewProcurementService(
	forecasts repository.ForecastRepository,
	suppliers repository.SupplierRepository,
	orders repository.OrderRepository,
	sessions session.Store,
	policy planner.Policy,
) *ProcurementService {
	return &ProcurementService{
		forecasts: forecasts,
		suppliers: suppliers,
		orders:    orders,
		sessions:  sessions,
		selector:  planner.NewSupplierSelector(suppliers, policy),
		policy:    policy,
	}
}

// Preview computes a purchase proposal without side effects. It reads
// current forecast and supplier data, scores and sizes each eligible item,
// groups the result and stores it under a fresh session token. Concurrent
// previews never interfere; nothing is locked.
func (s *ProcurementService) Preview(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewResponse, error) {
	records, relaxation, err := s.aggregate(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return s.noEligibleItems(ctx, req.Company, "no forecast records matched the filters, even after relaxing them")
	}

	candidates, err := s.buildCandidates(ctx, records, req.IncludeSafetyStock)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return s.noEligibleItems(ctx, req.Company, "every matching item optimized to a zero order quantity")
	}

	var groups []domain.OrderGroup
	if req.GroupBySupplier {
		groups = planner.GroupBySupplier(req.Company, candidates, req.PrioritizeCritical)
	} else {
		groups = planner.Consolidate(req.Company, candidates)
	}

	sess := &domain.PreviewSession{
		Token:              uuid.NewString(),
		State:              domain.SessionPreviewed,
		Company:            req.Company,
		Filter:             req.Filter(),
		PrioritizeCritical: req.PrioritizeCritical,
		GroupBySupplier:    req.GroupBySupplier,
		IncludeSafetyStock: req.IncludeSafetyStock,
		Groups:             groups,
		CreatedAt:          time.Now(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store preview session: %w", err)
	}

	items := sess.Candidates()
	resp := &domain.PreviewResponse{
		Success:              true,
		SessionToken:         sess.Token,
		Items:                items,
		SupplierDistribution: supplierDistribution(groups),
		TotalAmount:          totalAmount(groups),
		Insights:             buildInsights(items, relaxation),
	}

	log.Info().
		Str("session", sess.Token).
		Str("company", req.Company).
		Int("items", len(items)).
		Int("groups", len(groups)).
		Msg("preview computed")

	return resp, nil
}

// aggregate applies the fallback ladder: exact filters, then the same
// filters without company, then only the item/customer scope. The applied
// relaxation is surfaced so the caller can explain it.
func (s *ProcurementService) aggregate(ctx context.Context, req domain.PreviewRequest) ([]domain.ForecastRecord, string, error) {
	exact := req.Filter()

	records, err := s.forecasts.ListForecasts(ctx, exact)
	if err != nil {
		return nil, "", fmt.Errorf("aggregate forecasts: %w", err)
	}
	if len(records) > 0 {
		return records, "", nil
	}

	if exact.Company != "" {
		relaxed := exact
		relaxed.Company = ""
		records, err = s.forecasts.ListForecasts(ctx, relaxed)
		if err != nil {
			return nil, "", fmt.Errorf("aggregate forecasts: %w", err)
		}
		if len(records) > 0 {
			return records, fmt.Sprintf("no items matched company %q; the company filter was relaxed", exact.Company), nil
		}
	}

	scoped := domain.ForecastFilter{ItemCode: exact.ItemCode, Customer: exact.Customer}
	records, err = s.forecasts.ListForecasts(ctx, scoped)
	if err != nil {
		return nil, "", fmt.Errorf("aggregate forecasts: %w", err)
	}
	if len(records) > 0 {
		return records, "all filters except the item/customer scope were relaxed", nil
	}

	return nil, "", nil
}

func (s *ProcurementService) buildCandidates(ctx context.Context, records []domain.ForecastRecord, includeSafetyStock bool) ([]domain.ProcurementCandidate, error) {
	candidates := make([]domain.ProcurementCandidate, 0, len(records))

	for _, rec := range records {
		qty := planner.OptimizeQuantity(rec, includeSafetyStock, s.policy)
		if qty <= 0 {
			continue
		}

		urgency, stockDays := planner.ClassifyUrgency(rec, s.policy)

		selected, alternatives, err := s.selector.Select(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("select supplier: %w", err)
		}

		rate, err := s.suppliers.LastPurchaseRate(ctx, selected.Supplier, rec.ItemCode)
		if err != nil {
			return nil, fmt.Errorf("estimate rate: %w", err)
		}

		candidates = append(candidates, domain.ProcurementCandidate{
			ItemCode:           rec.ItemCode,
			ItemName:           rec.ItemName,
			Customer:           rec.Customer,
			Company:            rec.Company,
			Qty:                qty,
			Rate:               rate,
			Amount:             rate.Mul(decimal.NewFromInt(qty)),
			Urgency:            urgency,
			StockDaysRemaining: stockDays,
			Supplier:           selected.Supplier,
			SupplierSource:     selected.Source,
			SupplierConfidence: selected.Confidence,
			Alternatives:       alternatives,
			Movement:           rec.Movement,
			ConfidenceScore:    rec.ConfidenceScore,
			RiskScore:          rec.RiskScore,
		})
	}

	return candidates, nil
}

func (s *ProcurementService) noEligibleItems(ctx context.Context, company, message string) (*domain.PreviewResponse, error) {
	summary, err := s.forecasts.EligibilitySummary(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("eligibility summary: %w", err)
	}

	suggestions := []string{
		"lower the minimum confidence threshold",
		"lower the minimum predicted quantity",
	}
	if summary.ItemsWithDemand == 0 {
		suggestions = append(suggestions, "no items have predicted demand; regenerate forecasts first")
	}
	if summary.BelowReorderLevel > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("%d items are below their reorder level; review their forecast confidence", summary.BelowReorderLevel))
	}

	return &domain.PreviewResponse{
		Success:           false,
		ValidationMessage: message,
		TotalAmount:       decimal.Zero,
		Summary:           &summary,
		Suggestions:       suggestions,
	}, nil
}

// Commit consumes a previewed session and materializes one order per group.
// The token is consumed before any order is created, so a concurrent or
// replayed commit of the same session can never produce a second set of
// orders. Groups are processed in sequence; one group's failure is recorded
// and the rest continue.
func (s *ProcurementService) Commit(ctx context.Context, req domain.CommitRequest) (*domain.CommitResponse, error) {
	sess, err := s.sessions.Consume(ctx, req.SessionToken)
	if err != nil {
		return nil, err
	}

	candidates := applyEdits(sess.Candidates(), req.Items)

	var groups []domain.OrderGroup
	if sess.GroupBySupplier {
		groups = planner.GroupBySupplier(sess.Company, candidates, sess.PrioritizeCritical)
	} else {
		groups = planner.Consolidate(sess.Company, candidates)
	}

	resp := &domain.CommitResponse{
		CreatedOrders: []domain.CreatedOrder{},
		FailedGroups:  []domain.FailedGroup{},
		TotalAmount:   decimal.Zero,
	}

	for _, group := range groups {
		draft := draftFromGroup(group, req.AutoSubmit)

		id, err := s.orders.CreateOrder(ctx, draft)
		if err != nil {
			log.Error().Err(err).
				Str("session", sess.Token).
				Str("supplier", group.Supplier).
				Msg("order creation failed for group")
			resp.FailedGroups = append(resp.FailedGroups, domain.FailedGroup{
				Supplier: group.Supplier,
				Reason:   err.Error(),
			})
			continue
		}

		resp.CreatedOrders = append(resp.CreatedOrders, domain.CreatedOrder{
			ID:        id,
			Supplier:  group.Supplier,
			ItemCount: len(group.Candidates),
			Amount:    group.Amount,
		})
		resp.ItemsOrdered += len(group.Candidates)
		resp.TotalAmount = resp.TotalAmount.Add(group.Amount)
	}

	resp.Success = len(resp.CreatedOrders) > 0
	if len(resp.FailedGroups) > 0 {
		resp.Message = fmt.Sprintf("%d of %d order groups failed", len(resp.FailedGroups), len(groups))
	}

	log.Info().
		Str("session", sess.Token).
		Int("created", len(resp.CreatedOrders)).
		Int("failed", len(resp.FailedGroups)).
		Msg("commit finished")

	return resp, nil
}

// Cancel discards a previewed session without creating orders.
func (s *ProcurementService) Cancel(ctx context.Context, token string) error {
	return s.sessions.Cancel(ctx, token)
}

// ListForecasts exposes the aggregator to operator-facing callers.
func (s *ProcurementService) ListForecasts(ctx context.Context, filter domain.ForecastFilter) ([]domain.ForecastRecord, error) {
	return s.forecasts.ListForecasts(ctx, filter)
}

// SupplierOptions exposes the alternatives for a manual override.
func (s *ProcurementService) SupplierOptions(ctx context.Context, itemCode string) ([]domain.SupplierOption, error) {
	return s.suppliers.SupplierOptions(ctx, itemCode)
}

// applyEdits rewrites candidate rows with the operator's quantity, rate and
// supplier changes. A supplier change adopts the matching alternative's
// source metadata when present. Edits referencing rows not in the session
// are ignored.
func applyEdits(candidates []domain.ProcurementCandidate, edits []domain.CandidateEdit) []domain.ProcurementCandidate {
	if len(edits) == 0 {
		return candidates
	}

	byKey := make(map[string]int, len(candidates))
	for i, c := range candidates {
		byKey[c.Key()] = i
	}

	for _, edit := range edits {
		key := edit.ItemCode
		if edit.Customer != "" {
			key = edit.ItemCode + "|" + edit.Customer
		}
		i, ok := byKey[key]
		if !ok {
			log.Warn().Str("item", edit.ItemCode).Msg("edit references a row not in the session; ignored")
			continue
		}

		c := &candidates[i]
		if edit.Qty != nil && *edit.Qty > 0 {
			c.Qty = *edit.Qty
		}
		if edit.Rate != nil {
			c.Rate = *edit.Rate
		}
		if edit.Supplier != nil && *edit.Supplier != "" && *edit.Supplier != c.Supplier {
			moveSupplier(c, *edit.Supplier)
		}
		c.Amount = c.Rate.Mul(decimal.NewFromInt(c.Qty))
	}

	return candidates
}

func moveSupplier(c *domain.ProcurementCandidate, supplier string) {
	prev := domain.SupplierOption{
		Supplier:    c.Supplier,
		Source:      c.SupplierSource,
		Confidence:  c.SupplierConfidence,
		Reliability: "",
	}

	c.Supplier = supplier
	for _, alt := range c.Alternatives {
		if alt.Supplier == supplier {
			c.SupplierSource = alt.Source
			c.SupplierConfidence = alt.Confidence
			break
		}
	}

	// Keep the displaced selection available for a further override.
	alts := make([]domain.SupplierOption, 0, len(c.Alternatives)+1)
	alts = append(alts, prev)
	for _, alt := range c.Alternatives {
		if alt.Supplier != supplier {
			alts = append(alts, alt)
		}
	}
	c.Alternatives = alts
}

func draftFromGroup(group domain.OrderGroup, submit bool) domain.OrderDraft {
	lines := make([]domain.OrderLine, 0, len(group.Candidates))
	total := decimal.Zero
	for _, c := range group.Candidates {
		amount := c.Rate.Mul(decimal.NewFromInt(c.Qty))
		lines = append(lines, domain.OrderLine{
			ItemCode: c.ItemCode,
			ItemName: c.ItemName,
			Qty:      c.Qty,
			Rate:     c.Rate,
			Amount:   amount,
		})
		total = total.Add(amount)
	}

	return domain.OrderDraft{
		Company:  group.Company,
		Supplier: group.Supplier,
		Lines:    lines,
		Amount:   total,
		Submit:   submit,
	}
}

func supplierDistribution(groups []domain.OrderGroup) []domain.SupplierShare {
	shares := make([]domain.SupplierShare, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, domain.SupplierShare{
			Supplier:  g.Supplier,
			ItemCount: len(g.Candidates),
			Amount:    g.Amount,
		})
	}

	return shares
}

func totalAmount(groups []domain.OrderGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Amount)
	}

	return total
}

func buildInsights(items []domain.ProcurementCandidate, relaxation string) []string {
	var insights []string
	if relaxation != "" {
		insights = append(insights, relaxation)
	}

	urgent := 0
	fallback := 0
	for _, c := range items {
		if c.Urgency == domain.UrgencyUrgent {
			urgent++
		}
		if c.SupplierSource == domain.SourceSystemFallback {
			fallback++
		}
	}
	if urgent > 0 {
		insights = append(insights, fmt.Sprintf("%d items need urgent replenishment", urgent))
	}
	if fallback > 0 {
		insights = append(insights, fmt.Sprintf("%d items fell back to the placeholder supplier; review before committing", fallback))
	}

	return insights
}
