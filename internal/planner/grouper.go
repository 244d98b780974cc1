// internal/planner/grouper.go
package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// GroupBySupplier partitions candidates into one order group per selected
// supplier. Grouping is a pure partition: it creates no suppliers and never
// reassigns a candidate's supplier.
//
// Within a group, candidates sort by urgency tier (Urgent first) then
// amount descending. Groups order by aggregate amount descending, or by
// urgent-item count first when prioritizeCritical is set.
func GroupBySupplier(company string, candidates []domain.ProcurementCandidate, prioritizeCritical bool) []domain.OrderGroup {
	bySupplier := make(map[string][]domain.ProcurementCandidate)
	for _, c := range candidates {
		bySupplier[c.Supplier] = append(bySupplier[c.Supplier], c)
	}

	groups := make([]domain.OrderGroup, 0, len(bySupplier))
	for supplier, members := range bySupplier {
		sortCandidates(members)
		groups = append(groups, domain.OrderGroup{
			Supplier:   supplier,
			Company:    company,
			Candidates: members,
			Amount:     sumAmounts(members),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if prioritizeCritical {
			ui, uj := urgentCount(groups[i]), urgentCount(groups[j])
			if ui != uj {
				return ui > uj
			}
		}
		if cmp := groups[i].Amount.Cmp(groups[j].Amount); cmp != 0 {
			return cmp > 0
		}

		return groups[i].Supplier < groups[j].Supplier
	})

	return groups
}

// Consolidate places all candidates into a single supplier-less group, used
// when grouping by supplier is disabled and the operator wants one combined
// draft order.
func Consolidate(company string, candidates []domain.ProcurementCandidate) []domain.OrderGroup {
	if len(candidates) == 0 {
		return nil
	}

	members := append([]domain.ProcurementCandidate(nil), candidates...)
	sortCandidates(members)

	return []domain.OrderGroup{{
		Company:    company,
		Candidates: members,
		Amount:     sumAmounts(members),
	}}
}

func sortCandidates(members []domain.ProcurementCandidate) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := domain.UrgencyRank(members[i].Urgency), domain.UrgencyRank(members[j].Urgency)
		if ri != rj {
			return ri < rj
		}
		if cmp := members[i].Amount.Cmp(members[j].Amount); cmp != 0 {
			return cmp > 0
		}

		return members[i].ItemCode < members[j].ItemCode
	})
}

func sumAmounts(members []domain.ProcurementCandidate) decimal.Decimal {
	total := decimal.Zero
	for _, c := range members {
		total = total.Add(c.Amount)
	}

	return total
}

func urgentCount(g domain.OrderGroup) int {
	n := 0
	for _, c := range g.Candidates {
		if c.Urgency == domain.UrgencyUrgent {
			n++
		}
	}

	return n
}
