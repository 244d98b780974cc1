package domain

import "strings"

// Movement classifies an item's historical consumption velocity.
type Movement string

const (
	MovementFast      Movement = "Fast Moving"
	MovementSlow      Movement = "Slow Moving"
	MovementNonMoving Movement = "Non Moving"
	MovementCritical  Movement = "Critical"
)

var movementLabels = map[string]Movement{
	"fast moving": MovementFast,
	"fast":        MovementFast,
	"slow moving": MovementSlow,
	"slow":        MovementSlow,
	"non moving":  MovementNonMoving,
	"non-moving":  MovementNonMoving,
	"critical":    MovementCritical,
}

// ParseMovement returns the movement classification for a label (case-insensitive).
func ParseMovement(label string) (Movement, bool) {
	m, ok := movementLabels[strings.ToLower(strings.TrimSpace(label))]

	return m, ok
}

// UrgencyTier is the priority bucket assigned to a procurement candidate.
type UrgencyTier string

const (
	UrgencyUrgent UrgencyTier = "Urgent"
	UrgencyHigh   UrgencyTier = "High"
	UrgencyMedium UrgencyTier = "Medium"
	UrgencyLow    UrgencyTier = "Low"
)

var urgencyRank = map[UrgencyTier]int{
	UrgencyUrgent: 0,
	UrgencyHigh:   1,
	UrgencyMedium: 2,
	UrgencyLow:    3,
}

// UrgencyRank returns the sort rank of a tier, Urgent first. Unknown tiers
// sort last.
func UrgencyRank(t UrgencyTier) int {
	if r, ok := urgencyRank[t]; ok {
		return r
	}

	return len(urgencyRank)
}

// SupplierSource identifies which level of the selection cascade produced a
// supplier option.
type SupplierSource string

const (
	SourceForecastPreferred SupplierSource = "forecast_preferred"
	SourceItemDefault       SupplierSource = "item_default"
	SourceRecentPurchase    SupplierSource = "recent_purchase"
	SourceSystemFallback    SupplierSource = "system_fallback"
)

// SourceConfidence returns the fixed confidence weight of a cascade level.
func SourceConfidence(s SupplierSource) float64 {
	switch s {
	case SourceForecastPreferred:
		return 75
	case SourceItemDefault:
		return 60
	case SourceRecentPurchase:
		return 50
	default:
		return 30
	}
}

// SessionState is the lifecycle state of a preview session.
type SessionState string

const (
	SessionDraft     SessionState = "Draft"
	SessionPreviewed SessionState = "Previewed"
	SessionCommitted SessionState = "Committed"
	SessionCancelled SessionState = "Cancelled"
	SessionExpired   SessionState = "Expired"
)
