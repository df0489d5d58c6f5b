// Package inventory holds the pure status logic of the dashboard: tier
// classification, per-lab aggregation and the search/filter predicates.
package inventory

import "lab_dashboard/internal/models"

// Tier thresholds, checked in order; first match wins.
const (
	SuccessThreshold = 90
	WarningThreshold = 60
)

// Classify maps an operational percentage to a status tier. It is defined for
// every int; callers that may produce out-of-range values should clamp first.
func Classify(operationalPercentage int) models.StatusTier {
	if operationalPercentage >= SuccessThreshold {
		return models.TierSuccess
	}
	if operationalPercentage >= WarningThreshold {
		return models.TierWarning
	}
	return models.TierError
}

// ClampPercentage bounds p to [0,100].
func ClampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
