package inventory

import (
	"fmt"
	"math"
	"time"

	"lab_dashboard/internal/models"
)

const allOperational = "All systems operational"

// Aggregate counts computers by status and derives the operational
// percentage and tier for lab. Capacity the source did not report counts as
// not working. With no computers yet (fresh load) every count is zero, which
// yields 0%, TierError and no issue lines. A zero-capacity lab never divides
// by zero.
func Aggregate(lab models.Lab, computers []models.Computer, now time.Time) models.LabStats {
	stats := models.LabStats{
		LabID:       lab.ID,
		LastUpdated: now.UTC(),
	}

	for _, c := range computers {
		switch c.Status {
		case models.StatusWorking:
			stats.Working++
		case models.StatusMaintenance:
			stats.Maintenance++
		default:
			stats.NotWorking++
		}
	}
	if len(computers) > 0 {
		stats.NotWorking = max(stats.NotWorking, RemainingNotWorking(lab.TotalComputers, stats.Working, stats.Maintenance))
	}

	stats.OperationalPercentage = OperationalPercentage(stats.Working, lab.TotalComputers)
	stats.StatusTier = Classify(stats.OperationalPercentage)
	stats.Issues = summarizeIssues(stats)
	return stats
}

// OperationalPercentage returns round(working / max(total,1) * 100), clamped to [0,100].
func OperationalPercentage(working, total int) int {
	if total < 1 {
		total = 1
	}
	p := int(math.Round(float64(working) / float64(total) * 100))
	return ClampPercentage(p)
}

// RemainingNotWorking is total - working - maintenance, clamped at zero.
func RemainingNotWorking(total, working, maintenance int) int {
	return max(0, total-working-maintenance)
}

func summarizeIssues(s models.LabStats) []string {
	if s.Working+s.Maintenance+s.NotWorking == 0 {
		return nil
	}
	var issues []string
	if s.NotWorking > 0 {
		issues = append(issues, fmt.Sprintf("%d computer(s) not working", s.NotWorking))
	}
	if s.Maintenance > 0 {
		issues = append(issues, fmt.Sprintf("%d computer(s) under maintenance", s.Maintenance))
	}
	if len(issues) == 0 {
		return []string{allOperational}
	}
	return issues
}
