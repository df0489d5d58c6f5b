package models

import "time"

// StatusTier is the qualitative health label derived from the operational percentage.
type StatusTier string

const (
	TierSuccess StatusTier = "success"
	TierWarning StatusTier = "warning"
	TierError   StatusTier = "error"
)

// LabStats is recomputed on every refresh and never treated as the source of truth.
type LabStats struct {
	LabID                 string     `json:"labId"`
	Working               int        `json:"working"`
	Maintenance           int        `json:"maintenance"`
	NotWorking            int        `json:"notWorking"`
	OperationalPercentage int        `json:"operationalPercentage"` // 0..100
	StatusTier            StatusTier `json:"statusTier"`
	Issues                []string   `json:"issues,omitempty"`
	LastUpdated           time.Time  `json:"lastUpdated"`
}

// LabOverview is one card of the home listing.
type LabOverview struct {
	Lab              Lab      `json:"lab"`
	Stats            LabStats `json:"stats"`
	LastUpdatedLabel string   `json:"lastUpdatedLabel"`
	Error            string   `json:"error,omitempty"` // set when the lab could not be fetched
}

// LabDetail is the payload of a ready lab view.
type LabDetail struct {
	Lab       Lab        `json:"lab"`
	Stats     LabStats   `json:"stats"`
	Computers []Computer `json:"computers"`
}
