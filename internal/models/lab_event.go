package models

import "time"

// LabEvent is a single entry of the lab event log.
type LabEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	LabID       string    `json:"lab_id"`
	Type        string    `json:"type"`        // TIER_CHANGE | FETCH_ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
