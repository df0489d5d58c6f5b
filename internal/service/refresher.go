package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lab_dashboard/internal/logger"
	"lab_dashboard/internal/models"
	"lab_dashboard/internal/poller"
	"lab_dashboard/internal/repository"
)

// DefaultRefreshInterval matches the listing's polling cadence.
const DefaultRefreshInterval = 30 * time.Second

// RefresherService re-fetches every lab on a fixed cadence and records tier
// changes and fetch failures in the lab event log.
type RefresherService struct {
	labRepo   repository.LabRepo
	eventRepo repository.EventRepo
	snaps     *Snapshots
	log       *logger.Logger
}

func NewRefresherService(labRepo repository.LabRepo, eventRepo repository.EventRepo, snaps *Snapshots, log *logger.Logger) *RefresherService {
	return &RefresherService{
		labRepo:   labRepo,
		eventRepo: eventRepo,
		snaps:     snaps,
		log:       log,
	}
}

// Run refreshes immediately and then every interval until ctx is canceled.
func (s *RefresherService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	h := poller.Start(interval, func(now time.Time) {
		if ctx.Err() != nil {
			return
		}
		s.RefreshAll(ctx, now)
	})
	defer h.Cancel()
	<-ctx.Done()
}

// RefreshAll refreshes each lab in turn. A failing lab keeps its previous
// snapshot and does not stop the others.
func (s *RefresherService) RefreshAll(ctx context.Context, now time.Time) {
	labs, err := s.labRepo.List(ctx)
	if err != nil {
		s.log.Errorw("refresh_list_labs_failed", "err", err)
		return
	}
	for _, lab := range labs {
		if ctx.Err() != nil {
			return
		}
		s.refreshLab(ctx, lab, now)
	}
}

func (s *RefresherService) refreshLab(ctx context.Context, lab models.Lab, now time.Time) {
	prev, hadPrev := s.snaps.Get(lab.ID)

	snap, err := s.snaps.Refresh(ctx, lab)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Errorw("refresh_failed", "lab_id", lab.ID, "err", err)
		s.appendEvent(ctx, models.LabEvent{
			OccurredAt:  now.UTC(),
			LabID:       lab.ID,
			Type:        EventFetchError,
			Description: "Inventory fetch failed",
			Metadata:    map[string]any{"error": err.Error()},
		})
		return
	}

	s.log.Debugw("lab_refreshed",
		"lab_id", lab.ID,
		"working", snap.Stats.Working,
		"operational_percentage", snap.Stats.OperationalPercentage,
		"status_tier", snap.Stats.StatusTier,
	)

	if hadPrev && prev.Stats.StatusTier != snap.Stats.StatusTier {
		s.log.Infow("lab_tier_changed", "lab_id", lab.ID, "from", prev.Stats.StatusTier, "to", snap.Stats.StatusTier)
		s.appendEvent(ctx, models.LabEvent{
			OccurredAt:  now.UTC(),
			LabID:       lab.ID,
			Type:        EventTierChange,
			Description: fmt.Sprintf("Status changed from %s to %s", prev.Stats.StatusTier, snap.Stats.StatusTier),
			Metadata: map[string]any{
				"from":                   string(prev.Stats.StatusTier),
				"to":                     string(snap.Stats.StatusTier),
				"operational_percentage": snap.Stats.OperationalPercentage,
			},
		})
	}
}

func (s *RefresherService) appendEvent(ctx context.Context, e models.LabEvent) {
	e.EventID = uuid.NewString()
	if err := s.eventRepo.Append(ctx, e); err != nil {
		s.log.Errorw("append_lab_event_failed", "lab_id", e.LabID, "type", e.Type, "err", err)
	}
}
