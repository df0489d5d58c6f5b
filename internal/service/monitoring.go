package service

import (
	"context"
	"fmt"
	"time"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
	"lab_dashboard/internal/repository"
)

// ErrLabNotFound is returned for lab ids that are not configured.
var ErrLabNotFound = models.ErrLabNotFound

type MonitoringService struct {
	labRepo repository.LabRepo
	snaps   *Snapshots
	now     func() time.Time
}

func NewMonitoringService(labRepo repository.LabRepo, snaps *Snapshots) *MonitoringService {
	return &MonitoringService{labRepo: labRepo, snaps: snaps, now: time.Now}
}

// ListLabs returns one overview per lab matching query, in configuration
// order. A lab whose fetch fails is still listed, with Error set.
func (s *MonitoringService) ListLabs(ctx context.Context, query string) ([]models.LabOverview, error) {
	labs, err := s.labRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := inventory.FilterLabs(labs, query)
	out := make([]models.LabOverview, 0, len(filtered))
	for _, lab := range filtered {
		ov := models.LabOverview{Lab: lab}
		snap, err := s.snaps.Load(ctx, lab)
		if err != nil {
			ov.Stats.LabID = lab.ID
			ov.Error = err.Error()
		} else {
			ov.Stats = snap.Stats
			ov.LastUpdatedLabel = LastUpdatedLabel(snap.Stats.LastUpdated, now)
		}
		out = append(out, ov)
	}
	return out, nil
}

// GetLab returns the lab with its latest stats and every computer.
func (s *MonitoringService) GetLab(ctx context.Context, labID string) (models.LabDetail, error) {
	lab, err := s.lab(ctx, labID)
	if err != nil {
		return models.LabDetail{}, err
	}
	snap, err := s.snaps.Load(ctx, lab)
	if err != nil {
		return models.LabDetail{}, err
	}
	return models.LabDetail{Lab: lab, Stats: snap.Stats, Computers: snap.Computers}, nil
}

// ListComputers returns the lab's computers matching query and bucket.
func (s *MonitoringService) ListComputers(ctx context.Context, labID, query string, bucket inventory.Bucket) ([]models.Computer, error) {
	detail, err := s.GetLab(ctx, labID)
	if err != nil {
		return nil, err
	}
	return inventory.FilterComputers(detail.Computers, query, bucket), nil
}

// LoadLab fetches a fresh inventory for a lab view. Computers are narrowed to
// bucket; stats always cover the whole lab.
func (s *MonitoringService) LoadLab(ctx context.Context, labID string, bucket inventory.Bucket) (models.LabDetail, error) {
	lab, err := s.lab(ctx, labID)
	if err != nil {
		return models.LabDetail{}, err
	}
	snap, err := s.snaps.Refresh(ctx, lab)
	if err != nil {
		return models.LabDetail{}, err
	}
	return models.LabDetail{
		Lab:       lab,
		Stats:     snap.Stats,
		Computers: inventory.FilterComputers(snap.Computers, "", bucket),
	}, nil
}

func (s *MonitoringService) lab(ctx context.Context, labID string) (models.Lab, error) {
	lab, err := s.labRepo.Get(ctx, labID)
	if err != nil {
		return models.Lab{}, err
	}
	if lab == nil {
		return models.Lab{}, fmt.Errorf("%w: %q", ErrLabNotFound, labID)
	}
	return *lab, nil
}

// LastUpdatedLabel renders t relative to now: "Just now", "5m ago", "3h ago",
// or the date for anything older than a day.
func LastUpdatedLabel(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	mins := int(now.Sub(t) / time.Minute)
	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case mins < 24*60:
		return fmt.Sprintf("%dh ago", mins/60)
	default:
		return t.Format("1/2/2006")
	}
}
