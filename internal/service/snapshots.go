package service

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/models"
)

// LabSnapshot is the latest fetched inventory of one lab and its stats.
type LabSnapshot struct {
	Stats     models.LabStats
	Computers []models.Computer
}

// Snapshots keeps the most recent LabSnapshot per lab in memory. Entries
// expire after ttl so a stalled refresher does not serve old data forever.
type Snapshots struct {
	source Source
	cache  *cache.Cache
	now    func() time.Time
}

func NewSnapshots(source Source, ttl time.Duration) *Snapshots {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Snapshots{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
		now:    time.Now,
	}
}

// Get returns the cached snapshot for labID, if any.
func (s *Snapshots) Get(labID string) (LabSnapshot, bool) {
	v, ok := s.cache.Get(labID)
	if !ok {
		return LabSnapshot{}, false
	}
	snap, ok := v.(LabSnapshot)
	return snap, ok
}

// Refresh fetches the lab from the source, aggregates it and stores the
// result. On error the previous snapshot is left in place.
func (s *Snapshots) Refresh(ctx context.Context, lab models.Lab) (LabSnapshot, error) {
	computers, err := s.source.FetchComputers(ctx, lab)
	if err != nil {
		return LabSnapshot{}, err
	}
	snap := LabSnapshot{
		Stats:     inventory.Aggregate(lab, computers, s.now().UTC()),
		Computers: computers,
	}
	s.cache.SetDefault(lab.ID, snap)
	return snap, nil
}

// Load returns the cached snapshot or fetches one on a miss.
func (s *Snapshots) Load(ctx context.Context, lab models.Lab) (LabSnapshot, error) {
	if snap, ok := s.Get(lab.ID); ok {
		return snap, nil
	}
	return s.Refresh(ctx, lab)
}
