package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"lab_dashboard/internal/models"
)

// Source is the inventory backend. Implementations must honour ctx
// cancellation and return exactly one attempt's result.
type Source interface {
	FetchComputers(ctx context.Context, lab models.Lab) ([]models.Computer, error)
}

// Generated computer attributes.
const (
	IssueHardware    = "Hardware issue"
	IssueMaintenance = "Needs maintenance"
	IssueNoResponse  = "Not responding"

	defaultMaintenanceMax = 2
	lastCheckedMaxDays    = 7
)

var defaultSpecs = models.Specs{
	CPU:     "Intel i5-10400",
	RAM:     "16GB",
	Storage: "512GB SSD",
	OS:      "Windows 10 Pro",
}

type MockSourceConfig struct {
	MinLatency     time.Duration
	MaxLatency     time.Duration
	MaintenanceMax int   // upper bound (inclusive) of computers under maintenance
	Seed           int64 // 0 seeds from the clock
}

// MockSource generates a random inventory for each fetch after a simulated
// delay. Every fetch returns exactly lab.TotalComputers machines.
type MockSource struct {
	cfg MockSourceConfig
	now func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

var _ Source = (*MockSource)(nil)

func NewMockSource(cfg MockSourceConfig) *MockSource {
	if cfg.MaxLatency < cfg.MinLatency {
		cfg.MaxLatency = cfg.MinLatency
	}
	if cfg.MaintenanceMax < 0 {
		cfg.MaintenanceMax = defaultMaintenanceMax
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockSource{
		cfg: cfg,
		now: time.Now,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (m *MockSource) FetchComputers(ctx context.Context, lab models.Lab) ([]models.Computer, error) {
	if err := m.wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch computers for %q: %w", lab.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	statuses := m.statuses(lab.TotalComputers)
	now := m.now().UTC()
	prefix := strings.ToUpper(lab.ID)

	out := make([]models.Computer, 0, len(statuses))
	for i, st := range statuses {
		id := fmt.Sprintf("PC-%02d", i+1)
		out = append(out, models.Computer{
			ID:          id,
			Name:        prefix + "-" + id,
			LabID:       lab.ID,
			Status:      st,
			LastChecked: now.Add(-time.Duration(m.rng.Intn(lastCheckedMaxDays)) * 24 * time.Hour),
			Issues:      issuesFor(st),
			Specs:       defaultSpecs,
		})
	}
	return out, nil
}

// statuses draws working in [0,total) and maintenance in [0,MaintenanceMax],
// clamping maintenance so the counts never exceed total. The rest are not
// working. Order is shuffled. Must be called with mu held.
func (m *MockSource) statuses(total int) []models.ComputerStatus {
	if total <= 0 {
		return nil
	}
	working := m.rng.Intn(total)
	maintenance := m.rng.Intn(m.cfg.MaintenanceMax + 1)
	if maintenance > total-working {
		maintenance = total - working
	}

	out := make([]models.ComputerStatus, total)
	for i := range out {
		switch {
		case i < working:
			out[i] = models.StatusWorking
		case i < working+maintenance:
			out[i] = models.StatusMaintenance
		default:
			out[i] = models.StatusNotWorking
		}
	}
	m.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (m *MockSource) wait(ctx context.Context) error {
	d := m.cfg.MinLatency
	if spread := m.cfg.MaxLatency - m.cfg.MinLatency; spread > 0 {
		m.mu.Lock()
		d += time.Duration(m.rng.Int63n(int64(spread) + 1))
		m.mu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func issuesFor(st models.ComputerStatus) []string {
	switch st {
	case models.StatusMaintenance:
		return []string{IssueHardware, IssueMaintenance}
	case models.StatusNotWorking:
		return []string{IssueNoResponse}
	default:
		return []string{}
	}
}
