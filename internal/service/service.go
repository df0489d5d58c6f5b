package service

import (
	"context"
	"time"

	"lab_dashboard/internal/inventory"
	"lab_dashboard/internal/logger"
	"lab_dashboard/internal/models"
	"lab_dashboard/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (models.Session, error)
}

// Monitoring exposes the read-only dashboard view-models.
type Monitoring interface {
	ListLabs(ctx context.Context, query string) ([]models.LabOverview, error)
	GetLab(ctx context.Context, labID string) (models.LabDetail, error)
	ListComputers(ctx context.Context, labID, query string, bucket inventory.Bucket) ([]models.Computer, error)
	LoadLab(ctx context.Context, labID string, bucket inventory.Bucket) (models.LabDetail, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.LabEvent, error)
}

// Refresher runs the background loop that re-fetches every lab.
// Stop via context cancellation in main() for graceful shutdown.
type Refresher interface {
	Run(ctx context.Context, interval time.Duration)
	RefreshAll(ctx context.Context, now time.Time)
}

type Service struct {
	Monitoring
	EventLog
	Refresher
	Authorization
}

// Options carries the settings services take from configuration.
type Options struct {
	SigningKey  string
	TokenTTL    time.Duration
	SnapshotTTL time.Duration
}

// NewService wires the repository layer and the inventory source into
// concrete services. Monitoring and Refresher share one snapshot cache.
func NewService(repos *repository.Repository, source Source, log *logger.Logger, opts Options) *Service {
	snaps := NewSnapshots(source, opts.SnapshotTTL)
	return &Service{
		Monitoring:    NewMonitoringService(repos.LabRepo, snaps),
		EventLog:      NewEventLogService(repos.EventRepo),
		Refresher:     NewRefresherService(repos.LabRepo, repos.EventRepo, snaps, log),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
