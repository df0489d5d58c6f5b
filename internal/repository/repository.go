package repository

import (
	"context"
	"database/sql"
	"time"

	"lab_dashboard/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// LabRepo stores the configured labs.
type LabRepo interface {
	SaveAll(ctx context.Context, labs []models.Lab) error
	List(ctx context.Context) ([]models.Lab, error)
	Get(ctx context.Context, id string) (*models.Lab, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.LabEvent) error
	List(ctx context.Context, from, to time.Time, typ, labID string) ([]models.LabEvent, error)
}

type Repository struct {
	LabRepo   LabRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		LabRepo:   NewLabSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
