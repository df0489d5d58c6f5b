package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lab_dashboard/internal/models"
)

type LabSQLite struct {
	db *sql.DB
}

func NewLabSQLite(db *sql.DB) *LabSQLite {
	return &LabSQLite{db: db}
}

var _ LabRepo = (*LabSQLite)(nil)

const (
	upsertLabSQL = `
		INSERT INTO labs (id, name, location, in_charge, total_computers, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			location=excluded.location,
			in_charge=excluded.in_charge,
			total_computers=excluded.total_computers,
			last_updated=excluded.last_updated
	`

	selectLabsSQL = `
		SELECT id, name, location, in_charge, total_computers, last_updated
		FROM labs ORDER BY rowid ASC
	`

	selectLabByIDSQL = `
		SELECT id, name, location, in_charge, total_computers, last_updated
		FROM labs WHERE id=?
	`
)

// SaveAll upserts the configured labs in one transaction. Configuration order
// is kept because rowid follows insertion order.
func (r *LabSQLite) SaveAll(ctx context.Context, labs []models.Lab) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin labs transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, lab := range labs {
		updated := lab.LastUpdated
		if updated.IsZero() {
			updated = time.Now()
		}
		if _, err := tx.ExecContext(ctx, upsertLabSQL,
			lab.ID,
			lab.Name,
			lab.Location,
			lab.InCharge,
			lab.TotalComputers,
			updated.UTC(),
		); err != nil {
			return fmt.Errorf("upsert lab %q: %w", lab.ID, err)
		}
	}
	return tx.Commit()
}

// List returns every lab in configuration order.
func (r *LabSQLite) List(ctx context.Context) ([]models.Lab, error) {
	rows, err := r.db.QueryContext(ctx, selectLabsSQL)
	if err != nil {
		return nil, fmt.Errorf("select labs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Lab, 0, 8)
	for rows.Next() {
		lab, err := scanLab(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lab)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the lab with the given id, or (nil, nil) when there is none.
func (r *LabSQLite) Get(ctx context.Context, id string) (*models.Lab, error) {
	lab, err := scanLab(r.db.QueryRowContext(ctx, selectLabByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select lab %q: %w", id, err)
	}
	return &lab, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLab(row rowScanner) (models.Lab, error) {
	var lab models.Lab
	if err := row.Scan(
		&lab.ID,
		&lab.Name,
		&lab.Location,
		&lab.InCharge,
		&lab.TotalComputers,
		&lab.LastUpdated,
	); err != nil {
		return models.Lab{}, err
	}
	lab.LastUpdated = lab.LastUpdated.UTC()
	return lab, nil
}
