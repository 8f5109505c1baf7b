package repository

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra/db"

	"github.com/google/uuid"
)

type CourtRepository struct {
	db db.DBTX
}

func NewCourtRepository(dbtx db.DBTX) *CourtRepository {
	return &CourtRepository{db: dbtx}
}

func (r *CourtRepository) FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error) {
	const query = `
		SELECT id, name, is_active, created_at
		FROM courts
		WHERE id = $1`

	var c court.Court
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, wrapPgErr("failed to find court", err)
	}
	return &c, nil
}

// FindActive orders by name so draw court assignment is deterministic given a
// fixed seed.
func (r *CourtRepository) FindActive(ctx context.Context) ([]*court.Court, error) {
	const query = `
		SELECT id, name, is_active, created_at
		FROM courts
		WHERE is_active
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, wrapPgErr("failed to list active courts", err)
	}
	defer rows.Close()

	var courts []*court.Court
	for rows.Next() {
		var c court.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, wrapPgErr("failed to scan court", err)
		}
		courts = append(courts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read courts", err)
	}
	return courts, nil
}

func (r *CourtRepository) Update(ctx context.Context, c *court.Court) error {
	const query = `
		UPDATE courts
		SET name = $2, is_active = $3
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, c.ID, c.Name, c.IsActive); err != nil {
		return wrapPgErr("failed to update court", err)
	}
	return nil
}
