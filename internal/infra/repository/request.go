package repository

import (
	"context"
	"time"

	"court-booking/internal/domain/request"
	"court-booking/internal/infra/db"

	"github.com/google/uuid"
)

type RequestRepository struct {
	db db.DBTX
}

func NewRequestRepository(dbtx db.DBTX) *RequestRepository {
	return &RequestRepository{db: dbtx}
}

const requestColumns = `id, user_id, date, time_slot, number_of_players, status, weight, participants, created_at, updated_at`

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	const query = `
		INSERT INTO booking_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

	_, err := r.db.Exec(ctx, query,
		req.ID(), req.UserID(), req.Date(), req.TimeSlot(),
		req.NumberOfPlayers(), req.Status(), req.Weight(), req.Participants())
	if err != nil {
		return wrapPgErr("failed to create booking request", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	const query = `
		SELECT ` + requestColumns + `
		FROM booking_requests
		WHERE id = $1`

	return scanRequest(r.db.QueryRow(ctx, query, id))
}

func (r *RequestRepository) FindPendingForSlot(ctx context.Context, date time.Time, timeSlot string) ([]*request.Request, error) {
	const query = `
		SELECT ` + requestColumns + `
		FROM booking_requests
		WHERE date = $1 AND time_slot = $2 AND status = 'REQUESTED'
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, date, timeSlot)
	if err != nil {
		return nil, wrapPgErr("failed to list pending requests", err)
	}
	defer rows.Close()

	var requests []*request.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read pending requests", err)
	}
	return requests, nil
}

func (r *RequestRepository) CountPendingForSlot(ctx context.Context, date time.Time, timeSlot string) (int, error) {
	const query = `
		SELECT count(*)
		FROM booking_requests
		WHERE date = $1 AND time_slot = $2 AND status = 'REQUESTED'`

	var count int
	if err := r.db.QueryRow(ctx, query, date, timeSlot).Scan(&count); err != nil {
		return 0, wrapPgErr("failed to count pending requests", err)
	}
	return count, nil
}

func (r *RequestRepository) HasPending(ctx context.Context, userID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM booking_requests
			WHERE user_id = $1 AND date = $2 AND time_slot = $3 AND status = 'REQUESTED'
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, date, timeSlot).Scan(&exists); err != nil {
		return false, wrapPgErr("failed to check pending request", err)
	}
	return exists, nil
}

func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	const query = `
		UPDATE booking_requests
		SET status = $2, weight = $3, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, req.ID(), req.Status(), req.Weight()); err != nil {
		return wrapPgErr("failed to update booking request", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*request.Request, error) {
	var (
		id, userID      uuid.UUID
		date            time.Time
		timeSlot        string
		numberOfPlayers int
		status          string
		weight          float64
		participants    []uuid.UUID
		createdAt       time.Time
		updatedAt       time.Time
	)
	err := row.Scan(&id, &userID, &date, &timeSlot, &numberOfPlayers, &status, &weight, &participants, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapPgErr("failed to scan booking request", err)
	}

	return request.Reconstruct(
		id, userID, date, timeSlot, numberOfPlayers,
		request.Status(status), weight, participants, createdAt, updatedAt,
	), nil
}
