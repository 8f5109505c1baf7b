package repository

import (
	"context"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const bookingColumns = `id, user_id, court_id, request_id, date, time_slot, number_of_players, status, participants, completed_at, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.UserID(), b.CourtID(), b.RequestID(), b.Date(), b.TimeSlot(),
		b.NumberOfPlayers(), b.Status(), b.Participants(), b.CompletedAt())
	if err != nil {
		return wrapPgErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1`

	var (
		bid, userID, courtID uuid.UUID
		requestID            *uuid.UUID
		date                 time.Time
		timeSlot             string
		numberOfPlayers      int
		status               string
		participants         []uuid.UUID
		completedAt          *time.Time
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bid, &userID, &courtID, &requestID, &date, &timeSlot,
		&numberOfPlayers, &status, &participants, &completedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, wrapPgErr("failed to find booking", err)
	}

	return booking.Reconstruct(
		bid, userID, courtID, requestID, date, timeSlot, numberOfPlayers,
		booking.Status(status), participants, completedAt, createdAt, updatedAt,
	), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET status = $2, completed_at = $3, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, b.ID(), b.Status(), b.CompletedAt()); err != nil {
		return wrapPgErr("failed to update booking", err)
	}
	return nil
}

func (r *BookingRepository) OccupiedCourtIDs(ctx context.Context, date time.Time, timeSlot string) ([]uuid.UUID, error) {
	const query = `
		SELECT court_id
		FROM bookings
		WHERE date = $1 AND time_slot = $2 AND status IN ('CONFIRMED', 'COMPLETED')`

	rows, err := r.db.Query(ctx, query, date, timeSlot)
	if err != nil {
		return nil, wrapPgErr("failed to list occupied courts", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, wrapPgErr("failed to scan court id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read occupied courts", err)
	}
	return ids, nil
}

func (r *BookingRepository) IsSlotTaken(ctx context.Context, courtID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND date = $2 AND time_slot = $3
			  AND status IN ('CONFIRMED', 'COMPLETED')
		)`

	var taken bool
	if err := r.db.QueryRow(ctx, query, courtID, date, timeSlot).Scan(&taken); err != nil {
		return false, wrapPgErr("failed to check slot", err)
	}
	return taken, nil
}

func (r *BookingRepository) HasActiveForCourt(ctx context.Context, courtID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND status IN ('CONFIRMED', 'COMPLETED')
		)`

	var active bool
	if err := r.db.QueryRow(ctx, query, courtID).Scan(&active); err != nil {
		return false, wrapPgErr("failed to check court bookings", err)
	}
	return active, nil
}
