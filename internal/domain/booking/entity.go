package booking

import (
	"errors"
	"time"

	"court-booking/internal/domain/request"

	"github.com/google/uuid"
)

var (
	ErrNotFound              = errors.New("booking not found")
	ErrCannotCancelCompleted = errors.New("completed bookings cannot be cancelled")
	ErrNotConfirmed          = errors.New("booking is not confirmed")
	ErrNotElapsed            = errors.New("booking time has not elapsed yet")
)

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Booking occupies one (court, date, timeSlot) triple. It is created either
// directly inside the direct-booking window or by a lottery allocation, in
// which case RequestID links back to the winning request.
type Booking struct {
	id              uuid.UUID
	userID          uuid.UUID
	courtID         uuid.UUID
	requestID       *uuid.UUID
	date            time.Time
	timeSlot        string
	numberOfPlayers int
	status          Status
	participants    []uuid.UUID
	completedAt     *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewDirect creates a confirmed booking outside the lottery.
func NewDirect(userID, courtID uuid.UUID, date time.Time, timeSlot string, numberOfPlayers int, participants []uuid.UUID) (*Booking, error) {
	if err := request.ValidatePlayerCount(numberOfPlayers); err != nil {
		return nil, err
	}
	return &Booking{
		id:              uuid.New(),
		userID:          userID,
		courtID:         courtID,
		date:            date,
		timeSlot:        timeSlot,
		numberOfPlayers: numberOfPlayers,
		status:          StatusConfirmed,
		participants:    participants,
	}, nil
}

// NewFromRequest creates the booking a winning request is allocated to,
// copying players and participants from the request.
func NewFromRequest(req *request.Request, courtID uuid.UUID) *Booking {
	requestID := req.ID()
	return &Booking{
		id:              uuid.New(),
		userID:          req.UserID(),
		courtID:         courtID,
		requestID:       &requestID,
		date:            req.Date(),
		timeSlot:        req.TimeSlot(),
		numberOfPlayers: req.NumberOfPlayers(),
		status:          StatusConfirmed,
		participants:    req.Participants(),
	}
}

func Reconstruct(
	id, userID, courtID uuid.UUID,
	requestID *uuid.UUID,
	date time.Time,
	timeSlot string,
	numberOfPlayers int,
	status Status,
	participants []uuid.UUID,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		courtID:         courtID,
		requestID:       requestID,
		date:            date,
		timeSlot:        timeSlot,
		numberOfPlayers: numberOfPlayers,
		status:          status,
		participants:    participants,
		completedAt:     completedAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Cancel releases the slot. Completed bookings are terminal.
func (b *Booking) Cancel() error {
	switch b.status {
	case StatusCompleted:
		return ErrCannotCancelCompleted
	case StatusConfirmed:
		b.status = StatusCancelled
		return nil
	default:
		return ErrNotConfirmed
	}
}

// Complete marks a confirmed booking whose time has elapsed.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	if !now.After(b.StartsAt()) {
		return ErrNotElapsed
	}
	b.status = StatusCompleted
	b.completedAt = &now
	return nil
}

// StartsAt resolves the booking's date and slot key ("18:00") into a concrete
// start time.
func (b *Booking) StartsAt() time.Time {
	start, err := time.Parse("15:04", b.timeSlot)
	if err != nil {
		return b.date
	}
	return time.Date(b.date.Year(), b.date.Month(), b.date.Day(),
		start.Hour(), start.Minute(), 0, 0, b.date.Location())
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed || b.status == StatusCompleted
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) UserID() uuid.UUID         { return b.userID }
func (b *Booking) CourtID() uuid.UUID        { return b.courtID }
func (b *Booking) RequestID() *uuid.UUID     { return b.requestID }
func (b *Booking) Date() time.Time           { return b.date }
func (b *Booking) TimeSlot() string          { return b.timeSlot }
func (b *Booking) NumberOfPlayers() int      { return b.numberOfPlayers }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) Participants() []uuid.UUID { return b.participants }
func (b *Booking) CompletedAt() *time.Time   { return b.completedAt }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }
