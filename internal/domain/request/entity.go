package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("booking request not found")
	ErrInvalidPlayerCount = errors.New("number of players must be between 2 and 4")
	ErrWrongParticipants  = errors.New("participants must be one less than number of players")
	ErrDuplicateRequest   = errors.New("a pending request already exists for this slot")
	ErrNotPending         = errors.New("booking request is not pending")
	ErrInvalidWeight      = errors.New("draw weight must be positive")
)

type Status string

const (
	StatusRequested Status = "REQUESTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Request is an advance booking request destined for the lottery. It is
// consumed by a draw execution: either confirmed with a linked booking, left
// pending for a later execution, or cancelled by withdrawal.
type Request struct {
	id              uuid.UUID
	userID          uuid.UUID
	date            time.Time
	timeSlot        string
	numberOfPlayers int
	status          Status
	weight          float64
	participants    []uuid.UUID
	createdAt       time.Time
	updatedAt       time.Time
}

func New(userID uuid.UUID, date time.Time, timeSlot string, numberOfPlayers int, participants []uuid.UUID) (*Request, error) {
	if err := ValidatePlayerCount(numberOfPlayers); err != nil {
		return nil, err
	}
	if len(participants) != numberOfPlayers-1 {
		return nil, ErrWrongParticipants
	}

	return &Request{
		id:              uuid.New(),
		userID:          userID,
		date:            date,
		timeSlot:        timeSlot,
		numberOfPlayers: numberOfPlayers,
		status:          StatusRequested,
		participants:    participants,
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	date time.Time,
	timeSlot string,
	numberOfPlayers int,
	status Status,
	weight float64,
	participants []uuid.UUID,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:              id,
		userID:          userID,
		date:            date,
		timeSlot:        timeSlot,
		numberOfPlayers: numberOfPlayers,
		status:          status,
		weight:          weight,
		participants:    participants,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ValidatePlayerCount is shared with the direct-booking path.
func ValidatePlayerCount(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return ErrInvalidPlayerCount
	}
	return nil
}

// SetWeight records the fairness weight computed for the next draw.
func (r *Request) SetWeight(w float64) error {
	if w <= 0 {
		return ErrInvalidWeight
	}
	r.weight = w
	return nil
}

// Confirm marks the request as won. Only pending requests may transition.
func (r *Request) Confirm() error {
	if r.status != StatusRequested {
		return ErrNotPending
	}
	r.status = StatusConfirmed
	return nil
}

// Withdraw cancels a pending request. Confirmed and cancelled requests are
// terminal.
func (r *Request) Withdraw() error {
	if r.status != StatusRequested {
		return ErrNotPending
	}
	r.status = StatusCancelled
	return nil
}

func (r *Request) IsPending() bool { return r.status == StatusRequested }

func (r *Request) ID() uuid.UUID              { return r.id }
func (r *Request) UserID() uuid.UUID          { return r.userID }
func (r *Request) Date() time.Time            { return r.date }
func (r *Request) TimeSlot() string           { return r.timeSlot }
func (r *Request) NumberOfPlayers() int       { return r.numberOfPlayers }
func (r *Request) Status() Status             { return r.status }
func (r *Request) Weight() float64            { return r.weight }
func (r *Request) Participants() []uuid.UUID  { return r.participants }
func (r *Request) CreatedAt() time.Time       { return r.createdAt }
func (r *Request) UpdatedAt() time.Time       { return r.updatedAt }
