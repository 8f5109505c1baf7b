package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/request"
	"court-booking/internal/domain/timeslot"
	"court-booking/internal/domain/usage"
	"court-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Courts() CourtRepository
	Requests() RequestRepository
	Bookings() BookingRepository
	UsageCounters() UsageCounterRepository

	// TryLockSlot serializes lottery executions for one (date, timeSlot).
	// The lock is transaction-scoped; false means another execution holds it.
	TryLockSlot(ctx context.Context, date time.Time, timeSlot string) (bool, error)
}

type CourtRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*court.Court, error)
	FindActive(ctx context.Context) ([]*court.Court, error)
	Update(ctx context.Context, c *court.Court) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *request.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*request.Request, error)
	FindPendingForSlot(ctx context.Context, date time.Time, timeSlot string) ([]*request.Request, error)
	CountPendingForSlot(ctx context.Context, date time.Time, timeSlot string) (int, error)
	HasPending(ctx context.Context, userID uuid.UUID, date time.Time, timeSlot string) (bool, error)
	Update(ctx context.Context, req *request.Request) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	// OccupiedCourtIDs returns courts holding a CONFIRMED or COMPLETED
	// booking for the slot.
	OccupiedCourtIDs(ctx context.Context, date time.Time, timeSlot string) ([]uuid.UUID, error)
	IsSlotTaken(ctx context.Context, courtID uuid.UUID, date time.Time, timeSlot string) (bool, error)
	HasActiveForCourt(ctx context.Context, courtID uuid.UUID) (bool, error)
}

type UsageCounterRepository interface {
	// GetOrCreate returns the user's counter, creating a zeroed one on first
	// use. Rows are locked for the transaction so concurrent slot executions
	// increment atomically.
	GetOrCreate(ctx context.Context, userID uuid.UUID, now time.Time) (*usage.Counter, error)
	Save(ctx context.Context, counter *usage.Counter) error
}

type TimeSlotRepository interface {
	FindByDayAndStart(ctx context.Context, dayOfWeek int, startTime string) (*timeslot.TimeSlot, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}
