package usecase

import (
	"context"
	"errors"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/window"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotBookingOwner = errors.New("booking belongs to another user")
)

type CreateBookingParams struct {
	UserID          uuid.UUID
	CourtID         uuid.UUID
	Date            time.Time
	TimeSlot        string
	NumberOfPlayers int
	Participants    []uuid.UUID
}

type BookingUseCase interface {
	// CreateDirectBooking books a court immediately, bypassing the lottery.
	// Only dates inside the direct-booking window are accepted.
	CreateDirectBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) error

	// CheckCourtAvailable verifies court existence, activity and slot
	// availability. Usable standalone by collaborators sharing these rules.
	CheckCourtAvailable(ctx context.Context, courtID uuid.UUID, date time.Time, timeSlot string) error
	// CheckDeletable fails while active bookings still reference the court.
	CheckDeletable(ctx context.Context, courtID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	slotRepo shared.TimeSlotRepository
	window   *window.Validator
	clock    clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, slotRepo shared.TimeSlotRepository, win *window.Validator, clk clock.Clock) BookingUseCase {
	return &bookingUseCaseImpl{
		uow:      uow,
		slotRepo: slotRepo,
		window:   win,
		clock:    clk,
	}
}

func (u *bookingUseCaseImpl) CreateDirectBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error) {
	if err := u.window.ValidateDirectBookingWindow(params.Date); err != nil {
		return nil, err
	}
	if err := resolveSlot(ctx, u.slotRepo, params.Date, params.TimeSlot); err != nil {
		return nil, err
	}

	bk, err := booking.NewDirect(params.UserID, params.CourtID, params.Date, params.TimeSlot, params.NumberOfPlayers, params.Participants)
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := checkCourtAvailable(ctx, tx, params.CourtID, params.Date, params.TimeSlot); err != nil {
			return err
		}

		if err := tx.Bookings().Create(ctx, bk); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return court.ErrNotAvailable
			}
			return errs.Wrap(err, "failed to create booking")
		}

		// a direct winner is still a recent winner for fairness purposes
		counter, err := tx.UsageCounters().GetOrCreate(ctx, params.UserID, u.clock.Now())
		if err != nil {
			return errs.Wrap(err, "failed to load usage counter")
		}
		counter.Increment()
		return tx.UsageCounters().Save(ctx, counter)
	})
	if err != nil {
		return nil, err
	}
	return bk, nil
}

func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Wrap(err, "failed to find booking")
		}
		if bk.UserID() != userID {
			return ErrNotBookingOwner
		}
		if err := bk.Cancel(); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, bk)
	})
}

func (u *bookingUseCaseImpl) CompleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Wrap(err, "failed to find booking")
		}
		if err := bk.Complete(u.clock.Now()); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, bk)
	})
}

func (u *bookingUseCaseImpl) CheckCourtAvailable(ctx context.Context, courtID uuid.UUID, date time.Time, timeSlot string) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return checkCourtAvailable(ctx, tx, courtID, date, timeSlot)
	})
}

func (u *bookingUseCaseImpl) CheckDeletable(ctx context.Context, courtID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Courts().FindByID(ctx, courtID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return court.ErrNotFound
			}
			return errs.Wrap(err, "failed to find court")
		}
		active, err := tx.Bookings().HasActiveForCourt(ctx, courtID)
		if err != nil {
			return errs.Wrap(err, "failed to check court bookings")
		}
		if active {
			return court.ErrHasActiveBookings
		}
		return nil
	})
}

func checkCourtAvailable(ctx context.Context, tx shared.Tx, courtID uuid.UUID, date time.Time, timeSlot string) error {
	c, err := tx.Courts().FindByID(ctx, courtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return court.ErrNotFound
		}
		return errs.Wrap(err, "failed to find court")
	}
	if !c.IsActive {
		return court.ErrInactive
	}

	taken, err := tx.Bookings().IsSlotTaken(ctx, courtID, date, timeSlot)
	if err != nil {
		return errs.Wrap(err, "failed to check slot availability")
	}
	if taken {
		return court.ErrNotAvailable
	}
	return nil
}
