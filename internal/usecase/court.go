package usecase

import (
	"context"
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CourtUseCase interface {
	ListActiveCourts(ctx context.Context) ([]*court.Court, error)
	// ListAvailableCourts returns active courts not yet occupied for the slot,
	// i.e. what a lottery execution for that slot would distribute.
	ListAvailableCourts(ctx context.Context, date time.Time, timeSlot string) ([]*court.Court, error)
}

type courtUseCaseImpl struct {
	uow       shared.UnitOfWork
	courtRepo shared.CourtRepository
}

func NewCourtUseCase(uow shared.UnitOfWork, courtRepo shared.CourtRepository) CourtUseCase {
	return &courtUseCaseImpl{
		uow:       uow,
		courtRepo: courtRepo,
	}
}

func (u *courtUseCaseImpl) ListActiveCourts(ctx context.Context) ([]*court.Court, error) {
	courts, err := u.courtRepo.FindActive(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list courts")
	}
	return courts, nil
}

func (u *courtUseCaseImpl) ListAvailableCourts(ctx context.Context, date time.Time, timeSlot string) ([]*court.Court, error) {
	var available []*court.Court
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		active, err := tx.Courts().FindActive(ctx)
		if err != nil {
			return errs.Wrap(err, "failed to list courts")
		}

		ids, err := availableCourtIDs(ctx, tx, active, date, timeSlot)
		if err != nil {
			return err
		}

		free := make(map[uuid.UUID]struct{}, len(ids))
		for _, id := range ids {
			free[id] = struct{}{}
		}
		for _, c := range active {
			if _, ok := free[c.ID]; ok {
				available = append(available, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return available, nil
}
