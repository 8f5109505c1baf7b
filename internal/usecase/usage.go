package usecase

import (
	"context"

	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// UsageUseCase exposes the fairness counter to collaborators (dashboards,
// profile views). Increments happen inside the allocation and direct-booking
// transactions, never here.
type UsageUseCase interface {
	GetUsageCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type usageUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUsageUseCase(uow shared.UnitOfWork, clk clock.Clock) UsageUseCase {
	return &usageUseCaseImpl{uow: uow, clock: clk}
}

// GetUsageCount applies the monthly reset before reading so callers never see
// a stale fairness signal. A first read creates a zeroed counter.
func (u *usageUseCaseImpl) GetUsageCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := u.clock.Now()
		counter, err := tx.UsageCounters().GetOrCreate(ctx, userID, now)
		if err != nil {
			return errs.Wrap(err, "failed to load usage counter")
		}
		if counter.ResetDue(now) {
			counter.Reset(now)
			if err := tx.UsageCounters().Save(ctx, counter); err != nil {
				return errs.Wrap(err, "failed to reset usage counter")
			}
		}
		count = counter.Count
		return nil
	})
	return count, err
}
