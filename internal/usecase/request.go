package usecase

import (
	"context"
	"errors"
	"time"

	"court-booking/internal/domain/request"
	"court-booking/internal/domain/timeslot"
	"court-booking/internal/domain/window"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errors.New("booking request not found")
	ErrNotRequestOwner = errors.New("request belongs to another user")
)

type CreateRequestParams struct {
	UserID          uuid.UUID
	Date            time.Time
	TimeSlot        string
	NumberOfPlayers int
	Participants    []uuid.UUID
}

type RequestUseCase interface {
	CreateRequest(ctx context.Context, params CreateRequestParams) (*request.Request, error)
	WithdrawRequest(ctx context.Context, requestID, userID uuid.UUID) error
}

type requestUseCaseImpl struct {
	uow      shared.UnitOfWork
	slotRepo shared.TimeSlotRepository
	window   *window.Validator
}

func NewRequestUseCase(uow shared.UnitOfWork, slotRepo shared.TimeSlotRepository, win *window.Validator) RequestUseCase {
	return &requestUseCaseImpl{
		uow:      uow,
		slotRepo: slotRepo,
		window:   win,
	}
}

// CreateRequest places an advance request destined for the lottery. The date
// must fall inside the request window and a user may hold only one pending
// request per slot.
func (u *requestUseCaseImpl) CreateRequest(ctx context.Context, params CreateRequestParams) (*request.Request, error) {
	if err := u.window.ValidateRequestWindow(params.Date); err != nil {
		return nil, err
	}
	if err := resolveSlot(ctx, u.slotRepo, params.Date, params.TimeSlot); err != nil {
		return nil, err
	}

	req, err := request.New(params.UserID, params.Date, params.TimeSlot, params.NumberOfPlayers, params.Participants)
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pending, err := tx.Requests().HasPending(ctx, params.UserID, params.Date, params.TimeSlot)
		if err != nil {
			return errs.Wrap(err, "failed to check pending requests")
		}
		if pending {
			return request.ErrDuplicateRequest
		}

		if err := tx.Requests().Create(ctx, req); err != nil {
			// partial unique index backs the same rule
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return request.ErrDuplicateRequest
			}
			return errs.Wrap(err, "failed to create request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// WithdrawRequest cancels a pending request. Confirmed requests are terminal;
// cancelling the linked booking is a separate operation.
func (u *requestUseCaseImpl) WithdrawRequest(ctx context.Context, requestID, userID uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRequestNotFound
			}
			return errs.Wrap(err, "failed to find request")
		}
		if req.UserID() != userID {
			return ErrNotRequestOwner
		}
		if err := req.Withdraw(); err != nil {
			return err
		}
		return tx.Requests().Update(ctx, req)
	})
}

// resolveSlot rejects slot keys that have no weekly template for the date's
// weekday.
func resolveSlot(ctx context.Context, repo shared.TimeSlotRepository, date time.Time, startTime string) error {
	_, err := repo.FindByDayAndStart(ctx, int(date.Weekday()), startTime)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return timeslot.ErrUnknownSlot
		}
		return errs.Wrap(err, "failed to resolve time slot")
	}
	return nil
}
