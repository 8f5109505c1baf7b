package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/lottery"
	"court-booking/internal/domain/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotteryInProgress = errors.New("a lottery for this slot is already executing")
	ErrNoActiveCourts    = errors.New("no active courts")
)

// LotteryResult reports one execution. Assigning fewer bookings than requests
// is a normal outcome, not an error: unassigned requests stay pending for the
// next execution.
type LotteryResult struct {
	Date             time.Time
	TimeSlot         string
	TotalRequests    int
	AssignedBookings int
	Bookings         []*booking.Booking
}

type LotteryUseCase interface {
	ExecuteLottery(ctx context.Context, date time.Time, timeSlot string) (*LotteryResult, error)
	GetPendingCount(ctx context.Context, date time.Time, timeSlot string) (int, error)
}

// RandFactory yields a fresh randomness source per execution. Executions for
// different slots may run in parallel and rand.Rand is not goroutine-safe, so
// engines never share one.
type RandFactory func() *rand.Rand

type lotteryUseCaseImpl struct {
	uow         shared.UnitOfWork
	requestRepo shared.RequestRepository
	weightFn    lottery.WeightFunc
	newRand     RandFactory
	clock       clock.Clock
}

func NewLotteryUseCase(
	uow shared.UnitOfWork,
	requestRepo shared.RequestRepository,
	weightFn lottery.WeightFunc,
	newRand RandFactory,
	clk clock.Clock,
) LotteryUseCase {
	return &lotteryUseCaseImpl{
		uow:         uow,
		requestRepo: requestRepo,
		weightFn:    weightFn,
		newRand:     newRand,
		clock:       clk,
	}
}

// ExecuteLottery runs the weighted draw for one (date, timeSlot) and commits
// its outcome in a single transaction: bookings created, winning requests
// confirmed, usage counters incremented. A concurrent execution for the same
// slot is rejected with ErrLotteryInProgress.
func (u *lotteryUseCaseImpl) ExecuteLottery(ctx context.Context, date time.Time, timeSlot string) (*LotteryResult, error) {
	result := &LotteryResult{Date: date, TimeSlot: timeSlot}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Within retries the closure after a serialization failure; the
		// rolled-back attempt's assignments must not carry into the next one.
		result.TotalRequests = 0
		result.AssignedBookings = 0
		result.Bookings = nil

		locked, err := tx.TryLockSlot(ctx, date, timeSlot)
		if err != nil {
			return errs.Wrap(err, "failed to acquire slot lock")
		}
		if !locked {
			return ErrLotteryInProgress
		}

		pending, err := tx.Requests().FindPendingForSlot(ctx, date, timeSlot)
		if err != nil {
			return errs.Wrap(err, "failed to load pending requests")
		}
		result.TotalRequests = len(pending)
		if len(pending) == 0 {
			return nil
		}

		active, err := tx.Courts().FindActive(ctx)
		if err != nil {
			return errs.Wrap(err, "failed to load courts")
		}
		if len(active) == 0 {
			return ErrNoActiveCourts
		}

		available, err := availableCourtIDs(ctx, tx, active, date, timeSlot)
		if err != nil {
			return err
		}
		if len(available) == 0 {
			// every active court already taken; requests stay pending
			return nil
		}

		candidates, byID, err := u.weighCandidates(ctx, tx, pending)
		if err != nil {
			return err
		}

		engine := lottery.NewEngine(u.newRand())
		assignments, err := engine.Draw(candidates, available)
		if err != nil {
			return errs.Wrap(err, "draw failed")
		}

		for _, a := range assignments {
			created, err := u.allocate(ctx, tx, byID[a.RequestID], a.CourtID)
			if err != nil {
				return err
			}
			if created != nil {
				result.Bookings = append(result.Bookings, created)
				result.AssignedBookings++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("lottery executed",
		"date", date.Format("2006-01-02"),
		"time_slot", timeSlot,
		"total_requests", result.TotalRequests,
		"assigned", result.AssignedBookings)
	return result, nil
}

// GetPendingCount is the dashboard read path: how many requests a lottery run
// for this slot would consider.
func (u *lotteryUseCaseImpl) GetPendingCount(ctx context.Context, date time.Time, timeSlot string) (int, error) {
	count, err := u.requestRepo.CountPendingForSlot(ctx, date, timeSlot)
	if err != nil {
		return 0, errs.Wrap(err, "failed to count pending requests")
	}
	return count, nil
}

func availableCourtIDs(
	ctx context.Context,
	tx shared.Tx,
	active []*court.Court,
	date time.Time,
	timeSlot string,
) ([]uuid.UUID, error) {
	occupied, err := tx.Bookings().OccupiedCourtIDs(ctx, date, timeSlot)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load occupied courts")
	}

	taken := make(map[uuid.UUID]struct{}, len(occupied))
	for _, id := range occupied {
		taken[id] = struct{}{}
	}

	available := make([]uuid.UUID, 0, len(active))
	for _, c := range active {
		if _, ok := taken[c.ID]; !ok {
			available = append(available, c.ID)
		}
	}
	return available, nil
}

// weighCandidates refreshes each requester's usage counter (monthly reset)
// and persists the computed weight on the request before the draw.
func (u *lotteryUseCaseImpl) weighCandidates(
	ctx context.Context,
	tx shared.Tx,
	pending []*request.Request,
) ([]lottery.Candidate, map[uuid.UUID]*request.Request, error) {
	now := u.clock.Now()
	candidates := make([]lottery.Candidate, 0, len(pending))
	byID := make(map[uuid.UUID]*request.Request, len(pending))

	for _, req := range pending {
		counter, err := tx.UsageCounters().GetOrCreate(ctx, req.UserID(), now)
		if err != nil {
			return nil, nil, errs.Wrap(err, "failed to load usage counter")
		}
		if counter.ResetDue(now) {
			counter.Reset(now)
			if err := tx.UsageCounters().Save(ctx, counter); err != nil {
				return nil, nil, errs.Wrap(err, "failed to reset usage counter")
			}
		}

		weight := u.weightFn(counter.Count)
		if err := req.SetWeight(weight); err != nil {
			return nil, nil, errs.Wrap(err, "invalid draw weight")
		}
		if err := tx.Requests().Update(ctx, req); err != nil {
			return nil, nil, errs.Wrap(err, "failed to persist weight")
		}

		candidates = append(candidates, lottery.Candidate{
			RequestID: req.ID(),
			UserID:    req.UserID(),
			Weight:    weight,
		})
		byID[req.ID()] = req
	}
	return candidates, byID, nil
}

// allocate commits one (request, court) pairing. The slot is re-checked under
// the transaction: a direct booking committed after the draw was computed
// surfaces either here or as a unique-key violation on insert, and in both
// cases the pairing is skipped while the request stays pending.
func (u *lotteryUseCaseImpl) allocate(
	ctx context.Context,
	tx shared.Tx,
	req *request.Request,
	courtID uuid.UUID,
) (*booking.Booking, error) {
	taken, err := tx.Bookings().IsSlotTaken(ctx, courtID, req.Date(), req.TimeSlot())
	if err != nil {
		return nil, errs.Wrap(err, "failed to re-check court availability")
	}
	if taken {
		slog.Warn("court taken between draw and commit, skipping pairing",
			"court_id", courtID, "request_id", req.ID())
		return nil, nil
	}

	bk := booking.NewFromRequest(req, courtID)
	if err := tx.Bookings().Create(ctx, bk); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			slog.Warn("court taken concurrently, skipping pairing",
				"court_id", courtID, "request_id", req.ID())
			return nil, nil
		}
		return nil, errs.Wrap(err, "failed to create booking")
	}

	if err := req.Confirm(); err != nil {
		return nil, errs.Wrap(err, "failed to confirm request")
	}
	if err := tx.Requests().Update(ctx, req); err != nil {
		return nil, errs.Wrap(err, "failed to update request status")
	}

	counter, err := tx.UsageCounters().GetOrCreate(ctx, req.UserID(), u.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "failed to load usage counter")
	}
	counter.Increment()
	if err := tx.UsageCounters().Save(ctx, counter); err != nil {
		return nil, errs.Wrap(err, "failed to increment usage counter")
	}

	return bk, nil
}
