//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/lottery"
	"court-booking/internal/domain/request"
	"court-booking/internal/domain/usage"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDate = time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	testSlot = "18:00"
)

// --- in-memory doubles -------------------------------------------------------

type slotKey struct {
	courtID  uuid.UUID
	date     string
	timeSlot string
}

type fakeStore struct {
	courts   []*court.Court
	requests map[uuid.UUID]*request.Request
	bookings map[slotKey]*booking.Booking
	counters map[uuid.UUID]*usage.Counter

	lockHeldElsewhere bool
	failNextCreateDup bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: make(map[uuid.UUID]*request.Request),
		bookings: make(map[slotKey]*booking.Booking),
		counters: make(map[uuid.UUID]*usage.Counter),
	}
}

func key(courtID uuid.UUID, date time.Time, timeSlot string) slotKey {
	return slotKey{courtID: courtID, date: date.Format("2006-01-02"), timeSlot: timeSlot}
}

type fakeUoW struct{ store *fakeStore }

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

// retryingUoW invokes the closure once per store, the way the pgx unit of
// work re-runs it after a serialization failure: the first attempt's writes
// are rolled back, so the retry sees an untouched store.
type retryingUoW struct{ stores []*fakeStore }

func (u *retryingUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for _, store := range u.stores {
		err = fn(ctx, &fakeTx{store: store})
	}
	return err
}

type fakeTx struct{ store *fakeStore }

func (t *fakeTx) Courts() shared.CourtRepository               { return &fakeCourtRepo{store: t.store} }
func (t *fakeTx) Requests() shared.RequestRepository           { return &fakeRequestRepo{store: t.store} }
func (t *fakeTx) Bookings() shared.BookingRepository           { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) UsageCounters() shared.UsageCounterRepository { return &fakeCounterRepo{store: t.store} }

func (t *fakeTx) TryLockSlot(_ context.Context, _ time.Time, _ string) (bool, error) {
	return !t.store.lockHeldElsewhere, nil
}

type fakeCourtRepo struct{ store *fakeStore }

func (r *fakeCourtRepo) FindByID(_ context.Context, id uuid.UUID) (*court.Court, error) {
	for _, c := range r.store.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "court not found", court.ErrNotFound)
}

func (r *fakeCourtRepo) FindActive(_ context.Context) ([]*court.Court, error) {
	var active []*court.Court
	for _, c := range r.store.courts {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (r *fakeCourtRepo) Update(_ context.Context, _ *court.Court) error { return nil }

type fakeRequestRepo struct{ store *fakeStore }

func (r *fakeRequestRepo) Create(_ context.Context, req *request.Request) error {
	r.store.requests[req.ID()] = req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*request.Request, error) {
	req, ok := r.store.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "request not found", request.ErrNotFound)
	}
	return req, nil
}

func (r *fakeRequestRepo) FindPendingForSlot(_ context.Context, date time.Time, timeSlot string) ([]*request.Request, error) {
	var pending []*request.Request
	for _, req := range r.store.requests {
		if req.IsPending() && req.Date().Equal(date) && req.TimeSlot() == timeSlot {
			pending = append(pending, req)
		}
	}
	return pending, nil
}

func (r *fakeRequestRepo) CountPendingForSlot(ctx context.Context, date time.Time, timeSlot string) (int, error) {
	pending, err := r.FindPendingForSlot(ctx, date, timeSlot)
	return len(pending), err
}

func (r *fakeRequestRepo) HasPending(_ context.Context, userID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	for _, req := range r.store.requests {
		if req.UserID() == userID && req.IsPending() && req.Date().Equal(date) && req.TimeSlot() == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) Update(_ context.Context, req *request.Request) error {
	r.store.requests[req.ID()] = req
	return nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if r.store.failNextCreateDup {
		r.store.failNextCreateDup = false
		return infra.WrapRepoErr(infra.KindDuplicateKey, "slot already booked", errors.New("duplicate key"))
	}
	k := key(b.CourtID(), b.Date(), b.TimeSlot())
	if existing, ok := r.store.bookings[k]; ok && existing.IsActive() {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "slot already booked", errors.New("duplicate key"))
	}
	r.store.bookings[k] = b
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	for _, b := range r.store.bookings {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", booking.ErrNotFound)
}

func (r *fakeBookingRepo) Update(_ context.Context, _ *booking.Booking) error { return nil }

func (r *fakeBookingRepo) OccupiedCourtIDs(_ context.Context, date time.Time, timeSlot string) ([]uuid.UUID, error) {
	var occupied []uuid.UUID
	for k, b := range r.store.bookings {
		if k.date == date.Format("2006-01-02") && k.timeSlot == timeSlot && b.IsActive() {
			occupied = append(occupied, b.CourtID())
		}
	}
	return occupied, nil
}

func (r *fakeBookingRepo) IsSlotTaken(_ context.Context, courtID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	b, ok := r.store.bookings[key(courtID, date, timeSlot)]
	return ok && b.IsActive(), nil
}

func (r *fakeBookingRepo) HasActiveForCourt(_ context.Context, courtID uuid.UUID) (bool, error) {
	for _, b := range r.store.bookings {
		if b.CourtID() == courtID && b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

type fakeCounterRepo struct{ store *fakeStore }

func (r *fakeCounterRepo) GetOrCreate(_ context.Context, userID uuid.UUID, now time.Time) (*usage.Counter, error) {
	if c, ok := r.store.counters[userID]; ok {
		return c, nil
	}
	c := usage.NewCounter(userID, now)
	r.store.counters[userID] = c
	return c, nil
}

func (r *fakeCounterRepo) Save(_ context.Context, c *usage.Counter) error {
	r.store.counters[c.UserID] = c
	return nil
}

// --- helpers -----------------------------------------------------------------

func newSUT(store *fakeStore) usecase.LotteryUseCase {
	return usecase.NewLotteryUseCase(
		&fakeUoW{store: store},
		&fakeRequestRepo{store: store},
		lottery.InverseUsageWeight,
		func() *rand.Rand { return rand.New(rand.NewSource(1)) },
		clock.NewMockClock(testNow),
	)
}

func addCourt(store *fakeStore, name string, active bool) *court.Court {
	c, _ := court.New(name)
	if !active {
		c.Deactivate()
	}
	store.courts = append(store.courts, c)
	return c
}

func addRequest(t *testing.T, store *fakeStore, userID uuid.UUID) *request.Request {
	t.Helper()
	req, err := request.New(userID, testDate, testSlot, 2, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	store.requests[req.ID()] = req
	return req
}

// --- tests -------------------------------------------------------------------

func TestExecuteLottery(t *testing.T) {
	ctx := context.Background()

	t.Run("no pending requests is a no-op", func(t *testing.T) {
		store := newFakeStore()
		addCourt(store, "Court A", true)

		result, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalRequests)
		assert.Equal(t, 0, result.AssignedBookings)
		assert.Empty(t, store.bookings)
	})

	t.Run("no active courts fails", func(t *testing.T) {
		store := newFakeStore()
		addCourt(store, "Court A", false)
		addRequest(t, store, uuid.New())

		_, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.ErrorIs(t, err, usecase.ErrNoActiveCourts)
	})

	t.Run("concurrent execution for the slot is rejected", func(t *testing.T) {
		store := newFakeStore()
		store.lockHeldElsewhere = true
		addCourt(store, "Court A", true)
		addRequest(t, store, uuid.New())

		_, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.ErrorIs(t, err, usecase.ErrLotteryInProgress)
	})

	t.Run("assigns up to the number of free courts", func(t *testing.T) {
		store := newFakeStore()
		addCourt(store, "Court A", true)
		addCourt(store, "Court B", true)
		reqs := []*request.Request{
			addRequest(t, store, uuid.New()),
			addRequest(t, store, uuid.New()),
			addRequest(t, store, uuid.New()),
		}

		result, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)

		assert.Equal(t, 3, result.TotalRequests)
		assert.Equal(t, 2, result.AssignedBookings)
		assert.Len(t, result.Bookings, 2)
		assert.Len(t, store.bookings, 2)

		confirmed, pending := 0, 0
		for _, req := range reqs {
			switch req.Status() {
			case request.StatusConfirmed:
				confirmed++
				// winner's fairness counter moved
				assert.Equal(t, 1, store.counters[req.UserID()].Count)
			case request.StatusRequested:
				pending++
			}
			// every entrant had its draw weight persisted
			assert.Equal(t, 1.0, req.Weight())
		}
		assert.Equal(t, 2, confirmed)
		assert.Equal(t, 1, pending)

		// winning bookings link back to their requests
		for _, bk := range result.Bookings {
			require.NotNil(t, bk.RequestID())
			assert.Equal(t, booking.StatusConfirmed, bk.Status())
			assert.Equal(t, testDate, bk.Date())
			assert.Equal(t, testSlot, bk.TimeSlot())
		}
	})

	t.Run("inactive courts are excluded from allocation", func(t *testing.T) {
		store := newFakeStore()
		addCourt(store, "Court A", true)
		addCourt(store, "Court B", false)
		addRequest(t, store, uuid.New())
		addRequest(t, store, uuid.New())

		result, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)
		assert.Equal(t, 1, result.AssignedBookings)
	})

	t.Run("occupied courts leave requests pending", func(t *testing.T) {
		store := newFakeStore()
		c := addCourt(store, "Court A", true)

		direct, err := booking.NewDirect(uuid.New(), c.ID, testDate, testSlot, 2, []uuid.UUID{uuid.New()})
		require.NoError(t, err)
		store.bookings[key(c.ID, testDate, testSlot)] = direct

		req := addRequest(t, store, uuid.New())

		result, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalRequests)
		assert.Equal(t, 0, result.AssignedBookings)
		assert.True(t, req.IsPending())
	})

	t.Run("unique key race skips the pairing without failing the run", func(t *testing.T) {
		store := newFakeStore()
		addCourt(store, "Court A", true)
		store.failNextCreateDup = true
		req := addRequest(t, store, uuid.New())

		result, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)
		assert.Equal(t, 0, result.AssignedBookings)
		assert.True(t, req.IsPending())
		assert.Equal(t, 0, store.counters[req.UserID()].Count)
	})

	t.Run("retried transaction does not double-report assignments", func(t *testing.T) {
		rolledBack := newFakeStore()
		addCourt(rolledBack, "Court A", true)
		addRequest(t, rolledBack, uuid.New())

		committed := newFakeStore()
		addCourt(committed, "Court A", true)
		req := addRequest(t, committed, uuid.New())

		sut := usecase.NewLotteryUseCase(
			&retryingUoW{stores: []*fakeStore{rolledBack, committed}},
			&fakeRequestRepo{store: committed},
			lottery.InverseUsageWeight,
			func() *rand.Rand { return rand.New(rand.NewSource(1)) },
			clock.NewMockClock(testNow),
		)

		result, err := sut.ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)

		// only the committed attempt counts
		assert.Equal(t, 1, result.TotalRequests)
		assert.Equal(t, 1, result.AssignedBookings)
		assert.Len(t, result.Bookings, 1)
		assert.Equal(t, request.StatusConfirmed, req.Status())
		assert.Len(t, committed.bookings, 1)
	})

	t.Run("stale monthly counter resets before weighing", func(t *testing.T) {
		store := newFakeStore()
		addCourt(store, "Court A", true)

		userID := uuid.New()
		counter := usage.NewCounter(userID, testNow.AddDate(0, -1, 0))
		counter.Count = 5
		store.counters[userID] = counter

		req := addRequest(t, store, userID)

		_, err := newSUT(store).ExecuteLottery(ctx, testDate, testSlot)
		require.NoError(t, err)

		// weight computed from the reset count, not the stale one
		assert.Equal(t, 1.0, req.Weight())
	})

	t.Run("users with fewer recent bookings win more often", func(t *testing.T) {
		lightUser := uuid.New()
		heavyUser := uuid.New()

		lightWins := 0
		const trials = 200
		for seed := int64(0); seed < trials; seed++ {
			store := newFakeStore()
			addCourt(store, "Court A", true)

			heavy := usage.NewCounter(heavyUser, testNow)
			heavy.Count = 9
			store.counters[heavyUser] = heavy

			addRequest(t, store, lightUser)
			heavyReq := addRequest(t, store, heavyUser)

			sut := usecase.NewLotteryUseCase(
				&fakeUoW{store: store},
				&fakeRequestRepo{store: store},
				lottery.InverseUsageWeight,
				func() *rand.Rand { return rand.New(rand.NewSource(seed)) },
				clock.NewMockClock(testNow),
			)

			result, err := sut.ExecuteLottery(ctx, testDate, testSlot)
			require.NoError(t, err)
			require.Equal(t, 1, result.AssignedBookings)
			if heavyReq.IsPending() {
				lightWins++
			}
		}

		// weight ratio 1.0 : 0.1 puts the expected light-user share near 91%
		assert.Greater(t, lightWins, trials*3/4)
	})
}

func TestGetPendingCount(t *testing.T) {
	store := newFakeStore()
	addRequest(t, store, uuid.New())
	addRequest(t, store, uuid.New())

	withdrawn := addRequest(t, store, uuid.New())
	require.NoError(t, withdrawn.Withdraw())

	count, err := newSUT(store).GetPendingCount(context.Background(), testDate, testSlot)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
