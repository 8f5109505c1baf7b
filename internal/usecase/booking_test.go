//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/request"
	"court-booking/internal/domain/timeslot"
	"court-booking/internal/domain/window"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotRepo struct{ slots []*timeslot.TimeSlot }

func (r *fakeSlotRepo) FindByDayAndStart(_ context.Context, dayOfWeek int, startTime string) (*timeslot.TimeSlot, error) {
	for _, s := range r.slots {
		if s.DayOfWeek == dayOfWeek && s.StartTime == startTime {
			return s, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "time slot not found", timeslot.ErrUnknownSlot)
}

// slotRepo18 returns a repo knowing the 18:00 slot on every weekday, so slot
// resolution only fails when a test asks for an unknown start time.
func slotRepo18() *fakeSlotRepo {
	repo := &fakeSlotRepo{}
	for day := 0; day < 7; day++ {
		s, _ := timeslot.New(day, "18:00", "19:30", timeslot.TypePeak)
		repo.slots = append(repo.slots, s)
	}
	return repo
}

func testWindow() *window.Validator {
	return window.NewValidator(clock.NewMockClock(testNow), 2, 5)
}

func newRequestSUT(store *fakeStore) usecase.RequestUseCase {
	return usecase.NewRequestUseCase(&fakeUoW{store: store}, slotRepo18(), testWindow())
}

func newBookingSUT(store *fakeStore) usecase.BookingUseCase {
	return usecase.NewBookingUseCase(&fakeUoW{store: store}, slotRepo18(), testWindow(), clock.NewMockClock(testNow))
}

func requestParams(userID uuid.UUID, date time.Time) usecase.CreateRequestParams {
	return usecase.CreateRequestParams{
		UserID:          userID,
		Date:            date,
		TimeSlot:        testSlot,
		NumberOfPlayers: 2,
		Participants:    []uuid.UUID{uuid.New()},
	}
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request inside the window", func(t *testing.T) {
		store := newFakeStore()
		sut := newRequestSUT(store)

		req, err := sut.CreateRequest(ctx, requestParams(uuid.New(), testDate))
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.True(t, req.IsPending())
		assert.Contains(t, store.requests, req.ID())
	})

	t.Run("rejects dates outside the request window", func(t *testing.T) {
		sut := newRequestSUT(newFakeStore())

		_, err := sut.CreateRequest(ctx, requestParams(uuid.New(), testNow))
		require.ErrorIs(t, err, window.ErrRequestWindow)

		_, err = sut.CreateRequest(ctx, requestParams(uuid.New(), testNow.AddDate(0, 0, 6)))
		require.ErrorIs(t, err, window.ErrRequestWindow)
	})

	t.Run("rejects unknown slot keys", func(t *testing.T) {
		sut := newRequestSUT(newFakeStore())

		params := requestParams(uuid.New(), testDate)
		params.TimeSlot = "03:00"
		_, err := sut.CreateRequest(ctx, params)
		require.ErrorIs(t, err, timeslot.ErrUnknownSlot)
	})

	t.Run("one pending request per user and slot", func(t *testing.T) {
		store := newFakeStore()
		sut := newRequestSUT(store)
		userID := uuid.New()

		_, err := sut.CreateRequest(ctx, requestParams(userID, testDate))
		require.NoError(t, err)

		_, err = sut.CreateRequest(ctx, requestParams(userID, testDate))
		require.ErrorIs(t, err, request.ErrDuplicateRequest)
	})

	t.Run("withdrawn request frees the slot for a new one", func(t *testing.T) {
		store := newFakeStore()
		sut := newRequestSUT(store)
		userID := uuid.New()

		first, err := sut.CreateRequest(ctx, requestParams(userID, testDate))
		require.NoError(t, err)
		require.NoError(t, sut.WithdrawRequest(ctx, first.ID(), userID))

		_, err = sut.CreateRequest(ctx, requestParams(userID, testDate))
		require.NoError(t, err)
	})
}

func TestWithdrawRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("owner withdraws a pending request", func(t *testing.T) {
		store := newFakeStore()
		sut := newRequestSUT(store)
		userID := uuid.New()

		req, err := sut.CreateRequest(ctx, requestParams(userID, testDate))
		require.NoError(t, err)

		require.NoError(t, sut.WithdrawRequest(ctx, req.ID(), userID))
		assert.Equal(t, request.StatusCancelled, req.Status())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		store := newFakeStore()
		sut := newRequestSUT(store)

		req, err := sut.CreateRequest(ctx, requestParams(uuid.New(), testDate))
		require.NoError(t, err)

		err = sut.WithdrawRequest(ctx, req.ID(), uuid.New())
		require.ErrorIs(t, err, usecase.ErrNotRequestOwner)
		assert.True(t, req.IsPending())
	})

	t.Run("unknown request", func(t *testing.T) {
		sut := newRequestSUT(newFakeStore())
		err := sut.WithdrawRequest(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, usecase.ErrRequestNotFound)
	})

	t.Run("confirmed request cannot be withdrawn", func(t *testing.T) {
		store := newFakeStore()
		sut := newRequestSUT(store)
		userID := uuid.New()

		req, err := sut.CreateRequest(ctx, requestParams(userID, testDate))
		require.NoError(t, err)
		require.NoError(t, req.Confirm())

		err = sut.WithdrawRequest(ctx, req.ID(), userID)
		require.ErrorIs(t, err, request.ErrNotPending)
	})
}

func TestCreateDirectBooking(t *testing.T) {
	ctx := context.Background()
	directDate := testNow.AddDate(0, 0, 1)

	params := func(courtID uuid.UUID) usecase.CreateBookingParams {
		return usecase.CreateBookingParams{
			UserID:          uuid.New(),
			CourtID:         courtID,
			Date:            directDate,
			TimeSlot:        testSlot,
			NumberOfPlayers: 2,
			Participants:    []uuid.UUID{uuid.New()},
		}
	}

	t.Run("books a free active court and counts usage", func(t *testing.T) {
		store := newFakeStore()
		c := addCourt(store, "Court A", true)
		sut := newBookingSUT(store)

		p := params(c.ID)
		bk, err := sut.CreateDirectBooking(ctx, p)
		require.NoError(t, err)
		require.NotNil(t, bk)
		assert.Equal(t, booking.StatusConfirmed, bk.Status())
		assert.Nil(t, bk.RequestID())
		assert.Equal(t, 1, store.counters[p.UserID].Count)
	})

	t.Run("rejects lottery-window dates", func(t *testing.T) {
		store := newFakeStore()
		c := addCourt(store, "Court A", true)
		sut := newBookingSUT(store)

		p := params(c.ID)
		p.Date = testDate
		_, err := sut.CreateDirectBooking(ctx, p)
		require.ErrorIs(t, err, window.ErrDirectBookingWindow)
	})

	t.Run("rejects inactive courts", func(t *testing.T) {
		store := newFakeStore()
		c := addCourt(store, "Court A", false)
		sut := newBookingSUT(store)

		_, err := sut.CreateDirectBooking(ctx, params(c.ID))
		require.ErrorIs(t, err, court.ErrInactive)
	})

	t.Run("rejects unknown courts", func(t *testing.T) {
		sut := newBookingSUT(newFakeStore())
		_, err := sut.CreateDirectBooking(ctx, params(uuid.New()))
		require.ErrorIs(t, err, court.ErrNotFound)
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		store := newFakeStore()
		c := addCourt(store, "Court A", true)
		sut := newBookingSUT(store)

		_, err := sut.CreateDirectBooking(ctx, params(c.ID))
		require.NoError(t, err)

		_, err = sut.CreateDirectBooking(ctx, params(c.ID))
		require.ErrorIs(t, err, court.ErrNotAvailable)
	})
}

func TestCancelAndCompleteBooking(t *testing.T) {
	ctx := context.Background()
	directDate := testNow.AddDate(0, 0, 1)

	setup := func(t *testing.T) (*fakeStore, usecase.BookingUseCase, *booking.Booking, uuid.UUID) {
		t.Helper()
		store := newFakeStore()
		c := addCourt(store, "Court A", true)
		sut := newBookingSUT(store)

		userID := uuid.New()
		bk, err := sut.CreateDirectBooking(ctx, usecase.CreateBookingParams{
			UserID:          userID,
			CourtID:         c.ID,
			Date:            directDate,
			TimeSlot:        testSlot,
			NumberOfPlayers: 2,
			Participants:    []uuid.UUID{uuid.New()},
		})
		require.NoError(t, err)
		return store, sut, bk, userID
	}

	t.Run("owner cancels, freeing the slot", func(t *testing.T) {
		store, sut, bk, userID := setup(t)

		require.NoError(t, sut.CancelBooking(ctx, bk.ID(), userID))
		assert.Equal(t, booking.StatusCancelled, bk.Status())

		taken, err := (&fakeBookingRepo{store: store}).IsSlotTaken(ctx, bk.CourtID(), directDate, testSlot)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		_, sut, bk, _ := setup(t)
		err := sut.CancelBooking(ctx, bk.ID(), uuid.New())
		require.ErrorIs(t, err, usecase.ErrNotBookingOwner)
	})

	t.Run("completion requires the start time to have passed", func(t *testing.T) {
		_, sut, bk, _ := setup(t)

		// booking is tomorrow 18:00, clock still says today
		err := sut.CompleteBooking(ctx, bk.ID())
		require.ErrorIs(t, err, booking.ErrNotElapsed)
	})

	t.Run("cancel after completion is rejected", func(t *testing.T) {
		store, _, bk, userID := setup(t)

		lateClock := clock.NewMockClock(directDate.Add(20 * time.Hour))
		sut := usecase.NewBookingUseCase(&fakeUoW{store: store}, slotRepo18(), testWindow(), lateClock)

		require.NoError(t, sut.CompleteBooking(ctx, bk.ID()))
		err := sut.CancelBooking(ctx, bk.ID(), userID)
		require.ErrorIs(t, err, booking.ErrCannotCancelCompleted)
	})
}
