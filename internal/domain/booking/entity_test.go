//go:build unit

package booking_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmed(t *testing.T, date time.Time, timeSlot string) *booking.Booking {
	t.Helper()
	bk, err := booking.NewDirect(uuid.New(), uuid.New(), date, timeSlot, 2, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	return bk
}

func TestNewDirect(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("direct booking is confirmed immediately", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		assert.Equal(t, booking.StatusConfirmed, bk.Status())
		assert.Nil(t, bk.RequestID())
		assert.True(t, bk.IsActive())
	})

	t.Run("player count is validated", func(t *testing.T) {
		bk, err := booking.NewDirect(uuid.New(), uuid.New(), date, "18:00", 5, nil)
		require.Nil(t, bk)
		require.ErrorIs(t, err, request.ErrInvalidPlayerCount)
	})
}

func TestNewFromRequest(t *testing.T) {
	req, err := request.New(uuid.New(), time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), "18:00", 3, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)

	courtID := uuid.New()
	bk := booking.NewFromRequest(req, courtID)

	assert.Equal(t, booking.StatusConfirmed, bk.Status())
	assert.Equal(t, courtID, bk.CourtID())
	require.NotNil(t, bk.RequestID())
	assert.Equal(t, req.ID(), *bk.RequestID())
	assert.Equal(t, req.UserID(), bk.UserID())
	assert.Equal(t, req.NumberOfPlayers(), bk.NumberOfPlayers())
	assert.Equal(t, req.Participants(), bk.Participants())
}

func TestCancel(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("confirmed booking cancels", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		require.NoError(t, bk.Cancel())
		assert.Equal(t, booking.StatusCancelled, bk.Status())
		assert.False(t, bk.IsActive())
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		require.NoError(t, bk.Complete(date.Add(20*time.Hour)))
		require.ErrorIs(t, bk.Cancel(), booking.ErrCannotCancelCompleted)
	})

	t.Run("cancelled booking cannot be cancelled again", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		require.NoError(t, bk.Cancel())
		require.ErrorIs(t, bk.Cancel(), booking.ErrNotConfirmed)
	})
}

func TestComplete(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("completes after start time", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		now := time.Date(2026, 9, 1, 19, 30, 0, 0, time.UTC)
		require.NoError(t, bk.Complete(now))
		assert.Equal(t, booking.StatusCompleted, bk.Status())
		require.NotNil(t, bk.CompletedAt())
		assert.Equal(t, now, *bk.CompletedAt())
	})

	t.Run("rejects completion before start time", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		now := time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC)
		require.ErrorIs(t, bk.Complete(now), booking.ErrNotElapsed)
	})

	t.Run("only confirmed bookings complete", func(t *testing.T) {
		bk := newConfirmed(t, date, "18:00")
		require.NoError(t, bk.Cancel())
		require.ErrorIs(t, bk.Complete(date.Add(48*time.Hour)), booking.ErrNotConfirmed)
	})
}

func TestStartsAt(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	bk := newConfirmed(t, date, "18:00")

	starts := bk.StartsAt()
	assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), starts)
}
