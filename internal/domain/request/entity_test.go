//go:build unit

package request_test

import (
	"testing"
	"time"

	"court-booking/internal/domain/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participants(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestNew(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	t.Run("valid request starts pending", func(t *testing.T) {
		req, err := request.New(userID, date, "18:00", 4, participants(3))
		require.NoError(t, err)
		require.NotNil(t, req)

		assert.NotEqual(t, uuid.Nil, req.ID())
		assert.Equal(t, request.StatusRequested, req.Status())
		assert.True(t, req.IsPending())
		assert.Equal(t, userID, req.UserID())
		assert.Equal(t, "18:00", req.TimeSlot())
	})

	t.Run("player count validation", func(t *testing.T) {
		cases := []struct {
			name         string
			players      int
			participants []uuid.UUID
			errIs        error
		}{
			{name: "two players ok", players: 2, participants: participants(1)},
			{name: "four players ok", players: 4, participants: participants(3)},
			{name: "one player rejected", players: 1, participants: participants(0), errIs: request.ErrInvalidPlayerCount},
			{name: "five players rejected", players: 5, participants: participants(4), errIs: request.ErrInvalidPlayerCount},
			{name: "zero players rejected", players: 0, participants: nil, errIs: request.ErrInvalidPlayerCount},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				req, err := request.New(userID, date, "18:00", c.players, c.participants)
				if c.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, req)
				} else {
					require.Nil(t, req)
					require.ErrorIs(t, err, c.errIs)
				}
			})
		}
	})

	t.Run("participants must be players minus one", func(t *testing.T) {
		req, err := request.New(userID, date, "18:00", 3, participants(3))
		require.Nil(t, req)
		require.ErrorIs(t, err, request.ErrWrongParticipants)

		req, err = request.New(userID, date, "18:00", 3, participants(1))
		require.Nil(t, req)
		require.ErrorIs(t, err, request.ErrWrongParticipants)
	})
}

func TestStatusTransitions(t *testing.T) {
	newPending := func(t *testing.T) *request.Request {
		t.Helper()
		req, err := request.New(uuid.New(), time.Now(), "18:00", 2, participants(1))
		require.NoError(t, err)
		return req
	}

	t.Run("confirm pending", func(t *testing.T) {
		req := newPending(t)
		require.NoError(t, req.Confirm())
		assert.Equal(t, request.StatusConfirmed, req.Status())
		assert.False(t, req.IsPending())
	})

	t.Run("withdraw pending", func(t *testing.T) {
		req := newPending(t)
		require.NoError(t, req.Withdraw())
		assert.Equal(t, request.StatusCancelled, req.Status())
	})

	t.Run("confirmed is terminal", func(t *testing.T) {
		req := newPending(t)
		require.NoError(t, req.Confirm())
		require.ErrorIs(t, req.Confirm(), request.ErrNotPending)
		require.ErrorIs(t, req.Withdraw(), request.ErrNotPending)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		req := newPending(t)
		require.NoError(t, req.Withdraw())
		require.ErrorIs(t, req.Confirm(), request.ErrNotPending)
		require.ErrorIs(t, req.Withdraw(), request.ErrNotPending)
	})
}

func TestSetWeight(t *testing.T) {
	req, err := request.New(uuid.New(), time.Now(), "18:00", 2, participants(1))
	require.NoError(t, err)

	require.NoError(t, req.SetWeight(0.5))
	assert.Equal(t, 0.5, req.Weight())

	require.ErrorIs(t, req.SetWeight(0), request.ErrInvalidWeight)
	require.ErrorIs(t, req.SetWeight(-1), request.ErrInvalidWeight)
	assert.Equal(t, 0.5, req.Weight())
}
