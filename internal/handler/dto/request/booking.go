package request

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// CreateRequestRequest places a lottery request for a (date, timeSlot).
type CreateRequestRequest struct {
	Date            string      `json:"date" binding:"required"`
	TimeSlot        string      `json:"time_slot" binding:"required"`
	NumberOfPlayers int         `json:"number_of_players" binding:"required"`
	Participants    []uuid.UUID `json:"participants"`
}

func (r CreateRequestRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

// CreateBookingRequest books a court directly, inside the short-notice window.
type CreateBookingRequest struct {
	CourtID         uuid.UUID   `json:"court_id" binding:"required"`
	Date            string      `json:"date" binding:"required"`
	TimeSlot        string      `json:"time_slot" binding:"required"`
	NumberOfPlayers int         `json:"number_of_players" binding:"required"`
	Participants    []uuid.UUID `json:"participants"`
}

func (r CreateBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}
