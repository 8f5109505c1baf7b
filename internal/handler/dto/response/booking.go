package response

import (
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/request"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type RequestResponse struct {
	ID              uuid.UUID   `json:"id"`
	Date            string      `json:"date"`
	TimeSlot        string      `json:"timeSlot"`
	NumberOfPlayers int         `json:"numberOfPlayers"`
	Status          string      `json:"status"`
	Participants    []uuid.UUID `json:"participants"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type BookingResponse struct {
	ID              uuid.UUID   `json:"id"`
	CourtID         uuid.UUID   `json:"courtId"`
	RequestID       *uuid.UUID  `json:"requestId,omitempty"`
	Date            string      `json:"date"`
	TimeSlot        string      `json:"timeSlot"`
	NumberOfPlayers int         `json:"numberOfPlayers"`
	Status          string      `json:"status"`
	Participants    []uuid.UUID `json:"participants"`
	CreatedAt       time.Time   `json:"createdAt"`
}

func FromRequest(req *request.Request) *RequestResponse {
	return &RequestResponse{
		ID:              req.ID(),
		Date:            req.Date().Format(dateLayout),
		TimeSlot:        req.TimeSlot(),
		NumberOfPlayers: req.NumberOfPlayers(),
		Status:          string(req.Status()),
		Participants:    req.Participants(),
		CreatedAt:       req.CreatedAt(),
	}
}

func FromBooking(bk *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              bk.ID(),
		CourtID:         bk.CourtID(),
		RequestID:       bk.RequestID(),
		Date:            bk.Date().Format(dateLayout),
		TimeSlot:        bk.TimeSlot(),
		NumberOfPlayers: bk.NumberOfPlayers(),
		Status:          string(bk.Status()),
		Participants:    bk.Participants(),
		CreatedAt:       bk.CreatedAt(),
	}
}
