package api

import (
	"errors"
	"net/http"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/request"
	"court-booking/internal/domain/timeslot"
	"court-booking/internal/domain/window"
	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserID, "Internal server error", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	created, err := h.bookingUseCase.CreateDirectBooking(c.Request.Context(), usecase.CreateBookingParams{
		UserID:          userID,
		CourtID:         req.CourtID,
		Date:            date,
		TimeSlot:        req.TimeSlot,
		NumberOfPlayers: req.NumberOfPlayers,
		Participants:    req.Participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, window.ErrDirectBookingWindow), errors.Is(err, window.ErrDateInPast):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Date is outside the direct booking window", nil)
		case errors.Is(err, timeslot.ErrUnknownSlot):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No such time slot on this day", nil)
		case errors.Is(err, request.ErrInvalidPlayerCount):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		case errors.Is(err, court.ErrNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Court not found", nil)
		case errors.Is(err, court.ErrInactive):
			httperr.AbortWithError(c, http.StatusConflict, err, "Court is inactive", nil)
		case errors.Is(err, court.ErrNotAvailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Court is already booked for this slot", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(created))
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserID, "Internal server error", nil)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingUseCase.CancelBooking(c.Request.Context(), bookingID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, usecase.ErrNotBookingOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Booking belongs to another user", nil)
		case errors.Is(err, booking.ErrCannotCancelCompleted), errors.Is(err, booking.ErrNotConfirmed):
			httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingUseCase.CompleteBooking(c.Request.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, booking.ErrNotConfirmed), errors.Is(err, booking.ErrNotElapsed):
			httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
