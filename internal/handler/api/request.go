package api

import (
	"errors"
	"net/http"

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

// set by RequireAuth; absence means the route was wired without it
var errMissingUserID = errors.New("user id not set in request context")

type RequestHandler struct {
	requestUseCase usecase.RequestUseCase
}

func NewRequestHandler(requestUseCase usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
	}
}

func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserID, "Internal server error", nil)
		return
	}

	var req reqdto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	created, err := h.requestUseCase.CreateRequest(c.Request.Context(), usecase.CreateRequestParams{
		UserID:          userID,
		Date:            date,
		TimeSlot:        req.TimeSlot,
		NumberOfPlayers: req.NumberOfPlayers,
		Participants:    req.Participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, window.ErrRequestWindow):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Date is outside the request window", nil)
		case errors.Is(err, timeslot.ErrUnknownSlot):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No such time slot on this day", nil)
		case errors.Is(err, request.ErrInvalidPlayerCount), errors.Is(err, request.ErrWrongParticipants):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		case errors.Is(err, request.ErrDuplicateRequest):
			httperr.AbortWithError(c, http.StatusConflict, err, "A pending request already exists for this slot", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRequest(created))
}

func (h *RequestHandler) WithdrawRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserID, "Internal server error", nil)
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request ID format", nil)
		return
	}

	if err := h.requestUseCase.WithdrawRequest(c.Request.Context(), requestID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrRequestNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)
		case errors.Is(err, usecase.ErrNotRequestOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Request belongs to another user", nil)
		case errors.Is(err, request.ErrNotPending):
			httperr.AbortWithError(c, http.StatusConflict, err, "Only pending requests can be withdrawn", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
