package api

import (
	"net/http"
	"time"

	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CourtHandler struct {
	courtUseCase usecase.CourtUseCase
}

func NewCourtHandler(courtUseCase usecase.CourtUseCase) *CourtHandler {
	return &CourtHandler{
		courtUseCase: courtUseCase,
	}
}

func (h *CourtHandler) ListCourts(c *gin.Context) {
	var (
		courts []*resdto.CourtResponse
		err    error
	)

	dateStr := c.Query("date")
	timeSlot := c.Query("time_slot")
	if dateStr != "" && timeSlot != "" {
		date, parseErr := time.Parse("2006-01-02", dateStr)
		if parseErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, parseErr, "Invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		available, listErr := h.courtUseCase.ListAvailableCourts(c.Request.Context(), date, timeSlot)
		if listErr == nil {
			courts, err = resdto.FromCourts(available)
		} else {
			err = listErr
		}
	} else {
		active, listErr := h.courtUseCase.ListActiveCourts(c.Request.Context())
		if listErr == nil {
			courts, err = resdto.FromCourts(active)
		} else {
			err = listErr
		}
	}

	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, courts)
}
