package api

import (
	"errors"
	"net/http"

	reqdto "court-booking/internal/handler/dto/request"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LotteryHandler struct {
	lotteryUseCase usecase.LotteryUseCase
}

func NewLotteryHandler(lotteryUseCase usecase.LotteryUseCase) *LotteryHandler {
	return &LotteryHandler{
		lotteryUseCase: lotteryUseCase,
	}
}

func (h *LotteryHandler) ExecuteLottery(c *gin.Context) {
	var req reqdto.ExecuteLotteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	result, err := h.lotteryUseCase.ExecuteLottery(c.Request.Context(), date, req.TimeSlot)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLotteryInProgress):
			httperr.AbortWithError(c, http.StatusConflict, err, "A lottery for this slot is already executing", nil)
		case errors.Is(err, usecase.ErrNoActiveCourts):
			httperr.AbortWithError(c, http.StatusConflict, err, "No active courts to allocate", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLotteryResult(result))
}

func (h *LotteryHandler) GetPendingCount(c *gin.Context) {
	var query reqdto.PendingCountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "date and time_slot query parameters are required", nil)
		return
	}

	date, err := query.ParseDate()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	count, err := h.lotteryUseCase.GetPendingCount(c.Request.Context(), date, query.TimeSlot)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.PendingCountResponse{
		Date:         query.Date,
		TimeSlot:     query.TimeSlot,
		PendingCount: count,
	})
}
