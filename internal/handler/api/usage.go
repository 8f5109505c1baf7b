package api

import (
	"net/http"

	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/httperr"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	usageUseCase usecase.UsageUseCase
}

func NewUsageHandler(usageUseCase usecase.UsageUseCase) *UsageHandler {
	return &UsageHandler{
		usageUseCase: usageUseCase,
	}
}

// GetMyUsage returns the caller's fairness counter for the current month.
func (h *UsageHandler) GetMyUsage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserID, "Internal server error", nil)
		return
	}

	count, err := h.usageUseCase.GetUsageCount(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.UsageResponse{
		UserID:     userID,
		UsageCount: count,
	})
}
