package response

import (
	"court-booking/internal/usecase"
)

type LotteryResultResponse struct {
	Date             string             `json:"date"`
	TimeSlot         string             `json:"timeSlot"`
	TotalRequests    int                `json:"totalRequests"`
	AssignedBookings int                `json:"assignedBookings"`
	Bookings         []*BookingResponse `json:"bookings"`
}

type PendingCountResponse struct {
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	PendingCount int    `json:"pendingCount"`
}

func FromLotteryResult(result *usecase.LotteryResult) *LotteryResultResponse {
	bookings := make([]*BookingResponse, len(result.Bookings))
	for i, bk := range result.Bookings {
		bookings[i] = FromBooking(bk)
	}
	return &LotteryResultResponse{
		Date:             result.Date.Format(dateLayout),
		TimeSlot:         result.TimeSlot,
		TotalRequests:    result.TotalRequests,
		AssignedBookings: result.AssignedBookings,
		Bookings:         bookings,
	}
}
