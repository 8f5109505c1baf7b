package request

import "time"

type ExecuteLotteryRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

func (r ExecuteLotteryRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

// PendingCountQuery binds the slot key from query parameters.
type PendingCountQuery struct {
	Date     string `form:"date" binding:"required"`
	TimeSlot string `form:"time_slot" binding:"required"`
}

func (r PendingCountQuery) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}
