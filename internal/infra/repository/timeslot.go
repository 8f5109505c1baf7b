package repository

import (
	"context"
	"time"

	"court-booking/internal/domain/timeslot"
	"court-booking/internal/infra/db"
)

type TimeSlotRepository struct {
	db db.DBTX
}

func NewTimeSlotRepository(dbtx db.DBTX) *TimeSlotRepository {
	return &TimeSlotRepository{db: dbtx}
}

// FindByDayAndStart resolves a slot key ("18:00") against the weekly
// templates for a given weekday.
func (r *TimeSlotRepository) FindByDayAndStart(ctx context.Context, dayOfWeek int, startTime string) (*timeslot.TimeSlot, error) {
	const query = `
		SELECT id, day_of_week, start_time, end_time, duration, slot_type
		FROM time_slots
		WHERE day_of_week = $1 AND start_time = $2`

	var (
		ts              timeslot.TimeSlot
		durationMinutes int
	)
	err := r.db.QueryRow(ctx, query, dayOfWeek, startTime).Scan(
		&ts.ID, &ts.DayOfWeek, &ts.StartTime, &ts.EndTime, &durationMinutes, &ts.Type)
	if err != nil {
		return nil, wrapPgErr("failed to find time slot", err)
	}
	ts.Duration = time.Duration(durationMinutes) * time.Minute
	return &ts, nil
}
