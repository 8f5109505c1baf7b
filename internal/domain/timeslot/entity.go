package timeslot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownSlot      = errors.New("no time slot template for this day and start time")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")
	ErrInvalidSlotType  = errors.New("invalid slot type")
)

type SlotType string

const (
	TypePeak    SlotType = "PEAK"
	TypeOffPeak SlotType = "OFF_PEAK"
)

func (t SlotType) Valid() bool {
	return t == TypePeak || t == TypeOffPeak
}

// TimeSlot is a weekly template ("every Monday 18:00-19:30"), not a per-date
// instance. Requests and bookings carry the start time as a string key.
type TimeSlot struct {
	ID        uuid.UUID
	DayOfWeek int
	StartTime string
	EndTime   string
	Duration  time.Duration
	Type      SlotType
}

const timeLayout = "15:04"

func New(dayOfWeek int, startTime, endTime string, slotType SlotType) (*TimeSlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}
	if !slotType.Valid() {
		return nil, ErrInvalidSlotType
	}

	duration, err := ValidateTimeRange(startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &TimeSlot{
		ID:        uuid.New(),
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  duration,
		Type:      slotType,
	}, nil
}

// ValidateTimeRange parses "HH:MM" bounds and rejects ranges whose end is not
// strictly after the start. It returns the slot duration.
func ValidateTimeRange(startTime, endTime string) (time.Duration, error) {
	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return 0, ErrInvalidTimeRange
	}
	end, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return 0, ErrInvalidTimeRange
	}
	if !end.After(start) {
		return 0, ErrInvalidTimeRange
	}
	return end.Sub(start), nil
}
