// Package window enforces the temporal eligibility rules for booking
// requests and direct bookings. Checks are pure: current time comes from the
// injected clock, nothing is persisted.
package window

import (
	"errors"
	"time"

	"court-booking/internal/pkg/clock"
)

var (
	ErrRequestWindow       = errors.New("date is outside the request window")
	ErrDirectBookingWindow = errors.New("date is outside the direct booking window")
	ErrDateInPast          = errors.New("date is in the past")
)

// Validator compares dates at calendar-day granularity. Both request-window
// bounds are inclusive: a request for today+minLeadDays or today+maxLeadDays
// is accepted.
type Validator struct {
	clock       clock.Clock
	minLeadDays int
	maxLeadDays int
}

func NewValidator(clk clock.Clock, minLeadDays, maxLeadDays int) *Validator {
	return &Validator{
		clock:       clk,
		minLeadDays: minLeadDays,
		maxLeadDays: maxLeadDays,
	}
}

// ValidateRequestWindow accepts dates with today+min <= date <= today+max.
func (v *Validator) ValidateRequestWindow(date time.Time) error {
	today := clock.Today(v.clock)
	d := midnightIn(date, today.Location())

	earliest := today.AddDate(0, 0, v.minLeadDays)
	latest := today.AddDate(0, 0, v.maxLeadDays)

	if d.Before(earliest) || d.After(latest) {
		return ErrRequestWindow
	}
	return nil
}

// ValidateDirectBookingWindow accepts today <= date < today+min. Dates at or
// beyond the request window belong to the lottery.
func (v *Validator) ValidateDirectBookingWindow(date time.Time) error {
	today := clock.Today(v.clock)
	d := midnightIn(date, today.Location())

	if d.Before(today) {
		return ErrDateInPast
	}
	if !d.Before(today.AddDate(0, 0, v.minLeadDays)) {
		return ErrDirectBookingWindow
	}
	return nil
}

// midnightIn reinterprets the date's calendar day at midnight in loc. Dates
// arrive parsed as UTC midnight; comparing them as instants against a clock
// in another zone would shift the day boundaries.
func midnightIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
