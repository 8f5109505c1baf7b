// Package usage tracks per-user recent-allocation counts, the fairness
// signal feeding lottery weights.
package usage

import (
	"time"

	"github.com/google/uuid"
)

// Counter counts a user's recent successful allocations. It resets monthly so
// the fairness penalty decays instead of compounding forever.
type Counter struct {
	UserID        uuid.UUID
	Count         int
	LastResetDate time.Time
}

func NewCounter(userID uuid.UUID, now time.Time) *Counter {
	return &Counter{
		UserID:        userID,
		Count:         0,
		LastResetDate: now,
	}
}

// ResetDue reports whether the counter's last reset falls in an earlier month
// than now.
func (c *Counter) ResetDue(now time.Time) bool {
	ry, rm, _ := c.LastResetDate.Date()
	ny, nm, _ := now.Date()
	return ny > ry || (ny == ry && nm > rm)
}

func (c *Counter) Reset(now time.Time) {
	c.Count = 0
	c.LastResetDate = now
}

func (c *Counter) Increment() {
	c.Count++
}
