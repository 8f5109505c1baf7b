package court

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("court not found")
	ErrInactive          = errors.New("court is inactive")
	ErrNotAvailable      = errors.New("court is not available for this slot")
	ErrHasActiveBookings = errors.New("court has active bookings")
	ErrEmptyName         = errors.New("court name cannot be empty")
)

// Court is a bookable unit owned by the club. Bookings reference courts but
// never own them.
type Court struct {
	ID        uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

func New(name string) (*Court, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Court{
		ID:       uuid.New(),
		Name:     name,
		IsActive: true,
	}, nil
}

func (c *Court) Deactivate() {
	c.IsActive = false
}

func (c *Court) Activate() {
	c.IsActive = true
}
