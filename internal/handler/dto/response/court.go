package response

import (
	"time"

	"court-booking/internal/domain/court"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CourtResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromCourts(courts []*court.Court) ([]*CourtResponse, error) {
	out := make([]*CourtResponse, 0, len(courts))
	if err := copier.Copy(&out, &courts); err != nil {
		return nil, err
	}
	return out, nil
}
