package response

import "github.com/google/uuid"

type UsageResponse struct {
	UserID     uuid.UUID `json:"userId"`
	UsageCount int       `json:"usageCount"`
}
