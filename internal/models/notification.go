package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification records a review outcome for the submitting user to poll.
type Notification struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	RequestID uuid.UUID     `json:"request_id"`
	Status    RequestStatus `json:"status"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"created_at"`
}
