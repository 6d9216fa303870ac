package models

import (
	"time"

	"github.com/google/uuid"
)

// Location represents an event venue. One-time locations are created inline
// from an approved event request and never offered for reuse.
type Location struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Capacity  *int      `json:"capacity,omitempty"`
	IsOneTime bool      `json:"is_one_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
