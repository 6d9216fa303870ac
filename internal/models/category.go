package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups events. Slug is unique and derived from the name when not
// supplied explicitly.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
