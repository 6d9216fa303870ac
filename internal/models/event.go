package models

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a scheduled event. Location and category are optional
// references; timestamps are timezone-naive instants.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	IsPublic    bool       `json:"is_public"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventPatch is a partial update for an event. Nil fields keep the current
// value; merge semantics live here and nowhere else.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	IsPublic    *bool      `json:"is_public,omitempty"`
}

// Apply merges the patch onto e. Unset fields fall back to the current value.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.LocationID != nil {
		e.LocationID = p.LocationID
	}
	if p.CategoryID != nil {
		e.CategoryID = p.CategoryID
	}
	if p.IsPublic != nil {
		e.IsPublic = *p.IsPublic
	}
}
