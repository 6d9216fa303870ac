package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestType identifies the entity a request targets.
type RequestType string

const (
	RequestTypeEvent    RequestType = "event"
	RequestTypeLocation RequestType = "location"
	RequestTypeCategory RequestType = "category"
)

// RequestAction identifies the proposed operation.
type RequestAction string

const (
	ActionCreate RequestAction = "create"
	ActionUpdate RequestAction = "update"
	ActionDelete RequestAction = "delete"
)

// RequestStatus is the moderation state of a request. Transitions are
// pending -> approved or pending -> rejected, exactly once.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// RequestData is the typed payload of a request. It is a sparse document:
// which fields are set depends on the request type and action. For event
// payloads with a one-time location the inline Location* fields replace
// LocationID.
type RequestData struct {
	// Event fields.
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	IsPublic    *bool      `json:"is_public,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`

	// Inline one-time location, used instead of LocationID.
	LocationIsOneTime bool    `json:"location_is_one_time,omitempty"`
	LocationName      *string `json:"location_name,omitempty"`
	LocationCity      *string `json:"location_city,omitempty"`
	LocationAddress   *string `json:"location_address,omitempty"`
	LocationCapacity  *int    `json:"location_capacity,omitempty"`

	// Location and category create payloads.
	Name     *string `json:"name,omitempty"`
	City     *string `json:"city,omitempty"`
	Address  *string `json:"address,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Slug     *string `json:"slug,omitempty"`
}

// EventPatch converts an event-update payload into the partial-update type.
func (d RequestData) EventPatch() EventPatch {
	return EventPatch{
		Title:       d.Title,
		Description: d.Description,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		LocationID:  d.LocationID,
		CategoryID:  d.CategoryID,
		IsPublic:    d.IsPublic,
	}
}

// Request is a proposed create/update/delete awaiting review. EventID is set
// only for update/delete of type event. ReviewedBy is set on the single
// transition out of pending.
type Request struct {
	ID          uuid.UUID     `json:"id"`
	RequestType RequestType   `json:"request_type"`
	Action      RequestAction `json:"action"`
	EventID     *uuid.UUID    `json:"event,omitempty"`
	Data        RequestData   `json:"data"`
	UserID      uuid.UUID     `json:"user"`
	Status      RequestStatus `json:"status"`
	ReviewedBy  *uuid.UUID    `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
