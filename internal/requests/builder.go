// Package requests implements the moderated-change workflow: user-role
// principals submit proposed create/update/delete operations, moderators and
// admins review them, and approval applies the stored payload to the entity
// store in one transaction.
package requests

import (
	"errors"

	"github.com/google/uuid"

	"github.com/event-organizer/backend/internal/models"
)

// Validation errors. These are caught before submission and never reach the
// request store.
var (
	ErrUnknownType        = errors.New("unknown request type")
	ErrUnknownAction      = errors.New("unknown action")
	ErrMissingTitle       = errors.New("title is required")
	ErrMissingTimes       = errors.New("start_time and end_time are required")
	ErrInvalidTimeRange   = errors.New("end_time must be after start_time")
	ErrMissingName        = errors.New("name is required")
	ErrOneTimeNameMissing = errors.New("one-time location requires a name")
	ErrTargetRequired     = errors.New("update and delete require a target event")
	ErrTargetForbidden    = errors.New("create must not reference a target event")
	ErrActionUnsupported  = errors.New("locations and categories support create requests only")
)

// FormState carries raw form input for building a request payload. Times are
// the wire strings; ids are uuid strings and may be empty.
type FormState struct {
	// Event fields.
	Title       string
	Description string
	StartTime   string
	EndTime     string
	LocationID  string
	CategoryID  string
	IsPublic    bool

	// One-time location branch.
	OneTimeLocation  bool
	LocationName     string
	LocationCity     string
	LocationAddress  string
	LocationCapacity *int

	// Location and category create fields.
	Name     string
	City     string
	Address  string
	Capacity *int
	Slug     string
}

// Build constructs a well-formed pending Request from user intent, or fails
// validation. target identifies the event for update/delete and must be nil
// for create.
func Build(reqType models.RequestType, action models.RequestAction, target *uuid.UUID, form FormState) (*models.Request, error) {
	switch action {
	case models.ActionCreate, models.ActionUpdate, models.ActionDelete:
	default:
		return nil, ErrUnknownAction
	}

	if action == models.ActionCreate && target != nil {
		return nil, ErrTargetForbidden
	}
	if action != models.ActionCreate && target == nil {
		return nil, ErrTargetRequired
	}

	req := &models.Request{
		RequestType: reqType,
		Action:      action,
		EventID:     target,
		Status:      models.StatusPending,
	}

	switch reqType {
	case models.RequestTypeEvent:
		if action == models.ActionDelete {
			// Delete carries an empty payload; the target id says it all.
			return req, nil
		}
		data, err := buildEventData(form)
		if err != nil {
			return nil, err
		}
		req.Data = *data
		return req, nil

	case models.RequestTypeLocation:
		if action != models.ActionCreate {
			return nil, ErrActionUnsupported
		}
		if form.Name == "" {
			return nil, ErrMissingName
		}
		req.Data = models.RequestData{
			Name:     strPtr(form.Name),
			City:     optStrPtr(form.City),
			Address:  optStrPtr(form.Address),
			Capacity: form.Capacity,
		}
		return req, nil

	case models.RequestTypeCategory:
		if action != models.ActionCreate {
			return nil, ErrActionUnsupported
		}
		if form.Name == "" {
			return nil, ErrMissingName
		}
		req.Data = models.RequestData{
			Name: strPtr(form.Name),
			Slug: optStrPtr(form.Slug),
		}
		return req, nil
	}
	return nil, ErrUnknownType
}

func buildEventData(form FormState) (*models.RequestData, error) {
	if form.Title == "" {
		return nil, ErrMissingTitle
	}
	if form.StartTime == "" || form.EndTime == "" {
		return nil, ErrMissingTimes
	}
	start, err := models.ParseInstant(form.StartTime)
	if err != nil {
		return nil, ErrMissingTimes
	}
	end, err := models.ParseInstant(form.EndTime)
	if err != nil {
		return nil, ErrMissingTimes
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	data := &models.RequestData{
		Title:       strPtr(form.Title),
		Description: strPtr(form.Description),
		StartTime:   &start,
		EndTime:     &end,
		IsPublic:    &form.IsPublic,
	}

	if form.OneTimeLocation {
		if form.LocationName == "" {
			return nil, ErrOneTimeNameMissing
		}
		data.LocationIsOneTime = true
		data.LocationName = strPtr(form.LocationName)
		data.LocationCity = optStrPtr(form.LocationCity)
		data.LocationAddress = optStrPtr(form.LocationAddress)
		data.LocationCapacity = form.LocationCapacity
	} else if form.LocationID != "" {
		id, err := uuid.Parse(form.LocationID)
		if err != nil {
			return nil, errors.New("invalid location_id")
		}
		data.LocationID = &id
	}

	if form.CategoryID != "" {
		id, err := uuid.Parse(form.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		data.CategoryID = &id
	}
	return data, nil
}

func strPtr(s string) *string { return &s }

func optStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
