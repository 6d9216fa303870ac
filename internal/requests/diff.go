package requests

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/event-organizer/backend/internal/models"
)

// Reference placeholders shown when an event has no venue or category, or
// when the referenced row was deleted after the request was submitted.
const (
	PlaceholderNone            = "not selected"
	PlaceholderDeletedLocation = "deleted location"
	PlaceholderDeletedCategory = "deleted category"
)

const diffTimeLayout = "2006-01-02T15:04"

// EventSource loads events for diff rendering.
type EventSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// LocationSource loads locations for diff rendering.
type LocationSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
}

// CategorySource loads categories for diff rendering.
type CategorySource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// EventView is one side of a diff, with references resolved to names.
type EventView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	IsPublic    bool   `json:"is_public"`
}

// DiffView is the reviewer-facing rendering of a request: what the entity
// looks like now and what it would look like after approval. Create requests
// have no current side, delete requests no proposed side. Location and
// category requests carry their payload in Details instead.
type DiffView struct {
	RequestID   uuid.UUID            `json:"request_id"`
	RequestType models.RequestType   `json:"request_type"`
	Action      models.RequestAction `json:"action"`
	Status      models.RequestStatus `json:"status"`
	Current     *EventView           `json:"current,omitempty"`
	Proposed    *EventView           `json:"proposed,omitempty"`
	Details     map[string]string    `json:"details,omitempty"`
}

// Presenter renders requests into DiffViews. Name lookups are memoized per
// presenter, so one instance should serve one render pass.
type Presenter struct {
	events     EventSource
	locations  LocationSource
	categories CategorySource

	locNames map[uuid.UUID]string
	catNames map[uuid.UUID]string
}

func NewPresenter(events EventSource, locations LocationSource, categories CategorySource) *Presenter {
	return &Presenter{
		events:     events,
		locations:  locations,
		categories: categories,
		locNames:   make(map[uuid.UUID]string),
		catNames:   make(map[uuid.UUID]string),
	}
}

// Build renders the diff for one request.
func (p *Presenter) Build(ctx context.Context, req *models.Request) (*DiffView, error) {
	view := &DiffView{
		RequestID:   req.ID,
		RequestType: req.RequestType,
		Action:      req.Action,
		Status:      req.Status,
	}

	switch req.RequestType {
	case models.RequestTypeLocation:
		view.Details = locationDetails(req.Data)
		return view, nil
	case models.RequestTypeCategory:
		view.Details = categoryDetails(req.Data)
		return view, nil
	}

	var current *models.Event
	if req.EventID != nil {
		ev, err := p.events.GetByID(ctx, *req.EventID)
		switch {
		case err == nil:
			current = ev
		case errors.Is(err, pgx.ErrNoRows):
			// Target vanished after submission. Render what the payload
			// alone can show.
		default:
			return nil, err
		}
	}

	if current != nil {
		cv, err := p.eventView(ctx, current)
		if err != nil {
			return nil, err
		}
		view.Current = cv
	}

	if req.Action != models.ActionDelete {
		pv, err := p.proposedView(ctx, current, req.Data)
		if err != nil {
			return nil, err
		}
		view.Proposed = pv
	}
	return view, nil
}

func (p *Presenter) eventView(ctx context.Context, ev *models.Event) (*EventView, error) {
	loc, err := p.locationName(ctx, ev.LocationID)
	if err != nil {
		return nil, err
	}
	cat, err := p.categoryName(ctx, ev.CategoryID)
	if err != nil {
		return nil, err
	}
	return &EventView{
		Title:       ev.Title,
		Description: ev.Description,
		StartTime:   ev.StartTime.Format(diffTimeLayout),
		EndTime:     ev.EndTime.Format(diffTimeLayout),
		Location:    loc,
		Category:    cat,
		IsPublic:    ev.IsPublic,
	}, nil
}

// proposedView overlays the sparse payload on the current state, so fields
// the submitter left out keep their current values in the rendering.
func (p *Presenter) proposedView(ctx context.Context, current *models.Event, d models.RequestData) (*EventView, error) {
	view := &EventView{IsPublic: true}
	if current != nil {
		cv, err := p.eventView(ctx, current)
		if err != nil {
			return nil, err
		}
		clone := *cv
		view = &clone
	}

	if d.Title != nil {
		view.Title = *d.Title
	}
	if d.Description != nil {
		view.Description = *d.Description
	}
	if d.StartTime != nil {
		view.StartTime = d.StartTime.Format(diffTimeLayout)
	}
	if d.EndTime != nil {
		view.EndTime = d.EndTime.Format(diffTimeLayout)
	}
	if d.IsPublic != nil {
		view.IsPublic = *d.IsPublic
	}
	switch {
	case d.LocationIsOneTime:
		view.Location = deref(d.LocationName)
	case d.LocationID != nil:
		loc, err := p.locationName(ctx, d.LocationID)
		if err != nil {
			return nil, err
		}
		view.Location = loc
	case current == nil:
		view.Location = PlaceholderNone
	}
	if d.CategoryID != nil {
		cat, err := p.categoryName(ctx, d.CategoryID)
		if err != nil {
			return nil, err
		}
		view.Category = cat
	} else if current == nil {
		view.Category = PlaceholderNone
	}
	return view, nil
}

func (p *Presenter) locationName(ctx context.Context, id *uuid.UUID) (string, error) {
	if id == nil {
		return PlaceholderNone, nil
	}
	if name, ok := p.locNames[*id]; ok {
		return name, nil
	}
	loc, err := p.locations.GetByID(ctx, *id)
	if errors.Is(err, pgx.ErrNoRows) {
		p.locNames[*id] = PlaceholderDeletedLocation
		return PlaceholderDeletedLocation, nil
	}
	if err != nil {
		return "", err
	}
	p.locNames[*id] = loc.Name
	return loc.Name, nil
}

func (p *Presenter) categoryName(ctx context.Context, id *uuid.UUID) (string, error) {
	if id == nil {
		return PlaceholderNone, nil
	}
	if name, ok := p.catNames[*id]; ok {
		return name, nil
	}
	cat, err := p.categories.GetByID(ctx, *id)
	if errors.Is(err, pgx.ErrNoRows) {
		p.catNames[*id] = PlaceholderDeletedCategory
		return PlaceholderDeletedCategory, nil
	}
	if err != nil {
		return "", err
	}
	p.catNames[*id] = cat.Name
	return cat.Name, nil
}

func locationDetails(d models.RequestData) map[string]string {
	details := map[string]string{"name": deref(d.Name)}
	if d.Address != nil {
		details["address"] = *d.Address
	}
	if d.City != nil {
		details["city"] = *d.City
	}
	if d.Capacity != nil {
		details["capacity"] = strconv.Itoa(*d.Capacity)
	}
	return details
}

func categoryDetails(d models.RequestData) map[string]string {
	details := map[string]string{"name": deref(d.Name)}
	if d.Slug != nil {
		details["slug"] = *d.Slug
	}
	return details
}
