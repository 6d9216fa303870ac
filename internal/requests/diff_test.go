package requests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/event-organizer/backend/internal/models"
)

type stubEvents struct {
	events map[uuid.UUID]*models.Event
	calls  int
}

func (s *stubEvents) GetByID(_ context.Context, id uuid.UUID) (*models.Event, error) {
	s.calls++
	if ev, ok := s.events[id]; ok {
		return ev, nil
	}
	return nil, pgx.ErrNoRows
}

type stubLocations struct {
	locations map[uuid.UUID]*models.Location
	calls     int
}

func (s *stubLocations) GetByID(_ context.Context, id uuid.UUID) (*models.Location, error) {
	s.calls++
	if loc, ok := s.locations[id]; ok {
		return loc, nil
	}
	return nil, pgx.ErrNoRows
}

type stubCategories struct {
	categories map[uuid.UUID]*models.Category
	calls      int
}

func (s *stubCategories) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s.calls++
	if cat, ok := s.categories[id]; ok {
		return cat, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestPresenter(ev *stubEvents, loc *stubLocations, cat *stubCategories) *Presenter {
	if ev == nil {
		ev = &stubEvents{}
	}
	if loc == nil {
		loc = &stubLocations{}
	}
	if cat == nil {
		cat = &stubCategories{}
	}
	return NewPresenter(ev, loc, cat)
}

func TestBuildDiffSparseUpdate(t *testing.T) {
	eventID := uuid.New()
	locID := uuid.New()
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	ev := &stubEvents{events: map[uuid.UUID]*models.Event{
		eventID: {
			ID: eventID, Title: "Old title", Description: "About",
			StartTime: start, EndTime: end,
			LocationID: &locID, IsPublic: true,
		},
	}}
	loc := &stubLocations{locations: map[uuid.UUID]*models.Location{
		locID: {ID: locID, Name: "Main hall"},
	}}
	p := newTestPresenter(ev, loc, nil)

	newTitle := "New title"
	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeEvent,
		Action:      models.ActionUpdate,
		EventID:     &eventID,
		Data:        models.RequestData{Title: &newTitle},
		Status:      models.StatusPending,
	}
	view, err := p.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if view.Current == nil || view.Current.Title != "Old title" {
		t.Fatalf("current side missing or wrong: %+v", view.Current)
	}
	if view.Proposed.Title != "New title" {
		t.Errorf("proposed title = %q, want the payload value", view.Proposed.Title)
	}
	// Fields absent from the payload carry over from the current event.
	if view.Proposed.StartTime != "2026-03-10T18:00" {
		t.Errorf("proposed start = %q, want current start", view.Proposed.StartTime)
	}
	if view.Proposed.Location != "Main hall" {
		t.Errorf("proposed location = %q, want current venue name", view.Proposed.Location)
	}
	if view.Proposed.Description != "About" {
		t.Errorf("proposed description = %q, want current description", view.Proposed.Description)
	}
}

func TestBuildDiffCreate(t *testing.T) {
	catID := uuid.New()
	cat := &stubCategories{categories: map[uuid.UUID]*models.Category{
		catID: {ID: catID, Name: "Concerts"},
	}}
	p := newTestPresenter(nil, nil, cat)

	title := "Festival"
	start := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeEvent,
		Action:      models.ActionCreate,
		Data: models.RequestData{
			Title: &title, StartTime: &start, EndTime: &end, CategoryID: &catID,
		},
	}
	view, err := p.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if view.Current != nil {
		t.Fatalf("create diff should have no current side")
	}
	if view.Proposed.Category != "Concerts" {
		t.Errorf("category = %q, want resolved name", view.Proposed.Category)
	}
	if view.Proposed.Location != PlaceholderNone {
		t.Errorf("location = %q, want %q", view.Proposed.Location, PlaceholderNone)
	}
	if !view.Proposed.IsPublic {
		t.Errorf("events default to public")
	}
}

func TestBuildDiffDelete(t *testing.T) {
	eventID := uuid.New()
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	ev := &stubEvents{events: map[uuid.UUID]*models.Event{
		eventID: {ID: eventID, Title: "Doomed", StartTime: start, EndTime: start.Add(time.Hour)},
	}}
	p := newTestPresenter(ev, nil, nil)

	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeEvent,
		Action:      models.ActionDelete,
		EventID:     &eventID,
	}
	view, err := p.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if view.Proposed != nil {
		t.Fatalf("delete diff should have no proposed side")
	}
	if view.Current == nil || view.Current.Title != "Doomed" {
		t.Fatalf("current side missing: %+v", view.Current)
	}
}

func TestBuildDiffDanglingReferences(t *testing.T) {
	goneLoc := uuid.New()
	goneCat := uuid.New()
	p := newTestPresenter(nil, &stubLocations{}, &stubCategories{})

	title := "Orphan"
	start := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeEvent,
		Action:      models.ActionCreate,
		Data: models.RequestData{
			Title: &title, StartTime: &start, EndTime: &end,
			LocationID: &goneLoc, CategoryID: &goneCat,
		},
	}
	view, err := p.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if view.Proposed.Location != PlaceholderDeletedLocation {
		t.Errorf("location = %q, want %q", view.Proposed.Location, PlaceholderDeletedLocation)
	}
	if view.Proposed.Category != PlaceholderDeletedCategory {
		t.Errorf("category = %q, want %q", view.Proposed.Category, PlaceholderDeletedCategory)
	}
}

func TestBuildDiffMemoizesLookups(t *testing.T) {
	eventID := uuid.New()
	locID := uuid.New()
	start := time.Date(2026, 4, 4, 15, 0, 0, 0, time.UTC)
	ev := &stubEvents{events: map[uuid.UUID]*models.Event{
		eventID: {ID: eventID, Title: "Same venue", StartTime: start, EndTime: start.Add(time.Hour), LocationID: &locID},
	}}
	loc := &stubLocations{locations: map[uuid.UUID]*models.Location{
		locID: {ID: locID, Name: "Loft"},
	}}
	p := newTestPresenter(ev, loc, nil)

	// Update keeping the same venue: the name appears on both sides but
	// must be fetched once.
	newTitle := "Renamed"
	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeEvent,
		Action:      models.ActionUpdate,
		EventID:     &eventID,
		Data:        models.RequestData{Title: &newTitle, LocationID: &locID},
	}
	if _, err := p.Build(context.Background(), req); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if loc.calls != 1 {
		t.Errorf("location lookups = %d, want 1", loc.calls)
	}
}

func TestBuildDiffOneTimeLocation(t *testing.T) {
	p := newTestPresenter(nil, nil, nil)

	title := "Popup"
	venue := "Rooftop"
	start := time.Date(2026, 6, 6, 20, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeEvent,
		Action:      models.ActionCreate,
		Data: models.RequestData{
			Title: &title, StartTime: &start, EndTime: &end,
			LocationIsOneTime: true, LocationName: &venue,
		},
	}
	view, err := p.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if view.Proposed.Location != "Rooftop" {
		t.Errorf("location = %q, want the inline venue name", view.Proposed.Location)
	}
}

func TestBuildDiffCategoryCreateDetails(t *testing.T) {
	p := newTestPresenter(nil, nil, nil)

	name := "Лекции"
	req := &models.Request{
		ID:          uuid.New(),
		RequestType: models.RequestTypeCategory,
		Action:      models.ActionCreate,
		Data:        models.RequestData{Name: &name},
	}
	view, err := p.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if view.Details["name"] != "Лекции" {
		t.Errorf("details name = %q", view.Details["name"])
	}
	if view.Current != nil || view.Proposed != nil {
		t.Errorf("category request should render details only")
	}
}
