package requests

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/event-organizer/backend/internal/models"
)

func validEventForm() FormState {
	return FormState{
		Title:     "Spring Concert",
		StartTime: "2025-05-01T18:00",
		EndTime:   "2025-05-01T21:00",
		IsPublic:  true,
	}
}

func TestBuildEventCreate(t *testing.T) {
	req, err := Build(models.RequestTypeEvent, models.ActionCreate, nil, validEventForm())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.EventID != nil {
		t.Error("create request must not carry a target event")
	}
	if req.Data.Title == nil || *req.Data.Title != "Spring Concert" {
		t.Error("title not carried into payload")
	}
	if !req.Data.EndTime.After(*req.Data.StartTime) {
		t.Error("times not carried into payload")
	}
}

func TestBuildEventValidation(t *testing.T) {
	target := uuid.New()
	tests := []struct {
		name    string
		mutate  func(*FormState)
		action  models.RequestAction
		target  *uuid.UUID
		wantErr error
	}{
		{"missing title", func(f *FormState) { f.Title = "" }, models.ActionCreate, nil, ErrMissingTitle},
		{"missing start", func(f *FormState) { f.StartTime = "" }, models.ActionCreate, nil, ErrMissingTimes},
		{"missing end", func(f *FormState) { f.EndTime = "" }, models.ActionCreate, nil, ErrMissingTimes},
		{"end equals start", func(f *FormState) { f.EndTime = f.StartTime }, models.ActionCreate, nil, ErrInvalidTimeRange},
		{"end before start", func(f *FormState) { f.EndTime = "2025-04-30T18:00" }, models.ActionCreate, nil, ErrInvalidTimeRange},
		{"create with target", func(f *FormState) {}, models.ActionCreate, &target, ErrTargetForbidden},
		{"update without target", func(f *FormState) {}, models.ActionUpdate, nil, ErrTargetRequired},
		{"delete without target", func(f *FormState) {}, models.ActionDelete, nil, ErrTargetRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validEventForm()
			tt.mutate(&form)
			_, err := Build(models.RequestTypeEvent, tt.action, tt.target, form)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildOneTimeLocationBranch(t *testing.T) {
	form := validEventForm()
	form.OneTimeLocation = true
	form.LocationName = "Pop-up Hall"
	form.LocationCity = "Riga"
	form.LocationID = uuid.New().String() // must be ignored on this branch

	req, err := Build(models.RequestTypeEvent, models.ActionCreate, nil, form)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !req.Data.LocationIsOneTime {
		t.Error("one-time marker not set")
	}
	if req.Data.LocationID != nil {
		t.Error("one-time payload must not carry location_id")
	}
	if req.Data.LocationName == nil || *req.Data.LocationName != "Pop-up Hall" {
		t.Error("inline location name missing")
	}
}

func TestBuildOneTimeLocationRequiresName(t *testing.T) {
	form := validEventForm()
	form.OneTimeLocation = true
	_, err := Build(models.RequestTypeEvent, models.ActionCreate, nil, form)
	if !errors.Is(err, ErrOneTimeNameMissing) {
		t.Errorf("Build err = %v, want ErrOneTimeNameMissing", err)
	}
}

func TestBuildReusableLocationByReference(t *testing.T) {
	locID := uuid.New()
	form := validEventForm()
	form.LocationID = locID.String()

	req, err := Build(models.RequestTypeEvent, models.ActionCreate, nil, form)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Data.LocationID == nil || *req.Data.LocationID != locID {
		t.Error("location_id not carried by reference")
	}
	if req.Data.LocationIsOneTime {
		t.Error("one-time marker set on reference branch")
	}
}

func TestBuildEventDeleteCarriesEmptyData(t *testing.T) {
	target := uuid.New()
	req, err := Build(models.RequestTypeEvent, models.ActionDelete, &target, FormState{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.EventID == nil || *req.EventID != target {
		t.Error("delete request must carry the target event")
	}
	if req.Data != (models.RequestData{}) {
		t.Error("delete payload must be empty")
	}
}

func TestBuildLocationCategoryCreateOnly(t *testing.T) {
	target := uuid.New()
	for _, typ := range []models.RequestType{models.RequestTypeLocation, models.RequestTypeCategory} {
		if _, err := Build(typ, models.ActionUpdate, &target, FormState{Name: "x"}); !errors.Is(err, ErrActionUnsupported) {
			t.Errorf("Build(%s, update) err = %v, want ErrActionUnsupported", typ, err)
		}
	}
	if _, err := Build(models.RequestTypeCategory, models.ActionCreate, nil, FormState{}); !errors.Is(err, ErrMissingName) {
		t.Errorf("category create without name err = %v, want ErrMissingName", err)
	}

	req, err := Build(models.RequestTypeLocation, models.ActionCreate, nil, FormState{Name: "Arena", City: "Riga"})
	if err != nil {
		t.Fatalf("Build location create: %v", err)
	}
	if req.Data.Name == nil || *req.Data.Name != "Arena" {
		t.Error("location name missing from payload")
	}
}

func TestBuildEventEmptyDescriptionKept(t *testing.T) {
	form := validEventForm()
	form.Description = ""
	req, err := Build(models.RequestTypeEvent, models.ActionCreate, nil, form)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// The payload always carries a concrete description string. Storage
	// binds it as-is into a NOT NULL column, so nil here would fail apply.
	if req.Data.Description == nil {
		t.Fatal("description must be present even when empty")
	}
	if *req.Data.Description != "" {
		t.Errorf("description = %q, want empty", *req.Data.Description)
	}
}
