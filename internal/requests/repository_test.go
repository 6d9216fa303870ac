package requests

import (
	"testing"

	"github.com/google/uuid"

	"github.com/event-organizer/backend/internal/models"
)

func TestSubmitGuardKey(t *testing.T) {
	user := uuid.New()
	eventA := uuid.New()
	eventB := uuid.New()

	deleteReq := func(target uuid.UUID) *models.Request {
		return &models.Request{
			RequestType: models.RequestTypeEvent,
			Action:      models.ActionDelete,
			EventID:     &target,
		}
	}

	// Delete payloads are empty, so the target id is all that tells two
	// delete requests apart.
	keyA := submitGuardKey(user, deleteReq(eventA), []byte(`{}`))
	keyB := submitGuardKey(user, deleteReq(eventB), []byte(`{}`))
	if keyA == keyB {
		t.Error("deletes of different events must not share a guard key")
	}

	if again := submitGuardKey(user, deleteReq(eventA), []byte(`{}`)); again != keyA {
		t.Error("resubmitting the same request must produce the same key")
	}

	// Identical sparse updates against different targets are distinct.
	updA := &models.Request{RequestType: models.RequestTypeEvent, Action: models.ActionUpdate, EventID: &eventA}
	updB := &models.Request{RequestType: models.RequestTypeEvent, Action: models.ActionUpdate, EventID: &eventB}
	payload := []byte(`{"title":"Renamed"}`)
	if submitGuardKey(user, updA, payload) == submitGuardKey(user, updB, payload) {
		t.Error("same payload against different targets must not collide")
	}

	// Same payload from a different user is a different submission.
	if submitGuardKey(uuid.New(), deleteReq(eventA), []byte(`{}`)) == keyA {
		t.Error("keys must be scoped per submitter")
	}

	// Type and action separate otherwise identical payloads.
	createLoc := &models.Request{RequestType: models.RequestTypeLocation, Action: models.ActionCreate}
	createCat := &models.Request{RequestType: models.RequestTypeCategory, Action: models.ActionCreate}
	named := []byte(`{"name":"Hall"}`)
	if submitGuardKey(user, createLoc, named) == submitGuardKey(user, createCat, named) {
		t.Error("request type must be part of the guard key")
	}
}
