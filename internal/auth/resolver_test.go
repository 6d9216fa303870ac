package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/event-organizer/backend/internal/models"
)

type stubLoader struct {
	role  models.Role
	err   error
	calls int
}

func (s *stubLoader) RoleOf(ctx context.Context, id uuid.UUID) (models.Role, error) {
	s.calls++
	return s.role, s.err
}

func TestResolveReturnsStoredRole(t *testing.T) {
	loader := &stubLoader{role: models.RoleAdmin}
	r := NewResolver(loader, nil, time.Minute, nil)

	if got := r.Resolve(context.Background(), uuid.New()); got != models.RoleAdmin {
		t.Errorf("Resolve = %q, want %q", got, models.RoleAdmin)
	}
}

func TestResolveDefaultsToUserOnError(t *testing.T) {
	loader := &stubLoader{err: errors.New("connection refused")}
	r := NewResolver(loader, nil, time.Minute, nil)

	if got := r.Resolve(context.Background(), uuid.New()); got != models.RoleUser {
		t.Errorf("Resolve on loader error = %q, want %q", got, models.RoleUser)
	}
	if loader.calls != 1 {
		t.Errorf("loader calls = %d, want 1 (no retries)", loader.calls)
	}
}

func TestResolveRejectsUnknownRole(t *testing.T) {
	loader := &stubLoader{role: models.Role("superuser")}
	r := NewResolver(loader, nil, time.Minute, nil)

	if got := r.Resolve(context.Background(), uuid.New()); got != models.RoleUser {
		t.Errorf("Resolve with unknown stored role = %q, want %q", got, models.RoleUser)
	}
}
