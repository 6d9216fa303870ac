package requests

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/event-organizer/backend/internal/models"
)

func TestCheckTransition(t *testing.T) {
	submitter := uuid.New()
	reviewer := uuid.New()

	cases := []struct {
		name     string
		status   models.RequestStatus
		reviewer uuid.UUID
		decision models.RequestStatus
		want     error
	}{
		{"approve pending", models.StatusPending, reviewer, models.StatusApproved, nil},
		{"reject pending", models.StatusPending, reviewer, models.StatusRejected, nil},
		{"approve twice", models.StatusApproved, reviewer, models.StatusApproved, ErrAlreadyReviewed},
		{"reject after approve", models.StatusApproved, reviewer, models.StatusRejected, ErrAlreadyReviewed},
		{"approve after reject", models.StatusRejected, reviewer, models.StatusApproved, ErrAlreadyReviewed},
		{"own request", models.StatusPending, submitter, models.StatusApproved, ErrSelfReview},
		{"pending is not a decision", models.StatusPending, reviewer, models.StatusPending, ErrInvalidDecision},
		{"garbage decision", models.StatusPending, reviewer, models.RequestStatus("maybe"), ErrInvalidDecision},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := &models.Request{UserID: submitter, Status: tc.status}
			err := CheckTransition(req, tc.reviewer, tc.decision)
			if !errors.Is(err, tc.want) {
				t.Fatalf("CheckTransition() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestScopeFor(t *testing.T) {
	caller := uuid.New()

	user := ScopeFor(models.RoleUser, caller)
	if user.UserID == nil || *user.UserID != caller {
		t.Fatalf("user scope should pin the caller, got %+v", user)
	}
	if user.Status != nil {
		t.Fatalf("user scope should not filter by status")
	}

	mod := ScopeFor(models.RoleModerator, caller)
	if mod.UserID != nil {
		t.Fatalf("moderator scope should not pin a user")
	}
	if mod.Status == nil || *mod.Status != models.StatusPending {
		t.Fatalf("moderator scope should see only pending, got %+v", mod)
	}

	admin := ScopeFor(models.RoleAdmin, caller)
	if admin.UserID != nil || admin.Status != nil {
		t.Fatalf("admin scope should be unrestricted, got %+v", admin)
	}

	unknown := ScopeFor(models.Role("ghost"), caller)
	if unknown.UserID == nil || *unknown.UserID != caller {
		t.Fatalf("unknown role should fall back to own requests")
	}
}
