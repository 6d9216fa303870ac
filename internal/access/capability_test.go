package access

import (
	"testing"

	"github.com/event-organizer/backend/internal/models"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		resource Resource
		action   Action
		want     bool
	}{
		{"user reads events", models.RoleUser, ResourceEvents, ActionRead, true},
		{"user cannot write events", models.RoleUser, ResourceEvents, ActionWrite, false},
		{"user submits requests", models.RoleUser, ResourceRequests, ActionSubmit, true},
		{"user cannot review", models.RoleUser, ResourceRequests, ActionReview, false},
		{"user cannot manage users", models.RoleUser, ResourceUsers, ActionWrite, false},
		{"moderator writes locations", models.RoleModerator, ResourceLocations, ActionWrite, true},
		{"moderator reviews requests", models.RoleModerator, ResourceRequests, ActionReview, true},
		{"moderator cannot manage users", models.RoleModerator, ResourceUsers, ActionWrite, false},
		{"admin reviews requests", models.RoleAdmin, ResourceRequests, ActionReview, true},
		{"admin manages users", models.RoleAdmin, ResourceUsers, ActionWrite, true},
		{"unknown role has nothing", models.Role("guest"), ResourceEvents, ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Can(tt.role, tt.resource, tt.action); got != tt.want {
				t.Errorf("Can(%q, %q, %q) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}
